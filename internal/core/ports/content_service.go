package ports

import (
	"context"
	"time"

	"github.com/orgsite/cms-backend/internal/core/domain"
)

// EventInput carries the editable fields of an event.
type EventInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	CoverURL    string
}

// PublicationInput carries the editable fields of a publication.
type PublicationInput struct {
	Title       string
	Body        string
	Author      string
	Tags        []string
	PublishedAt time.Time
}

// GalleryItemInput carries the editable fields of a gallery item.
type GalleryItemInput struct {
	Title    string
	ImageURL string
	Caption  string
}

// SponsorInput carries the editable fields of a sponsor.
type SponsorInput struct {
	Name       string
	LogoURL    string
	WebsiteURL string
	Tier       string
}

// ContentService defines the CRUD use cases over all site content kinds.
type ContentService interface {
	CreateEvent(ctx context.Context, in EventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]*domain.Event, error)
	UpdateEvent(ctx context.Context, id string, in EventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	CreatePublication(ctx context.Context, in PublicationInput) (*domain.Publication, error)
	GetPublication(ctx context.Context, id string) (*domain.Publication, error)
	ListPublications(ctx context.Context) ([]*domain.Publication, error)
	UpdatePublication(ctx context.Context, id string, in PublicationInput) (*domain.Publication, error)
	DeletePublication(ctx context.Context, id string) error

	CreateGalleryItem(ctx context.Context, in GalleryItemInput) (*domain.GalleryItem, error)
	GetGalleryItem(ctx context.Context, id string) (*domain.GalleryItem, error)
	ListGalleryItems(ctx context.Context) ([]*domain.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id string, in GalleryItemInput) (*domain.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error

	CreateSponsor(ctx context.Context, in SponsorInput) (*domain.Sponsor, error)
	GetSponsor(ctx context.Context, id string) (*domain.Sponsor, error)
	ListSponsors(ctx context.Context) ([]*domain.Sponsor, error)
	UpdateSponsor(ctx context.Context, id string, in SponsorInput) (*domain.Sponsor, error)
	DeleteSponsor(ctx context.Context, id string) error
}
