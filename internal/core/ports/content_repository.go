package ports

import (
	"context"

	"github.com/orgsite/cms-backend/internal/core/domain"
)

// EventRepository defines persistence operations for organization events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// PublicationRepository defines persistence operations for publications.
type PublicationRepository interface {
	Create(ctx context.Context, p *domain.Publication) (*domain.Publication, error)
	FindByID(ctx context.Context, id string) (*domain.Publication, error)
	List(ctx context.Context) ([]*domain.Publication, error)
	Update(ctx context.Context, p *domain.Publication) (*domain.Publication, error)
	Delete(ctx context.Context, id string) error
}

// GalleryRepository defines persistence operations for gallery items.
type GalleryRepository interface {
	Create(ctx context.Context, g *domain.GalleryItem) (*domain.GalleryItem, error)
	FindByID(ctx context.Context, id string) (*domain.GalleryItem, error)
	List(ctx context.Context) ([]*domain.GalleryItem, error)
	Update(ctx context.Context, g *domain.GalleryItem) (*domain.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

// SponsorRepository defines persistence operations for sponsors.
type SponsorRepository interface {
	Create(ctx context.Context, s *domain.Sponsor) (*domain.Sponsor, error)
	FindByID(ctx context.Context, id string) (*domain.Sponsor, error)
	List(ctx context.Context) ([]*domain.Sponsor, error)
	Update(ctx context.Context, s *domain.Sponsor) (*domain.Sponsor, error)
	Delete(ctx context.Context, id string) error
}
