package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgsite/cms-backend/internal/core/domain"
	"github.com/orgsite/cms-backend/internal/core/ports"
)

// ContentService implements CRUD over all site content kinds. It owns the
// timestamps; field validation happens at the transport layer.
type ContentService struct {
	events   ports.EventRepository
	pubs     ports.PublicationRepository
	gallery  ports.GalleryRepository
	sponsors ports.SponsorRepository
	log      zerolog.Logger
}

func NewContentService(
	events ports.EventRepository,
	pubs ports.PublicationRepository,
	gallery ports.GalleryRepository,
	sponsors ports.SponsorRepository,
	log zerolog.Logger,
) *ContentService {
	return &ContentService{
		events:   events,
		pubs:     pubs,
		gallery:  gallery,
		sponsors: sponsors,
		log:      log,
	}
}

// ── Events ──

func (s *ContentService) CreateEvent(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	now := time.Now().UTC()
	return s.events.Create(ctx, &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		CoverURL:    in.CoverURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *ContentService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *ContentService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}

func (s *ContentService) UpdateEvent(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error) {
	existing, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Title = in.Title
	existing.Description = in.Description
	existing.Location = in.Location
	existing.StartsAt = in.StartsAt
	existing.EndsAt = in.EndsAt
	existing.CoverURL = in.CoverURL
	existing.UpdatedAt = time.Now().UTC()
	return s.events.Update(ctx, existing)
}

func (s *ContentService) DeleteEvent(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

// ── Publications ──

func (s *ContentService) CreatePublication(ctx context.Context, in ports.PublicationInput) (*domain.Publication, error) {
	now := time.Now().UTC()
	published := in.PublishedAt
	if published.IsZero() {
		published = now
	}
	return s.pubs.Create(ctx, &domain.Publication{
		Title:       in.Title,
		Body:        in.Body,
		Author:      in.Author,
		Tags:        in.Tags,
		PublishedAt: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *ContentService) GetPublication(ctx context.Context, id string) (*domain.Publication, error) {
	return s.pubs.FindByID(ctx, id)
}

func (s *ContentService) ListPublications(ctx context.Context) ([]*domain.Publication, error) {
	return s.pubs.List(ctx)
}

func (s *ContentService) UpdatePublication(ctx context.Context, id string, in ports.PublicationInput) (*domain.Publication, error) {
	existing, err := s.pubs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Title = in.Title
	existing.Body = in.Body
	existing.Author = in.Author
	existing.Tags = in.Tags
	if !in.PublishedAt.IsZero() {
		existing.PublishedAt = in.PublishedAt
	}
	existing.UpdatedAt = time.Now().UTC()
	return s.pubs.Update(ctx, existing)
}

func (s *ContentService) DeletePublication(ctx context.Context, id string) error {
	return s.pubs.Delete(ctx, id)
}

// ── Gallery ──

func (s *ContentService) CreateGalleryItem(ctx context.Context, in ports.GalleryItemInput) (*domain.GalleryItem, error) {
	now := time.Now().UTC()
	return s.gallery.Create(ctx, &domain.GalleryItem{
		Title:     in.Title,
		ImageURL:  in.ImageURL,
		Caption:   in.Caption,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *ContentService) GetGalleryItem(ctx context.Context, id string) (*domain.GalleryItem, error) {
	return s.gallery.FindByID(ctx, id)
}

func (s *ContentService) ListGalleryItems(ctx context.Context) ([]*domain.GalleryItem, error) {
	return s.gallery.List(ctx)
}

func (s *ContentService) UpdateGalleryItem(ctx context.Context, id string, in ports.GalleryItemInput) (*domain.GalleryItem, error) {
	existing, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Title = in.Title
	existing.ImageURL = in.ImageURL
	existing.Caption = in.Caption
	existing.UpdatedAt = time.Now().UTC()
	return s.gallery.Update(ctx, existing)
}

func (s *ContentService) DeleteGalleryItem(ctx context.Context, id string) error {
	return s.gallery.Delete(ctx, id)
}

// ── Sponsors ──

func (s *ContentService) CreateSponsor(ctx context.Context, in ports.SponsorInput) (*domain.Sponsor, error) {
	now := time.Now().UTC()
	return s.sponsors.Create(ctx, &domain.Sponsor{
		Name:       in.Name,
		LogoURL:    in.LogoURL,
		WebsiteURL: in.WebsiteURL,
		Tier:       domain.SponsorTier(in.Tier),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (s *ContentService) GetSponsor(ctx context.Context, id string) (*domain.Sponsor, error) {
	return s.sponsors.FindByID(ctx, id)
}

func (s *ContentService) ListSponsors(ctx context.Context) ([]*domain.Sponsor, error) {
	return s.sponsors.List(ctx)
}

func (s *ContentService) UpdateSponsor(ctx context.Context, id string, in ports.SponsorInput) (*domain.Sponsor, error) {
	existing, err := s.sponsors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = in.Name
	existing.LogoURL = in.LogoURL
	existing.WebsiteURL = in.WebsiteURL
	existing.Tier = domain.SponsorTier(in.Tier)
	existing.UpdatedAt = time.Now().UTC()
	return s.sponsors.Update(ctx, existing)
}

func (s *ContentService) DeleteSponsor(ctx context.Context, id string) error {
	return s.sponsors.Delete(ctx, id)
}
