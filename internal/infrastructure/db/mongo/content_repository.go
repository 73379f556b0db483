package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgsite/cms-backend/internal/core/domain"
)

const (
	collectionEvents       = "events"
	collectionPublications = "publications"
	collectionGallery      = "gallery_items"
	collectionSponsors     = "sponsors"
)

// Content documents store their _id as an ObjectID hex string assigned on
// insert, so the domain structs (bson-tagged) round-trip without separate
// document types.

// EventRepository persists organization events.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	e.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Event
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, mapContentErr("find event", err)
	}
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	var out []*domain.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrContentNotFound
	}
	return e, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, "delete event")
}

// PublicationRepository persists publications.
type PublicationRepository struct {
	col *mongo.Collection
}

func NewPublicationRepository(db *mongo.Database) *PublicationRepository {
	return &PublicationRepository{col: db.Collection(collectionPublications)}
}

func (r *PublicationRepository) Create(ctx context.Context, p *domain.Publication) (*domain.Publication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert publication: %w", err)
	}
	return p, nil
}

func (r *PublicationRepository) FindByID(ctx context.Context, id string) (*domain.Publication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Publication
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, mapContentErr("find publication", err)
	}
	return &p, nil
}

func (r *PublicationRepository) List(ctx context.Context) ([]*domain.Publication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	var out []*domain.Publication
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode publications: %w", err)
	}
	return out, nil
}

func (r *PublicationRepository) Update(ctx context.Context, p *domain.Publication) (*domain.Publication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, fmt.Errorf("update publication: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrContentNotFound
	}
	return p, nil
}

func (r *PublicationRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, "delete publication")
}

// GalleryRepository persists gallery items.
type GalleryRepository struct {
	col *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection(collectionGallery)}
}

func (r *GalleryRepository) Create(ctx context.Context, g *domain.GalleryItem) (*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	g.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, g); err != nil {
		return nil, fmt.Errorf("insert gallery item: %w", err)
	}
	return g, nil
}

func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var g domain.GalleryItem
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return nil, mapContentErr("find gallery item", err)
	}
	return &g, nil
}

func (r *GalleryRepository) List(ctx context.Context) ([]*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	var out []*domain.GalleryItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode gallery items: %w", err)
	}
	return out, nil
}

func (r *GalleryRepository) Update(ctx context.Context, g *domain.GalleryItem) (*domain.GalleryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	if err != nil {
		return nil, fmt.Errorf("update gallery item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrContentNotFound
	}
	return g, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, "delete gallery item")
}

// SponsorRepository persists sponsors.
type SponsorRepository struct {
	col *mongo.Collection
}

func NewSponsorRepository(db *mongo.Database) *SponsorRepository {
	return &SponsorRepository{col: db.Collection(collectionSponsors)}
}

func (r *SponsorRepository) Create(ctx context.Context, s *domain.Sponsor) (*domain.Sponsor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	s.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return nil, fmt.Errorf("insert sponsor: %w", err)
	}
	return s, nil
}

func (r *SponsorRepository) FindByID(ctx context.Context, id string) (*domain.Sponsor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Sponsor
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, mapContentErr("find sponsor", err)
	}
	return &s, nil
}

func (r *SponsorRepository) List(ctx context.Context) ([]*domain.Sponsor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "tier", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}
	var out []*domain.Sponsor
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode sponsors: %w", err)
	}
	return out, nil
}

func (r *SponsorRepository) Update(ctx context.Context, s *domain.Sponsor) (*domain.Sponsor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return nil, fmt.Errorf("update sponsor: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrContentNotFound
	}
	return s, nil
}

func (r *SponsorRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, "delete sponsor")
}

func deleteByID(ctx context.Context, col *mongo.Collection, id, op string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

func mapContentErr(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrContentNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
