package domain

import (
	"errors"
	"time"
)

var ErrContentNotFound = errors.New("content not found")

// SponsorTier ranks sponsors on the public site.
type SponsorTier string

const (
	TierPlatinum SponsorTier = "platinum"
	TierGold     SponsorTier = "gold"
	TierSilver   SponsorTier = "silver"
	TierBronze   SponsorTier = "bronze"
)

// Event is an organization event announced on the site.
type Event struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Location    string    `json:"location" bson:"location"`
	StartsAt    time.Time `json:"starts_at" bson:"starts_at"`
	EndsAt      time.Time `json:"ends_at" bson:"ends_at"`
	CoverURL    string    `json:"cover_url,omitempty" bson:"cover_url,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Publication is a long-form article or announcement.
type Publication struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Body        string    `json:"body" bson:"body"`
	Author      string    `json:"author" bson:"author"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	PublishedAt time.Time `json:"published_at" bson:"published_at"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// GalleryItem references an image hosted on the external media service.
// Binary upload and storage happen outside this backend; only URLs are kept.
type GalleryItem struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	ImageURL  string    `json:"image_url" bson:"image_url"`
	Caption   string    `json:"caption,omitempty" bson:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Sponsor is a partner organization shown on the site.
type Sponsor struct {
	ID         string      `json:"id" bson:"_id,omitempty"`
	Name       string      `json:"name" bson:"name"`
	LogoURL    string      `json:"logo_url" bson:"logo_url"`
	WebsiteURL string      `json:"website_url,omitempty" bson:"website_url,omitempty"`
	Tier       SponsorTier `json:"tier" bson:"tier"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" bson:"updated_at"`
}
