package handler

import "time"

type eventRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"    validate:"required"`
	StartsAt    time.Time `json:"starts_at"   validate:"required"`
	EndsAt      time.Time `json:"ends_at"     validate:"required,gtfield=StartsAt"`
	CoverURL    string    `json:"cover_url"   validate:"omitempty,url"`
}

type publicationRequest struct {
	Title       string    `json:"title"        validate:"required"`
	Body        string    `json:"body"         validate:"required"`
	Author      string    `json:"author"       validate:"required"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
}

type galleryItemRequest struct {
	Title    string `json:"title"     validate:"required"`
	ImageURL string `json:"image_url" validate:"required,url"`
	Caption  string `json:"caption"`
}

type sponsorRequest struct {
	Name       string `json:"name"        validate:"required"`
	LogoURL    string `json:"logo_url"    validate:"required,url"`
	WebsiteURL string `json:"website_url" validate:"omitempty,url"`
	Tier       string `json:"tier"        validate:"required,oneof=platinum gold silver bronze"`
}
