package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgsite/cms-backend/internal/api/metrics"
	"github.com/orgsite/cms-backend/internal/core/ports"
)

// ContentHandler exposes CRUD endpoints for all site content kinds. Reads
// are public; mutations sit behind the auth middleware (any admin role).
type ContentHandler struct {
	content ports.ContentService
}

func NewContentHandler(content ports.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// ── Events ──

// CreateEvent handles POST /v1/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  errorResponse
// @Router       /v1/events [post]
func (h *ContentHandler) CreateEvent(c echo.Context) error {
	var req eventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.content.CreateEvent(c.Request().Context(), ports.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("event", "create").Inc()
	return c.JSON(http.StatusCreated, created)
}

// ListEvents handles GET /v1/events.
func (h *ContentHandler) ListEvents(c echo.Context) error {
	events, err := h.content.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /v1/events/:id.
func (h *ContentHandler) GetEvent(c echo.Context) error {
	event, err := h.content.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateEvent handles PUT /v1/events/:id.
func (h *ContentHandler) UpdateEvent(c echo.Context) error {
	var req eventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.content.UpdateEvent(c.Request().Context(), c.Param("id"), ports.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("event", "update").Inc()
	return c.JSON(http.StatusOK, updated)
}

// DeleteEvent handles DELETE /v1/events/:id.
func (h *ContentHandler) DeleteEvent(c echo.Context) error {
	if err := h.content.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("event", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "event removed"})
}

// ── Publications ──

// CreatePublication handles POST /v1/publications.
//
// @Summary      Create a publication
// @Tags         publications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      publicationRequest  true  "Publication"
// @Success      201   {object}  domain.Publication
// @Failure      400   {object}  errorResponse
// @Router       /v1/publications [post]
func (h *ContentHandler) CreatePublication(c echo.Context) error {
	var req publicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.content.CreatePublication(c.Request().Context(), ports.PublicationInput{
		Title:       req.Title,
		Body:        req.Body,
		Author:      req.Author,
		Tags:        req.Tags,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("publication", "create").Inc()
	return c.JSON(http.StatusCreated, created)
}

// ListPublications handles GET /v1/publications.
func (h *ContentHandler) ListPublications(c echo.Context) error {
	pubs, err := h.content.ListPublications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pubs)
}

// GetPublication handles GET /v1/publications/:id.
func (h *ContentHandler) GetPublication(c echo.Context) error {
	pub, err := h.content.GetPublication(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pub)
}

// UpdatePublication handles PUT /v1/publications/:id.
func (h *ContentHandler) UpdatePublication(c echo.Context) error {
	var req publicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.content.UpdatePublication(c.Request().Context(), c.Param("id"), ports.PublicationInput{
		Title:       req.Title,
		Body:        req.Body,
		Author:      req.Author,
		Tags:        req.Tags,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("publication", "update").Inc()
	return c.JSON(http.StatusOK, updated)
}

// DeletePublication handles DELETE /v1/publications/:id.
func (h *ContentHandler) DeletePublication(c echo.Context) error {
	if err := h.content.DeletePublication(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("publication", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "publication removed"})
}

// ── Gallery ──

// CreateGalleryItem handles POST /v1/gallery. The image itself lives on the
// external media host; only its URL is stored.
//
// @Summary      Add a gallery item
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      galleryItemRequest  true  "Gallery item"
// @Success      201   {object}  domain.GalleryItem
// @Failure      400   {object}  errorResponse
// @Router       /v1/gallery [post]
func (h *ContentHandler) CreateGalleryItem(c echo.Context) error {
	var req galleryItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.content.CreateGalleryItem(c.Request().Context(), ports.GalleryItemInput{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("gallery_item", "create").Inc()
	return c.JSON(http.StatusCreated, created)
}

// ListGalleryItems handles GET /v1/gallery.
func (h *ContentHandler) ListGalleryItems(c echo.Context) error {
	items, err := h.content.ListGalleryItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetGalleryItem handles GET /v1/gallery/:id.
func (h *ContentHandler) GetGalleryItem(c echo.Context) error {
	item, err := h.content.GetGalleryItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateGalleryItem handles PUT /v1/gallery/:id.
func (h *ContentHandler) UpdateGalleryItem(c echo.Context) error {
	var req galleryItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.content.UpdateGalleryItem(c.Request().Context(), c.Param("id"), ports.GalleryItemInput{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("gallery_item", "update").Inc()
	return c.JSON(http.StatusOK, updated)
}

// DeleteGalleryItem handles DELETE /v1/gallery/:id.
func (h *ContentHandler) DeleteGalleryItem(c echo.Context) error {
	if err := h.content.DeleteGalleryItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("gallery_item", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "gallery item removed"})
}

// ── Sponsors ──

// CreateSponsor handles POST /v1/sponsors.
//
// @Summary      Add a sponsor
// @Tags         sponsors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sponsorRequest  true  "Sponsor"
// @Success      201   {object}  domain.Sponsor
// @Failure      400   {object}  errorResponse
// @Router       /v1/sponsors [post]
func (h *ContentHandler) CreateSponsor(c echo.Context) error {
	var req sponsorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.content.CreateSponsor(c.Request().Context(), ports.SponsorInput{
		Name:       req.Name,
		LogoURL:    req.LogoURL,
		WebsiteURL: req.WebsiteURL,
		Tier:       req.Tier,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("sponsor", "create").Inc()
	return c.JSON(http.StatusCreated, created)
}

// ListSponsors handles GET /v1/sponsors.
func (h *ContentHandler) ListSponsors(c echo.Context) error {
	sponsors, err := h.content.ListSponsors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sponsors)
}

// GetSponsor handles GET /v1/sponsors/:id.
func (h *ContentHandler) GetSponsor(c echo.Context) error {
	sponsor, err := h.content.GetSponsor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sponsor)
}

// UpdateSponsor handles PUT /v1/sponsors/:id.
func (h *ContentHandler) UpdateSponsor(c echo.Context) error {
	var req sponsorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.content.UpdateSponsor(c.Request().Context(), c.Param("id"), ports.SponsorInput{
		Name:       req.Name,
		LogoURL:    req.LogoURL,
		WebsiteURL: req.WebsiteURL,
		Tier:       req.Tier,
	})
	if err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("sponsor", "update").Inc()
	return c.JSON(http.StatusOK, updated)
}

// DeleteSponsor handles DELETE /v1/sponsors/:id.
func (h *ContentHandler) DeleteSponsor(c echo.Context) error {
	if err := h.content.DeleteSponsor(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ContentWritesTotal.WithLabelValues("sponsor", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "sponsor removed"})
}

// bindAndValidate decodes the JSON body and runs struct validation, mapping
// failures to 400 before any service call.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
