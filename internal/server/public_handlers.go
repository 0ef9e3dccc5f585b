package server

import (
	"childrenlk/internal/models"
	"childrenlk/internal/repository"
	"childrenlk/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ListPublished handles GET /api/public/{plural}. Only approved content is
// ever returned.
// @Summary Browse published content
// @Tags public
// @Produce json
// @Param tag query string false "Tag"
// @Param targetAudience query string false "children or people_work_for_children"
// @Param ageGroup query string false "1-5, 5-10, 11-15, 15-18 or above-18"
// @Param q query string false "Name contains"
// @Param organizationId query int false "Organization"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} object{data=[]object,total=int,limit=int,offset=int}
// @Router /public/{plural} [get]
func (s *Server) ListPublished(kind models.RequestKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := parsePagination(c, defaultPageSize)
		filter := repository.PublicFilter{
			Tag:            c.Query("tag"),
			TargetAudience: models.TargetAudience(c.Query("targetAudience")),
			AgeGroup:       models.AgeGroup(c.Query("ageGroup")),
			Query:          c.Query("q"),
			Limit:          p.Limit,
			Offset:         p.Offset,
		}
		if raw := c.Query("organizationId"); raw != "" {
			orgID := c.QueryInt("organizationId")
			if orgID <= 0 {
				return respondError(c, models.NewValidationError("Invalid organization ID"))
			}
			id := uint(orgID)
			filter.OrganizationID = &id
		}

		items, total, err := s.catalogService.List(c.UserContext(), kind, filter)
		if err != nil {
			return respondError(c, err)
		}
		return page(c, items, total, p)
	}
}

// GetPublished handles GET /api/public/{plural}/{id}.
// @Summary Get published content
// @Tags public
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} object
// @Failure 404 {object} models.ErrorResponse
// @Router /public/{plural}/{id} [get]
func (s *Server) GetPublished(kind models.RequestKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}

		item, err := s.catalogService.Get(c.UserContext(), kind, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(item)
	}
}

// RecordDownload handles POST /api/public/resources/download
// @Summary Count a document download
// @Tags public
// @Accept json
// @Produce json
// @Param request body validation.DownloadInput true "Document"
// @Success 200 {object} service.DownloadCount
// @Failure 404 {object} models.ErrorResponse
// @Router /public/resources/download [post]
func (s *Server) RecordDownload(c *fiber.Ctx) error {
	var req validation.DownloadInput
	if err := bind(c, &req); err != nil {
		return nil
	}

	count, err := s.downloadService.Record(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(count)
}

// ListAnnouncements handles GET /api/public/announcements
// @Summary List announcements
// @Tags public
// @Produce json
// @Success 200 {object} object{data=[]models.Announcement,total=int,limit=int,offset=int}
// @Router /public/announcements [get]
func (s *Server) ListAnnouncements(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageSize)
	items, total, err := s.announcementService.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return page(c, items, total, p)
}

// SuggestTags handles GET /api/tags?q=
// @Summary Tag autocomplete
// @Tags public
// @Produce json
// @Param q query string false "Prefix"
// @Success 200 {array} string
// @Router /tags [get]
func (s *Server) SuggestTags(c *fiber.Ctx) error {
	tags, err := s.tagService.Suggest(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(tags)
}
