package server

import (
	"childrenlk/internal/models"
	"childrenlk/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// OnboardOrganizer handles POST /api/admin/organizers. The generated
// password is emailed to the organizer and never returned.
// @Summary Onboard an organizer with their organization
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body validation.OrganizerInput true "Organizer"
// @Success 200 {object} models.User
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/organizers [post]
func (s *Server) OnboardOrganizer(c *fiber.Ctx) error {
	var req validation.OrganizerInput
	if err := bind(c, &req); err != nil {
		return nil
	}

	user, err := s.organizerService.Onboard(c.UserContext(), actorFrom(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ListOrganizations handles GET /api/admin/organizations
// @Summary List organizations
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{data=[]models.Organization,total=int,limit=int,offset=int}
// @Router /admin/organizations [get]
func (s *Server) ListOrganizations(c *fiber.Ctx) error {
	p := parsePagination(c, defaultPageSize)
	orgs, total, err := s.organizerService.ListOrganizations(c.UserContext(), actorFrom(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return page(c, orgs, total, p)
}

// GetOrganization handles GET /api/admin/organizations/{id}
// @Summary Get an organization
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} models.Organization
// @Router /admin/organizations/{id} [get]
func (s *Server) GetOrganization(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	org, err := s.organizerService.GetOrganization(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(org)
}

// DeletePublished handles DELETE /api/admin/{plural}/{id}. The originating
// request keeps its status.
// @Summary Remove published content
// @Tags admin
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} object{message=string}
// @Router /admin/super-heroes/{id} [delete]
func (s *Server) DeletePublished(kind models.RequestKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		if err := s.catalogService.Delete(c.UserContext(), actorFrom(c), kind, id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": kind.PublishedLabel() + " deleted"})
	}
}

// ResourceDownloads handles GET /api/admin/resources/{id}/downloads
// @Summary Per-document download counts
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {array} models.DocumentDownloadCount
// @Router /admin/resources/{id}/downloads [get]
func (s *Server) ResourceDownloads(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	counts, err := s.downloadService.ForResource(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counts)
}

// CreateAnnouncement handles POST /api/admin/announcements
// @Summary Post an announcement
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body validation.AnnouncementInput true "Announcement"
// @Success 200 {object} models.Announcement
// @Router /admin/announcements [post]
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req validation.AnnouncementInput
	if err := bind(c, &req); err != nil {
		return nil
	}
	a, err := s.announcementService.Create(c.UserContext(), actorFrom(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(a)
}

// DeleteAnnouncement handles DELETE /api/admin/announcements/{id}
// @Summary Delete an announcement
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} object{message=string}
// @Router /admin/announcements/{id} [delete]
func (s *Server) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.announcementService.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Announcement deleted"})
}

// AdminStats handles GET /api/admin/stats
// @Summary Platform statistics
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.AdminStats
// @Router /admin/stats [get]
func (s *Server) AdminStats(c *fiber.Ctx) error {
	stats, err := s.statsService.Admin(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
