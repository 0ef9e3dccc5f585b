package server

import (
	"childrenlk/internal/models"
	"childrenlk/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetOwnOrganization handles GET /api/organizer/organization
// @Summary Own organization
// @Tags organizer
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Organization
// @Router /organizer/organization [get]
func (s *Server) GetOwnOrganization(c *fiber.Ctx) error {
	org, err := s.organizerService.OwnOrganization(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(org)
}

// UpdateOwnOrganization handles PUT /api/organizer/organization
// @Summary Update own organization
// @Tags organizer
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body validation.OrganizationInput true "Profile"
// @Success 200 {object} models.Organization
// @Router /organizer/organization [put]
func (s *Server) UpdateOwnOrganization(c *fiber.Ctx) error {
	var req validation.OrganizationInput
	if err := bind(c, &req); err != nil {
		return nil
	}
	org, err := s.organizerService.UpdateOwnOrganization(c.UserContext(), actorFrom(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(org)
}

// OrganizerStats handles GET /api/organizer/stats
// @Summary Request counts of the caller's organization
// @Tags organizer
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.OrganizerStats
// @Router /organizer/stats [get]
func (s *Server) OrganizerStats(c *fiber.Ctx) error {
	stats, err := s.statsService.Organizer(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
