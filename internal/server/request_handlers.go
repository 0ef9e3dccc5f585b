package server

import (
	"childrenlk/internal/models"
	"childrenlk/internal/repository"
	"childrenlk/internal/service"
	"childrenlk/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SubmitRequest handles POST /api/organizer/{kind}-requests. Whatever status
// the body carries, the stored request starts as pending.
// @Summary Submit a request for review
// @Tags organizer
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "resource, media, event or super-hero"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /organizer/{kind}-requests [post]
func (s *Server) SubmitRequest(kind models.RequestKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := validation.DecodeRequest(kind, c.Body())
		if err != nil {
			return respondError(c, err)
		}

		created, err := s.submissionService.Submit(c.UserContext(), actorFrom(c), kind, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(created)
	}
}

// ListRequests handles GET /api/{organizer|admin}/{kind}-requests. Organizers
// only see their organization's requests.
// @Summary List requests
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, approved or denied"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} object{data=[]object,total=int,limit=int,offset=int}
// @Router /admin/{kind}-requests [get]
func (s *Server) ListRequests(kind models.RequestKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := parsePagination(c, defaultPageSize)
		items, total, err := s.submissionService.List(c.UserContext(), actorFrom(c), kind, repository.RequestFilter{
			Status: models.RequestStatus(c.Query("status")),
			Limit:  p.Limit,
			Offset: p.Offset,
		})
		if err != nil {
			return respondError(c, err)
		}
		return page(c, items, total, p)
	}
}

// GetRequest handles GET /api/{organizer|admin}/{kind}-requests/{id}.
// @Summary Get a request
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Request ID"
// @Success 200 {object} object
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/{kind}-requests/{id} [get]
func (s *Server) GetRequest(kind models.RequestKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}

		req, err := s.submissionService.Get(c.UserContext(), actorFrom(c), kind, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(req)
	}
}

// ReviewRequest handles PATCH /api/admin/{kind}-requests/{id}.
// @Summary Approve or deny a request
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body validation.ReviewInput true "Decision"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/{kind}-requests/{id} [patch]
func (s *Server) ReviewRequest(kind models.RequestKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}

		var body validation.ReviewInput
		if err := c.BodyParser(&body); err != nil {
			return respondError(c, models.NewValidationError("Invalid request body"))
		}

		req, err := s.reviewService.Review(c.UserContext(), actorFrom(c), service.ReviewInput{
			Kind:        kind,
			ID:          id,
			Status:      body.Status,
			AdminReason: body.AdminReason,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(req)
	}
}
