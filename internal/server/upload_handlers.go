package server

import (
	"childrenlk/internal/models"
	"childrenlk/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Upload handles POST /api/upload. Any signed-in user may upload.
// @Summary Upload a base64 file to the media host
// @Tags upload
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body validation.UploadInput true "File"
// @Success 200 {object} storage.Uploaded
// @Failure 400 {object} models.ErrorResponse
// @Router /upload [post]
func (s *Server) Upload(c *fiber.Ctx) error {
	var req validation.UploadInput
	if err := bind(c, &req); err != nil {
		return nil
	}
	res, err := s.uploadService.Upload(c.UserContext(), actorFrom(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
