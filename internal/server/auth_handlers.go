package server

import (
	"log/slog"

	"childrenlk/internal/middleware"
	"childrenlk/internal/models"
	"childrenlk/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const forgotPasswordReply = "If an account exists for that email, a reset code has been sent"

// Signup handles POST /api/auth/signup
// @Summary Parent signup
// @Description Register a new parent account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.SignupInput true "Signup request"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req validation.SignupInput
	if err := bind(c, &req); err != nil {
		return nil
	}

	user, err := s.authService.Signup(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return s.respondWithSession(c, user)
}

// Login handles POST /api/auth/login
// @Summary Login
// @Description Authenticate and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.LoginInput true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req validation.LoginInput
	if err := bind(c, &req); err != nil {
		return nil
	}

	user, err := s.authService.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return s.respondWithSession(c, user)
}

func (s *Server) respondWithSession(c *fiber.Ctx, user *models.User) error {
	token, err := s.generateToken(user)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Revoke the current session token
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, err := s.parseToken(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := s.revokeToken(c.UserContext(), claims); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to revoke token",
			slog.String("error", err.Error()))
		return respondError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Router /auth/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.authService.Me(c.UserContext(), actorFrom(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ForgotPassword handles POST /api/auth/forgot-password. The reply is the
// same whether or not the account exists.
// @Summary Request a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.ForgotPasswordInput true "Account email"
// @Success 200 {object} object{message=string}
// @Router /auth/forgot-password [post]
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	var req validation.ForgotPasswordInput
	if err := bind(c, &req); err != nil {
		return nil
	}

	if err := s.authService.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": forgotPasswordReply})
}

// ResetPassword handles POST /api/auth/reset-password
// @Summary Reset a password with an emailed code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.ResetPasswordInput true "Reset request"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/reset-password [post]
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var req validation.ResetPasswordInput
	if err := bind(c, &req); err != nil {
		return nil
	}

	if err := s.authService.ResetPassword(c.UserContext(), req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}
