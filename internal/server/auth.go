package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"childrenlk/internal/middleware"
	"childrenlk/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "childrenlk-api"
	tokenAudience = "childrenlk-client"
	tokenTTL      = 7 * 24 * time.Hour
	blacklistKey  = "blacklist:"
)

// AuthRequired validates the bearer token and resolves the caller's role and
// organization into an Actor stored in locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := s.parseToken(c)
		if err != nil {
			return respondError(c, err)
		}

		if jti, _ := claims["jti"].(string); jti != "" && s.redis != nil {
			revoked, err := s.redis.Exists(c.UserContext(), blacklistKey+jti).Result()
			if err != nil {
				middleware.Logger.WarnContext(c.UserContext(), "token revocation check failed, accepting token",
					slog.String("jti", jti),
					slog.String("error", err.Error()),
				)
			} else if revoked > 0 {
				return respondError(c, models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		sub, _ := claims["sub"].(string)
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil || userID == 0 {
			return respondError(c, models.NewUnauthorizedError("Invalid user ID in token"))
		}

		actor, err := s.resolveActor(c.UserContext(), uint(userID))
		if err != nil {
			return respondError(c, err)
		}

		c.Locals("userID", actor.UserID)
		c.Locals("role", string(actor.Role))
		c.Locals("actor", actor)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, actor.UserID)
		ctx = context.WithValue(ctx, middleware.RoleKey, string(actor.Role))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RequireRole rejects callers whose role is not one of roles. Organizers
// without an organization are rejected as well. It runs before any handler
// touches the body or the database.
func (s *Server) RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := actorFrom(c)
		for _, role := range roles {
			if actor.Role != role {
				continue
			}
			if role == models.RoleOrganizer && !actor.IsOrganizer() {
				break
			}
			return c.Next()
		}
		return respondError(c, models.NewUnauthorizedError(roleMessage(roles)))
	}
}

func roleMessage(roles []models.Role) string {
	if len(roles) == 1 {
		switch roles[0] {
		case models.RoleAdmin:
			return "Admin access required"
		case models.RoleOrganizer:
			return "Organizer access required"
		}
	}
	return "Access denied"
}

func (s *Server) resolveActor(ctx context.Context, userID uint) (models.Actor, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return models.Anonymous, models.NewUnauthorizedError("User no longer exists")
		}
		return models.Anonymous, err
	}

	actor := models.Actor{UserID: user.ID, Role: user.Role}
	if user.Role == models.RoleOrganizer {
		org, err := s.orgRepo.GetByOwner(ctx, user.ID)
		if err != nil {
			return models.Anonymous, err
		}
		if org != nil {
			actor.OrganizationID = &org.ID
		}
	}
	return actor, nil
}

// actorFrom returns the authenticated caller, or Anonymous.
func actorFrom(c *fiber.Ctx) models.Actor {
	if actor, ok := c.Locals("actor").(models.Actor); ok {
		return actor
	}
	return models.Anonymous
}

func bearerToken(c *fiber.Ctx) string {
	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}

// parseToken validates signature, expiry, issuer and audience of the bearer
// token.
func (s *Server) parseToken(c *fiber.Ctx) (jwt.MapClaims, error) {
	raw := bearerToken(c)
	if raw == "" {
		return nil, models.NewUnauthorizedError("Authorization required")
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}
	return claims, nil
}

// generateToken creates a signed session token for user.
func (s *Server) generateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": string(user.Role),
		"iss":  tokenIssuer,
		"aud":  tokenAudience,
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  generateJTI(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func generateJTI(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8])
}

// revokeToken blacklists the token's jti until it would have expired anyway.
func (s *Server) revokeToken(ctx context.Context, claims jwt.MapClaims) error {
	jti, _ := claims["jti"].(string)
	if jti == "" || s.redis == nil {
		return nil
	}

	ttl := tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, blacklistKey+jti, "1", ttl).Err()
}
