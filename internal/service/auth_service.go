package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"childrenlk/internal/mailer"
	"childrenlk/internal/middleware"
	"childrenlk/internal/models"
	"childrenlk/internal/observability"
	"childrenlk/internal/repository"
	"childrenlk/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidOTP is the message for any failed password reset.
const ErrInvalidOTP = "Invalid or expired OTP"

// AuthService handles account registration, login and OTP password resets.
type AuthService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	mail     mailer.Mailer
	otpTTL   time.Duration
	now      func() time.Time
	hash     func(string) (string, error)
}

// NewAuthService returns a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	mail mailer.Mailer,
	otpTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		mail:     mail,
		otpTTL:   otpTTL,
		now:      time.Now,
		hash:     HashPassword,
	}
}

// Signup registers a parent account.
func (s *AuthService) Signup(ctx context.Context, in validation.SignupInput) (*models.User, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    validation.NormalizeEmail(in.Email),
		Password: hash,
		Role:     models.RoleParent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account.
func (s *AuthService) Login(ctx context.Context, in validation.LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// Me returns the account of userID, with its organization for organizers.
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleOrganizer {
		org, err := s.orgRepo.GetByOwner(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Organization = org
	}
	return user, nil
}

// ForgotPassword issues an OTP for email. Unknown addresses succeed silently
// and email delivery failures are only logged.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = validation.NormalizeEmail(email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	code, err := GenerateOTP()
	if err != nil {
		return models.NewInternalError(err)
	}
	if _, err := s.userRepo.SetOTP(ctx, email, code, s.now().Add(s.otpTTL)); err != nil {
		return err
	}

	msg, err := mailer.OTPMessage(user.Email, user.Name, mailer.OTPData{
		Name:       user.Name,
		Code:       code,
		TTLMinutes: int(s.otpTTL / time.Minute),
	})
	if err == nil {
		err = s.mail.Send(ctx, msg)
	}
	if err != nil {
		observability.EmailFailures.WithLabelValues(mailer.TemplateOTP).Inc()
		middleware.Logger.ErrorContext(ctx, "failed to send otp email",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// ResetPassword replaces the password when the OTP matches and has not
// expired. The OTP is single-use. The new password is only hashed once the
// code has been checked; the update re-checks it so the code is consumed once.
func (s *AuthService) ResetPassword(ctx context.Context, in validation.ResetPasswordInput) error {
	email := validation.NormalizeEmail(in.Email)
	now := s.now()
	valid, err := s.userRepo.OTPValid(ctx, email, in.OTP, now)
	if err != nil {
		return err
	}
	if !valid {
		return models.NewValidationError(ErrInvalidOTP)
	}

	hash, err := s.hash(in.NewPassword)
	if err != nil {
		return err
	}
	ok, err := s.userRepo.ResetPassword(ctx, email, in.OTP, hash, now)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewValidationError(ErrInvalidOTP)
	}
	return nil
}

// HashPassword bcrypt-hashes password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hash), nil
}

// GenerateOTP returns a uniformly random 6-digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

const passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GeneratePassword returns a random password satisfying the password policy.
func GeneratePassword(length int) (string, error) {
	for {
		buf := make([]byte, length)
		for i := range buf {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
			if err != nil {
				return "", err
			}
			buf[i] = passwordAlphabet[n.Int64()]
		}
		if validation.ValidatePassword(string(buf)) == nil {
			return string(buf), nil
		}
	}
}
