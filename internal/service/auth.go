package service

import (
	"context"
	"errors"
	"fmt"
	"greenmart-api/internal/config"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"
	"greenmart-api/internal/utils"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = time.Hour

	RoleAdmin = "admin"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) error

	AdminLogin(ctx context.Context, email, password string) (string, error)
	AdminForgotPassword(ctx context.Context, email string) (string, error)
	AdminResetPassword(ctx context.Context, token, password string) error
}

type authServiceImpl struct {
	cfg       config.JWT
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
}

func NewAuthService(cfg config.JWT, userRepo repository.UserRepository, adminRepo repository.AdminRepository) AuthService {
	return &authServiceImpl{
		cfg:       cfg,
		userRepo:  userRepo,
		adminRepo: adminRepo,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: an account with this email already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	expires := time.Now().Add(verifyTokenTTL)
	user := &model.User{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Email:              email,
		Password:           string(hashed),
		VerifyToken:        uuid.NewString(),
		VerifyTokenExpires: &expires,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return "", err
	}

	// google identities have no local password
	if user.IsGoogleUser {
		return "", fmt.Errorf("%w: this account uses Google sign-in", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return utils.GenerateToken(s.cfg.Secret, user.ID, "", time.Duration(s.cfg.UserTTLHours)*time.Hour)
}

func (s *authServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid verification token", ErrValidation)
		}
		return err
	}

	if user.VerifyTokenExpires == nil || time.Now().After(*user.VerifyTokenExpires) {
		return fmt.Errorf("%w: verification token has expired", ErrValidation)
	}

	return s.userRepo.MarkVerified(ctx, user.ID)
}

// ForgotPassword stores a reset token and returns it to the caller; mailing
// it out is owned by the delivery layer, not this service.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: no account with this email", ErrNotFound)
		}
		return "", err
	}

	if user.IsGoogleUser {
		return "", fmt.Errorf("%w: this account uses Google sign-in", ErrValidation)
	}

	token := uuid.NewString()
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return "", err
	}

	return token, nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid reset token", ErrValidation)
		}
		return err
	}

	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return fmt.Errorf("%w: reset token has expired", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(hashed))
}

func (s *authServiceImpl) AdminLogin(ctx context.Context, email, password string) (string, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	return utils.GenerateToken(s.cfg.Secret, admin.ID, RoleAdmin, time.Duration(s.cfg.AdminTTLHours)*time.Hour)
}

func (s *authServiceImpl) AdminForgotPassword(ctx context.Context, email string) (string, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: no admin with this email", ErrNotFound)
		}
		return "", err
	}

	token := uuid.NewString()
	if err := s.adminRepo.SetResetToken(ctx, admin.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return "", err
	}

	return token, nil
}

func (s *authServiceImpl) AdminResetPassword(ctx context.Context, token, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	admin, err := s.adminRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid reset token", ErrValidation)
		}
		return err
	}

	if admin.ResetTokenExpires == nil || time.Now().After(*admin.ResetTokenExpires) {
		return fmt.Errorf("%w: reset token has expired", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.adminRepo.UpdatePassword(ctx, admin.ID, string(hashed))
}
