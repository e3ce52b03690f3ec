package service

import (
	"context"
	"greenmart-api/internal/config"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"
	"greenmart-api/internal/utils"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newAuthEnv(t *testing.T) (*gorm.DB, AuthService) {
	db := newTestDB(t)
	cfg := config.JWT{Secret: testSecret, UserTTLHours: 24, AdminTTLHours: 8}
	return db, NewAuthService(cfg, repository.NewUserRepository(db), repository.NewAdminRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Asma",
		Email:    "Asma@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	// email is normalized and a verification token issued
	assert.Equal(t, "asma@example.com", user.Email)
	assert.NotEmpty(t, user.VerifyToken)
	assert.False(t, user.IsVerified)

	token, err := svc.Login(ctx, "asma@example.com", "correct horse")
	require.NoError(t, err)

	claims, err := utils.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.PrincipalID)
	assert.Empty(t, claims.Role)

	_, err = svc.Login(ctx, "asma@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc := newAuthEnv(t)
	ctx := context.Background()

	req := &dto.RegisterRequest{Name: "Asma", Email: "asma@example.com", Password: "correct horse"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_ShortPassword(t *testing.T) {
	_, svc := newAuthEnv(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Asma",
		Email:    "asma@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_GoogleUserRejectedOnPasswordPath(t *testing.T) {
	db, svc := newAuthEnv(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.User{
		ID:           uuid.NewString(),
		Name:         "G User",
		Email:        "guser@example.com",
		IsGoogleUser: true,
		GoogleID:     "google-123",
	}).Error)

	_, err := svc.Login(ctx, "guser@example.com", "anything")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyEmail(t *testing.T) {
	db, svc := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Asma",
		Email:    "asma@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(ctx, user.VerifyToken))

	var stored model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&stored).Error)
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.VerifyToken)

	assert.ErrorIs(t, svc.VerifyEmail(ctx, "bogus"), ErrValidation)
}

func TestPasswordResetFlow(t *testing.T) {
	_, svc := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Asma",
		Email:    "asma@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	token, err := svc.ForgotPassword(ctx, "asma@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(ctx, token, "new password 1"))

	_, err = svc.Login(ctx, "asma@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "asma@example.com", "new password 1")
	assert.NoError(t, err)

	// token is single-use
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "another pass"), ErrValidation)
}

func TestPasswordReset_ExpiredToken(t *testing.T) {
	db, svc := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Asma",
		Email:    "asma@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	token, err := svc.ForgotPassword(ctx, "asma@example.com")
	require.NoError(t, err)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("reset_token_expires", expired).Error)

	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "new password 1"), ErrValidation)
}

func TestAdminLogin_RoleClaim(t *testing.T) {
	db, svc := newAuthEnv(t)
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := &model.Admin{
		ID:       uuid.NewString(),
		Name:     "Administrator",
		Email:    "admin@example.com",
		Password: string(hashed),
	}
	require.NoError(t, db.Create(admin).Error)

	token, err := svc.AdminLogin(ctx, "admin@example.com", "admin secret")
	require.NoError(t, err)

	claims, err := utils.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.PrincipalID)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = svc.AdminLogin(ctx, "admin@example.com", "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
