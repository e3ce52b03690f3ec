package repository

import (
	"context"
	"greenmart-api/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminRepository interface {
	Seed(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id string) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	SetResetToken(ctx context.Context, adminID, token string, expires time.Time) error
	FindByResetToken(ctx context.Context, token string) (*model.Admin, error)
	UpdatePassword(ctx context.Context, adminID, hashed string) error
}

type adminRepoImpl struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepoImpl{
		db: db,
	}
}

// Seed inserts the bootstrap admin, keeping the existing row on restart.
func (r *adminRepoImpl) Seed(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(admin).Error
}

func (r *adminRepoImpl) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&admin).Error

	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepoImpl) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&admin).Error

	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepoImpl) SetResetToken(ctx context.Context, adminID, token string, expires time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Admin{}).
		Where("id = ?", adminID).
		Updates(map[string]interface{}{
			"reset_token":         token,
			"reset_token_expires": expires,
			"updated_at":          time.Now(),
		}).Error
}

func (r *adminRepoImpl) FindByResetToken(ctx context.Context, token string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("reset_token = ?", token).
		First(&admin).Error

	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepoImpl) UpdatePassword(ctx context.Context, adminID, hashed string) error {
	return r.db.WithContext(ctx).Model(&model.Admin{}).
		Where("id = ?", adminID).
		Updates(map[string]interface{}{
			"password":            hashed,
			"reset_token":         "",
			"reset_token_expires": nil,
			"updated_at":          time.Now(),
		}).Error
}
