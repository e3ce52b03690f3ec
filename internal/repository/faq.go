package repository

import (
	"context"
	"greenmart-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type FAQRepository interface {
	Create(ctx context.Context, faq *model.FAQ) error
	Update(ctx context.Context, faqID, question, answer string) error
	Delete(ctx context.Context, faqID string) error
	List(ctx context.Context) ([]*model.FAQ, error)
}

type faqRepoImpl struct {
	db *gorm.DB
}

func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepoImpl{
		db: db,
	}
}

func (r *faqRepoImpl) Create(ctx context.Context, faq *model.FAQ) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

func (r *faqRepoImpl) Update(ctx context.Context, faqID, question, answer string) error {
	result := r.db.WithContext(ctx).Model(&model.FAQ{}).
		Where("id = ?", faqID).
		Updates(map[string]interface{}{
			"question":   question,
			"answer":     answer,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *faqRepoImpl) Delete(ctx context.Context, faqID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", faqID).
		Delete(&model.FAQ{}).Error
}

func (r *faqRepoImpl) List(ctx context.Context) ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&faqs).Error

	if err != nil {
		return nil, err
	}

	return faqs, nil
}
