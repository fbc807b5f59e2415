package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type TranslationsRepository struct {
	db *gorm.DB
}

func NewTranslationsRepository(db *gorm.DB) *TranslationsRepository {
	return &TranslationsRepository{
		db: db,
	}
}

func (r *TranslationsRepository) GetTranslation(ctx context.Context, productID uint, lang Language) (*ProductTranslation, error) {
	var tr ProductTranslation
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND language = ?", productID, lang).
		First(&tr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranslationNotFound
		}
		return nil, err
	}
	return &tr, nil
}

// SaveTranslation inserts a new translation or updates an existing one by id.
func (r *TranslationsRepository) SaveTranslation(ctx context.Context, tr *ProductTranslation) error {
	return normalizeWriteError(r.db.WithContext(ctx).Save(tr).Error)
}

// CreateTranslation inserts tr; a second row for the same (product, language)
// fails with ErrConflict.
func (r *TranslationsRepository) CreateTranslation(ctx context.Context, tr *ProductTranslation) error {
	return normalizeWriteError(r.db.WithContext(ctx).Create(tr).Error)
}

func (r *TranslationsRepository) TranslationExists(ctx context.Context, productID uint, lang Language) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProductTranslation{}).
		Where("product_id = ? AND language = ?", productID, lang).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TranslationsRepository) CountTranslations(ctx context.Context, productID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProductTranslation{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
