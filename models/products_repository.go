package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

type ProductFilters struct {
	CategorySlug  string
	PriceLessThan *float64
	ActiveOnly    bool
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category").
		Preload("Translations")

	// Filter
	if filters.CategorySlug != "" {
		query = query.Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}
	if filters.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.Order("products.id").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Translations").
		Preload("Category").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Translations").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// SaveProduct inserts or fully updates a product row without touching its translations.
func (r *ProductsRepository) SaveProduct(ctx context.Context, product *Product) error {
	return normalizeWriteError(r.db.WithContext(ctx).Omit("Category", "Translations").Save(product).Error)
}

// ProductSlugExists reports whether a product other than excludeID owns slug.
func (r *ProductsRepository) ProductSlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProductSlug writes only the slug column; updated_at is left as is.
func (r *ProductsRepository) UpdateProductSlug(ctx context.Context, id uint, slug string) error {
	res := r.db.WithContext(ctx).Model(&Product{ID: id}).UpdateColumn("slug", slug)
	if res.Error != nil {
		return normalizeWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a product and returns the deleted row so callers can
// release attached media.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		return tx.Delete(&Product{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CategoryImages lists the non-empty image ids of a category's products.
func (r *ProductsRepository) CategoryImages(ctx context.Context, categoryID uint) ([]string, error) {
	var images []string
	if err := r.db.WithContext(ctx).Model(&Product{}).
		Where("category_id = ? AND image <> ''", categoryID).
		Pluck("image", &images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
