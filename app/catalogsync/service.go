// Package catalogsync keeps German and Arabic catalog content consistent and
// derives slugs from the German names. Each exported Service method is one
// sync operation run after (or around) a single entity write.
package catalogsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mytheresa/bilingual-catalog/app/slug"
	"github.com/mytheresa/bilingual-catalog/app/translate"
	"github.com/mytheresa/bilingual-catalog/models"
)

// maxSlugAttempts bounds re-allocation after a concurrent writer took the slug.
const maxSlugAttempts = 3

type CategoryStore interface {
	SaveCategory(ctx context.Context, category *models.Category) error
	CategorySlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type ProductStore interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	SaveProduct(ctx context.Context, product *models.Product) error
	ProductSlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	UpdateProductSlug(ctx context.Context, id uint, slug string) error
	DeleteProduct(ctx context.Context, id uint) (*models.Product, error)
	CategoryImages(ctx context.Context, categoryID uint) ([]string, error)
}

type TranslationStore interface {
	GetTranslation(ctx context.Context, productID uint, lang models.Language) (*models.ProductTranslation, error)
	SaveTranslation(ctx context.Context, tr *models.ProductTranslation) error
	CreateTranslation(ctx context.Context, tr *models.ProductTranslation) error
	TranslationExists(ctx context.Context, productID uint, lang models.Language) (bool, error)
}

// ImageRemover releases media attached to deleted products.
type ImageRemover interface {
	RemoveImage(ctx context.Context, publicID string) error
}

type Dependencies struct {
	Categories   CategoryStore
	Products     ProductStore
	Translations TranslationStore
	Translator   translate.Translator
	Slugs        *slug.Allocator
	Images       ImageRemover
	Log          logrus.FieldLogger
}

type Service struct {
	categories   CategoryStore
	products     ProductStore
	translations TranslationStore
	images       ImageRemover
	log          logrus.FieldLogger

	categorySync    *CategorySync
	translationSync *ProductTranslationSync
	slugCascade     *ProductSlugCascade
}

// TranslationResult is the outcome of SyncProductTranslation.
type TranslationResult struct {
	Translation *models.ProductTranslation
	// Counterpart is the auto-created row for the other language, nil when
	// one already existed.
	Counterpart *models.ProductTranslation
	// ProductSlug is the product's slug after the sync; "" while no German
	// title exists.
	ProductSlug string
}

func NewService(d Dependencies) *Service {
	if d.Slugs == nil {
		d.Slugs = slug.New(slug.DefaultMaxProbes)
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.Translator == nil {
		d.Translator = translate.NewService(nil, 0, d.Log)
	}
	return &Service{
		categories:      d.Categories,
		products:        d.Products,
		translations:    d.Translations,
		images:          d.Images,
		log:             d.Log,
		categorySync:    NewCategorySync(d.Translator, d.Slugs),
		translationSync: NewProductTranslationSync(d.Translator),
		slugCascade:     NewProductSlugCascade(d.Slugs),
	}
}

// SyncCategory validates, back-fills the missing name, assigns the slug if
// unset and persists the category.
func (s *Service) SyncCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	if err := s.categorySync.Validate(c); err != nil {
		return nil, err
	}
	s.categorySync.FillNames(ctx, c)

	exists := func(candidate string) (bool, error) {
		return s.categories.CategorySlugExists(ctx, candidate, c.ID)
	}

	for attempt := 1; ; attempt++ {
		assigned, err := s.categorySync.AssignSlug(c, exists)
		if err != nil {
			return nil, fmt.Errorf("allocate category slug: %w", err)
		}

		err = s.categories.SaveCategory(ctx, c)
		if err == nil {
			break
		}
		if !assigned || !errors.Is(err, models.ErrConflict) || attempt >= maxSlugAttempts {
			return nil, fmt.Errorf("save category: %w", err)
		}
		s.log.WithFields(logrus.Fields{"category_id": c.ID, "slug": c.SlugValue()}).
			Warn("category slug taken concurrently, reallocating")
		c.Slug = nil
	}

	s.log.WithFields(logrus.Fields{"category_id": c.ID, "slug": c.SlugValue()}).Debug("category synced")
	return c, nil
}

// SyncProduct persists a product and, if it has no slug yet, derives one from
// an already attached German translation.
func (s *Service) SyncProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p.Price.IsNegative() {
		return nil, &ValidationError{Entity: "product", Message: "price must not be negative"}
	}
	if p.SalePrice.Valid && p.SalePrice.Decimal.IsNegative() {
		return nil, &ValidationError{Entity: "product", Message: "sale price must not be negative"}
	}
	if p.SKU == "" {
		return nil, &ValidationError{Entity: "product", Message: "sku is required"}
	}
	if p.CategoryID == 0 {
		return nil, &ValidationError{Entity: "product", Message: "category is required"}
	}

	if err := s.products.SaveProduct(ctx, p); err != nil {
		if errors.Is(err, models.ErrMissingReference) {
			return nil, fmt.Errorf("save product: %w", errors.Join(models.ErrCategoryNotFound, err))
		}
		return nil, fmt.Errorf("save product: %w", err)
	}
	if p.SlugValue() != "" {
		return p, nil
	}

	de, err := s.translations.GetTranslation(ctx, p.ID, models.LanguageDE)
	if errors.Is(err, models.ErrTranslationNotFound) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load german translation: %w", err)
	}
	if de.Title == "" {
		return p, nil
	}
	if _, err := s.RecomputeProductSlug(ctx, p, de.Title); err != nil {
		return nil, err
	}
	return p, nil
}

// SyncProductTranslation persists tr (upserting by product and language),
// creates the other-language counterpart if the product has none, and
// re-slugs the product for every German row written.
func (s *Service) SyncProductTranslation(ctx context.Context, tr *models.ProductTranslation) (*TranslationResult, error) {
	if err := s.translationSync.Validate(tr); err != nil {
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, tr.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	if tr.ID == 0 {
		existing, err := s.translations.GetTranslation(ctx, tr.ProductID, tr.Language)
		switch {
		case err == nil:
			tr.ID = existing.ID
		case !errors.Is(err, models.ErrTranslationNotFound):
			return nil, fmt.Errorf("load translation: %w", err)
		}
	}
	if err := s.translations.SaveTranslation(ctx, tr); err != nil {
		return nil, fmt.Errorf("save translation: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{"product_id": product.ID, "language": tr.Language})
	result := &TranslationResult{Translation: tr}

	counterpartLang := tr.Language.Counterpart()
	exists, err := s.translations.TranslationExists(ctx, tr.ProductID, counterpartLang)
	if err != nil {
		return nil, fmt.Errorf("check %s translation: %w", counterpartLang, err)
	}
	if counterpart := s.translationSync.Counterpart(ctx, tr, exists); counterpart != nil {
		err := s.translations.CreateTranslation(ctx, counterpart)
		switch {
		case err == nil:
			result.Counterpart = counterpart
			log.WithField("counterpart", counterpartLang).Info("created counterpart translation")
		case errors.Is(err, models.ErrConflict):
			log.WithField("counterpart", counterpartLang).Info("counterpart created concurrently, leaving it")
		default:
			return nil, fmt.Errorf("create %s translation: %w", counterpartLang, err)
		}
	}

	for _, written := range []*models.ProductTranslation{tr, result.Counterpart} {
		if written == nil || written.Language != models.LanguageDE {
			continue
		}
		if _, err := s.RecomputeProductSlug(ctx, product, written.Title); err != nil {
			return nil, err
		}
	}

	result.ProductSlug = product.SlugValue()
	return result, nil
}

// RecomputeProductSlug derives the slug for germanTitle and writes only the
// slug column when it changed. p.Slug is updated in place.
func (s *Service) RecomputeProductSlug(ctx context.Context, p *models.Product, germanTitle string) (string, error) {
	exists := func(candidate string) (bool, error) {
		return s.products.ProductSlugExists(ctx, candidate, p.ID)
	}

	for attempt := 1; ; attempt++ {
		value, changed, err := s.slugCascade.Plan(p, germanTitle, exists)
		if err != nil {
			return "", fmt.Errorf("allocate product slug: %w", err)
		}
		if !changed {
			return value, nil
		}

		err = s.products.UpdateProductSlug(ctx, p.ID, value)
		if err == nil {
			s.log.WithFields(logrus.Fields{"product_id": p.ID, "old_slug": p.SlugValue(), "slug": value}).
				Info("product re-slugged")
			p.Slug = &value
			return value, nil
		}
		if !errors.Is(err, models.ErrConflict) || attempt >= maxSlugAttempts {
			return "", fmt.Errorf("update product slug: %w", err)
		}
		s.log.WithFields(logrus.Fields{"product_id": p.ID, "slug": value}).
			Warn("product slug taken concurrently, reallocating")
	}
}

// DeleteProduct removes the product with its translations, then its image.
// Image cleanup failures are logged only.
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	p, err := s.products.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.removeImages(ctx, p.Image)
	return nil
}

// DeleteCategory removes the category together with its products and their images.
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	images, err := s.products.CategoryImages(ctx, id)
	if err != nil {
		return fmt.Errorf("list category images: %w", err)
	}
	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.removeImages(ctx, images...)
	return nil
}

func (s *Service) removeImages(ctx context.Context, publicIDs ...string) {
	if s.images == nil {
		return
	}
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if err := s.images.RemoveImage(ctx, id); err != nil {
			s.log.WithError(err).WithField("image", id).Warn("failed to remove product image")
		}
	}
}
