package catalogsync

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mytheresa/bilingual-catalog/models"
)

// --- In-memory store ---

// memStore enforces the same unique constraints as the database schema.
type memStore struct {
	categories   map[uint]*models.Category
	products     map[uint]*models.Product
	translations map[uint]*models.ProductTranslation
	nextID       uint

	slugWrites int
	// takeOnFirstWrite simulates a concurrent writer grabbing a slug between
	// the existence check and the write.
	takeOnFirstWrite map[string]bool
	removedImages    []string
	removeErr        error
	// checkCategories makes SaveProduct reject unknown category IDs like the foreign key does.
	checkCategories bool
}

func newMemStore() *memStore {
	return &memStore{
		categories:       map[uint]*models.Category{},
		products:         map[uint]*models.Product{},
		translations:     map[uint]*models.ProductTranslation{},
		takeOnFirstWrite: map[string]bool{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) SaveCategory(_ context.Context, c *models.Category) error {
	if s := c.SlugValue(); s != "" {
		if m.takeOnFirstWrite[s] {
			delete(m.takeOnFirstWrite, s)
			taken := s
			m.categories[m.id()] = &models.Category{NameDE: "other", Slug: &taken}
			return models.ErrConflict
		}
		for id, other := range m.categories {
			if id != c.ID && other.SlugValue() == s {
				return models.ErrConflict
			}
		}
	}
	if c.ID == 0 {
		c.ID = m.id()
	}
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *memStore) CategorySlugExists(_ context.Context, slug string, excludeID uint) (bool, error) {
	for id, c := range m.categories {
		if id != excludeID && c.SlugValue() == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) DeleteCategory(_ context.Context, id uint) error {
	if _, ok := m.categories[id]; !ok {
		return models.ErrCategoryNotFound
	}
	delete(m.categories, id)
	for pid, p := range m.products {
		if p.CategoryID == id {
			m.deleteProduct(pid)
		}
	}
	return nil
}

func (m *memStore) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) SaveProduct(_ context.Context, p *models.Product) error {
	if _, ok := m.categories[p.CategoryID]; m.checkCategories && !ok {
		return models.ErrMissingReference
	}
	for id, other := range m.products {
		if id != p.ID && other.SKU == p.SKU {
			return models.ErrConflict
		}
	}
	if p.ID == 0 {
		p.ID = m.id()
	}
	cp := *p
	cp.Translations = nil
	m.products[p.ID] = &cp
	return nil
}

func (m *memStore) ProductSlugExists(_ context.Context, slug string, excludeID uint) (bool, error) {
	for id, p := range m.products {
		if id != excludeID && p.SlugValue() == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) UpdateProductSlug(_ context.Context, id uint, slug string) error {
	p, ok := m.products[id]
	if !ok {
		return models.ErrProductNotFound
	}
	if m.takeOnFirstWrite[slug] {
		delete(m.takeOnFirstWrite, slug)
		taken := slug
		m.products[m.id()] = &models.Product{SKU: "concurrent", Slug: &taken}
		return models.ErrConflict
	}
	for otherID, other := range m.products {
		if otherID != id && other.SlugValue() == slug {
			return models.ErrConflict
		}
	}
	m.slugWrites++
	value := slug
	p.Slug = &value
	return nil
}

func (m *memStore) DeleteProduct(_ context.Context, id uint) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	m.deleteProduct(id)
	return p, nil
}

func (m *memStore) deleteProduct(id uint) {
	delete(m.products, id)
	for tid, tr := range m.translations {
		if tr.ProductID == id {
			delete(m.translations, tid)
		}
	}
}

func (m *memStore) CategoryImages(_ context.Context, categoryID uint) ([]string, error) {
	var images []string
	for _, p := range m.products {
		if p.CategoryID == categoryID && p.Image != "" {
			images = append(images, p.Image)
		}
	}
	return images, nil
}

func (m *memStore) GetTranslation(_ context.Context, productID uint, lang models.Language) (*models.ProductTranslation, error) {
	for _, tr := range m.translations {
		if tr.ProductID == productID && tr.Language == lang {
			cp := *tr
			return &cp, nil
		}
	}
	return nil, models.ErrTranslationNotFound
}

func (m *memStore) SaveTranslation(_ context.Context, tr *models.ProductTranslation) error {
	for id, other := range m.translations {
		if id != tr.ID && other.ProductID == tr.ProductID && other.Language == tr.Language {
			return models.ErrConflict
		}
	}
	if tr.ID == 0 {
		tr.ID = m.id()
	}
	cp := *tr
	m.translations[tr.ID] = &cp
	return nil
}

func (m *memStore) CreateTranslation(ctx context.Context, tr *models.ProductTranslation) error {
	tr.ID = 0
	return m.SaveTranslation(ctx, tr)
}

func (m *memStore) TranslationExists(ctx context.Context, productID uint, lang models.Language) (bool, error) {
	_, err := m.GetTranslation(ctx, productID, lang)
	return err == nil, nil
}

func (m *memStore) RemoveImage(_ context.Context, publicID string) error {
	m.removedImages = append(m.removedImages, publicID)
	return m.removeErr
}

func (m *memStore) translationsOf(productID uint) map[models.Language]*models.ProductTranslation {
	out := map[models.Language]*models.ProductTranslation{}
	for _, tr := range m.translations {
		if tr.ProductID == productID {
			out[tr.Language] = tr
		}
	}
	return out
}

// --- Translator stubs ---

// prefixTranslator maps text to "<TARGET>:text", e.g. "AR:Red Chair".
type prefixTranslator struct {
	calls int
}

func (p *prefixTranslator) Translate(_ context.Context, text, target, _ string) string {
	p.calls++
	if text == "" {
		return ""
	}
	return strings.ToUpper(target) + ":" + text
}

// identityTranslator round-trips text unchanged.
type identityTranslator struct{}

func (identityTranslator) Translate(_ context.Context, text, _, _ string) string {
	return text
}

// --- Helpers ---

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(store *memStore, tr interface {
	Translate(ctx context.Context, text, target, source string) string
}) *Service {
	return NewService(Dependencies{
		Categories:   store,
		Products:     store,
		Translations: store,
		Translator:   tr,
		Images:       store,
		Log:          quietLogger(),
	})
}

func strPtr(s string) *string {
	return &s
}
