package catalogsync

import (
	"context"
	"strings"

	"github.com/mytheresa/bilingual-catalog/app/slug"
	"github.com/mytheresa/bilingual-catalog/app/translate"
	"github.com/mytheresa/bilingual-catalog/models"
)

type categoryNames struct {
	NameDE string `validate:"required_without=NameAR,max=255"`
	NameAR string `validate:"max=255"`
}

var categoryMessages = map[string]string{
	"NameDE.required_without": "please provide at least a German or Arabic name",
	"NameDE.max":              "German name is longer than 255 characters",
	"NameAR.max":              "Arabic name is longer than 255 characters",
}

// CategorySync keeps a category's two names filled and assigns its slug once.
type CategorySync struct {
	translator translate.Translator
	slugs      *slug.Allocator
}

func NewCategorySync(t translate.Translator, slugs *slug.Allocator) *CategorySync {
	return &CategorySync{translator: t, slugs: slugs}
}

// Validate trims both names and requires at least one of them.
func (s *CategorySync) Validate(c *models.Category) error {
	c.NameDE = strings.TrimSpace(c.NameDE)
	c.NameAR = strings.TrimSpace(c.NameAR)
	if err := validate.Struct(categoryNames{NameDE: c.NameDE, NameAR: c.NameAR}); err != nil {
		return validationError("category", err, categoryMessages)
	}
	return nil
}

// FillNames back-fills whichever name is empty from the other one.
// It reports whether a translation was requested.
func (s *CategorySync) FillNames(ctx context.Context, c *models.Category) bool {
	switch {
	case c.NameAR != "" && c.NameDE == "":
		c.NameDE = s.translator.Translate(ctx, c.NameAR, string(models.LanguageDE), string(models.LanguageAR))
		return true
	case c.NameDE != "" && c.NameAR == "":
		c.NameAR = s.translator.Translate(ctx, c.NameDE, string(models.LanguageAR), string(models.LanguageDE))
		return true
	}
	return false
}

// AssignSlug sets the slug from the German name if none is assigned yet.
// An assigned slug is never recomputed.
func (s *CategorySync) AssignSlug(c *models.Category, exists slug.ExistsFunc) (bool, error) {
	if c.Slug != nil && *c.Slug != "" {
		return false, nil
	}
	if c.NameDE == "" {
		return false, nil
	}
	value, err := s.slugs.Allocate(c.NameDE, models.CategorySlugLength, exists)
	if err != nil {
		return false, err
	}
	c.Slug = &value
	return true, nil
}
