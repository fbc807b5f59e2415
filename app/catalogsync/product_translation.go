package catalogsync

import (
	"context"
	"strings"

	"github.com/mytheresa/bilingual-catalog/app/translate"
	"github.com/mytheresa/bilingual-catalog/models"
)

type translationInput struct {
	ProductID uint   `validate:"required"`
	Language  string `validate:"oneof=de ar"`
	Title     string `validate:"required,max=255"`
}

var translationMessages = map[string]string{
	"ProductID.required": "translation must belong to a product",
	"Language.oneof":     "language must be de or ar",
	"Title.required":     "title is required",
	"Title.max":          "title is longer than 255 characters",
}

// ProductTranslationSync builds the missing counterpart of a saved translation.
// It only ever bootstraps: an existing counterpart is never touched.
type ProductTranslationSync struct {
	translator translate.Translator
}

func NewProductTranslationSync(t translate.Translator) *ProductTranslationSync {
	return &ProductTranslationSync{translator: t}
}

func (s *ProductTranslationSync) Validate(tr *models.ProductTranslation) error {
	tr.Title = strings.TrimSpace(tr.Title)
	input := translationInput{ProductID: tr.ProductID, Language: string(tr.Language), Title: tr.Title}
	if err := validate.Struct(input); err != nil {
		return validationError("translation", err, translationMessages)
	}
	return nil
}

// Counterpart returns the row to create for saved's other language, or nil
// when counterpartExists. Title and description fall back to the source text
// when translation is unavailable.
func (s *ProductTranslationSync) Counterpart(ctx context.Context, saved *models.ProductTranslation, counterpartExists bool) *models.ProductTranslation {
	if counterpartExists {
		return nil
	}
	target := saved.Language.Counterpart()
	description := s.translator.Translate(ctx, saved.DescriptionValue(), string(target), string(saved.Language))
	return &models.ProductTranslation{
		ProductID:   saved.ProductID,
		Language:    target,
		Title:       s.translator.Translate(ctx, saved.Title, string(target), string(saved.Language)),
		Description: &description,
	}
}
