package models

// Language is one of the two catalog content languages.
type Language string

const (
	LanguageDE Language = "de"
	LanguageAR Language = "ar"
)

// Valid reports whether l is a supported catalog language.
func (l Language) Valid() bool {
	return l == LanguageDE || l == LanguageAR
}

// Counterpart returns the other language of the de/ar pair.
func (l Language) Counterpart() Language {
	if l == LanguageDE {
		return LanguageAR
	}
	return LanguageDE
}

// ProductTranslation holds a product's title and description in one language.
// A product has at most one translation per language.
type ProductTranslation struct {
	ID          uint     `gorm:"primaryKey"`
	ProductID   uint     `gorm:"not null;uniqueIndex:idx_product_language"`
	Language    Language `gorm:"size:2;not null;uniqueIndex:idx_product_language"`
	Title       string   `gorm:"size:255;not null"`
	Description *string  `gorm:"type:text"`
}

func (t *ProductTranslation) TableName() string {
	return "product_translations"
}

// DescriptionValue returns the description or "" when it is unset.
func (t *ProductTranslation) DescriptionValue() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}
