package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSlugLength is the declared capacity of the product slug column.
const ProductSlugLength = 160

// Product represents a product in the catalog.
// Its slug follows the title of its German translation.
type Product struct {
	ID           uint                 `gorm:"primaryKey"`
	CategoryID   uint                 `gorm:"not null;index"`
	Category     Category             `gorm:"foreignKey:CategoryID"`
	SKU          string               `gorm:"size:50;uniqueIndex;not null"`
	Price        decimal.Decimal      `gorm:"type:decimal(10,2);not null"`
	SalePrice    decimal.NullDecimal  `gorm:"type:decimal(10,2)"`
	Stock        uint                 `gorm:"not null;default:0"`
	IsActive     bool                 `gorm:"not null;default:true"`
	Image        string               `gorm:"size:255"`
	Slug         *string              `gorm:"size:160;uniqueIndex"`
	Translations []ProductTranslation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Product) TableName() string {
	return "products"
}

// SlugValue returns the assigned slug or "" when none has been assigned yet.
func (p *Product) SlugValue() string {
	if p.Slug == nil {
		return ""
	}
	return *p.Slug
}

// Translation returns the loaded translation for lang, if any.
func (p *Product) Translation(lang Language) (*ProductTranslation, bool) {
	for i := range p.Translations {
		if p.Translations[i].Language == lang {
			return &p.Translations[i], true
		}
	}
	return nil, false
}

// DisplayTitle prefers the German title, then the Arabic one, then the SKU.
// Translations must be preloaded.
func (p *Product) DisplayTitle() string {
	if tr, ok := p.Translation(LanguageDE); ok && tr.Title != "" {
		return tr.Title
	}
	if tr, ok := p.Translation(LanguageAR); ok && tr.Title != "" {
		return tr.Title
	}
	return p.SKU
}

// EffectivePrice is the sale price when one is set, the list price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.Price
}
