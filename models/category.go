package models

import "strconv"

// CategorySlugLength is the declared capacity of the category slug column.
const CategorySlugLength = 160

// Category represents a product category.
// It carries a German and an Arabic name; the slug is derived from the German one.
type Category struct {
	ID       uint      `gorm:"primaryKey"`
	NameDE   string    `gorm:"size:255"`
	NameAR   string    `gorm:"size:255"`
	Slug     *string   `gorm:"size:160;uniqueIndex"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (c *Category) TableName() string {
	return "categories"
}

// SlugValue returns the assigned slug or "" when none has been assigned yet.
func (c *Category) SlugValue() string {
	if c.Slug == nil {
		return ""
	}
	return *c.Slug
}

// DisplayName prefers the German name, then the Arabic one, then the id.
func (c *Category) DisplayName() string {
	switch {
	case c.NameDE != "":
		return c.NameDE
	case c.NameAR != "":
		return c.NameAR
	default:
		return strconv.FormatUint(uint64(c.ID), 10)
	}
}
