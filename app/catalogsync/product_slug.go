package catalogsync

import (
	"github.com/mytheresa/bilingual-catalog/app/slug"
	"github.com/mytheresa/bilingual-catalog/models"
)

// ProductSlugCascade derives a product's slug from its German title. Unlike
// categories, products are re-slugged on every German title change.
type ProductSlugCascade struct {
	slugs *slug.Allocator
}

func NewProductSlugCascade(slugs *slug.Allocator) *ProductSlugCascade {
	return &ProductSlugCascade{slugs: slugs}
}

// Plan returns the slug for germanTitle and whether it differs from p's current one.
func (c *ProductSlugCascade) Plan(p *models.Product, germanTitle string, exists slug.ExistsFunc) (string, bool, error) {
	value, err := c.slugs.Allocate(germanTitle, models.ProductSlugLength, exists)
	if err != nil {
		return "", false, err
	}
	return value, value != p.SlugValue(), nil
}
