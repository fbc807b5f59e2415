package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mytheresa/bilingual-catalog/app/catalogsync"
	"github.com/mytheresa/bilingual-catalog/app/httpjson"
	"github.com/mytheresa/bilingual-catalog/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	Slug   string `json:"slug"`
	NameDE string `json:"name_de"`
	NameAR string `json:"name_ar"`
}

type Product struct {
	SKU       string   `json:"sku"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	SalePrice *float64 `json:"sale_price,omitempty"`
	Stock     uint     `json:"stock"`
	Category  Category `json:"category"`
}

type Translation struct {
	Language    string `json:"language"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProductDetail struct {
	Product
	ID           uint          `json:"id"`
	IsActive     bool          `json:"is_active"`
	Image        string        `json:"image,omitempty"`
	Translations []Translation `json:"translations"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type ProductSyncer interface {
	SyncProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	SyncProductTranslation(ctx context.Context, tr *models.ProductTranslation) (*catalogsync.TranslationResult, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type CatalogHandler struct {
	repo ProductProvider
	sync ProductSyncer
	log  logrus.FieldLogger
}

func NewCatalogHandler(r ProductProvider, s ProductSyncer, log logrus.FieldLogger) *CatalogHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogHandler{
		repo: r,
		sync: s,
		log:  log,
	}
}

func toProduct(p *models.Product) Product {
	out := Product{
		SKU:   p.SKU,
		Slug:  p.SlugValue(),
		Title: p.DisplayTitle(),
		Price: p.Price.InexactFloat64(),
		Stock: p.Stock,
		Category: Category{
			Slug:   p.Category.SlugValue(),
			NameDE: p.Category.NameDE,
			NameAR: p.Category.NameAR,
		},
	}
	if p.SalePrice.Valid {
		sale := p.SalePrice.Decimal.InexactFloat64()
		out.SalePrice = &sale
	}
	return out
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	// Parse filters
	var priceFilter *float64
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			priceFilter = &val
		}
	}

	filters := models.ProductFilters{
		CategorySlug:  r.URL.Query().Get("category"),
		PriceLessThan: priceFilter,
		ActiveOnly:    r.URL.Query().Get("all") != "1",
	}

	res, total, err := h.repo.GetFilteredProducts(r.Context(), offset, limit, filters)
	if err != nil {
		h.log.WithError(err).Error("list products")
		httpjson.Error(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = toProduct(&res[i])
	}

	httpjson.Write(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.fail(w, err, "Failed to retrieve product")
		return
	}

	translations := make([]Translation, len(product.Translations))
	for i, tr := range product.Translations {
		translations[i] = Translation{
			Language:    string(tr.Language),
			Title:       tr.Title,
			Description: tr.DescriptionValue(),
		}
	}

	httpjson.Write(w, http.StatusOK, ProductDetail{
		Product:      toProduct(product),
		ID:           product.ID,
		IsActive:     product.IsActive,
		Image:        product.Image,
		Translations: translations,
	})
}

type productInput struct {
	CategoryID uint                `json:"category_id"`
	SKU        string              `json:"sku"`
	Price      decimal.Decimal     `json:"price"`
	SalePrice  decimal.NullDecimal `json:"sale_price"`
	Stock      uint                `json:"stock"`
	IsActive   *bool               `json:"is_active"`
	Image      string              `json:"image"`
}

func (h *CatalogHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	product, err := h.sync.SyncProduct(r.Context(), &models.Product{
		CategoryID: input.CategoryID,
		SKU:        input.SKU,
		Price:      input.Price,
		SalePrice:  input.SalePrice,
		Stock:      input.Stock,
		IsActive:   active,
		Image:      input.Image,
	})
	if err != nil {
		h.fail(w, err, "Failed to create product")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"id":   product.ID,
		"sku":  product.SKU,
		"slug": product.SlugValue(),
	})
}

type translationInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// HandlePutTranslation upserts the product's translation for the language in
// the path; the first one written also creates its counterpart.
func (h *CatalogHandler) HandlePutTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Product not found")
		return
	}

	var input translationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	res, err := h.sync.SyncProductTranslation(r.Context(), &models.ProductTranslation{
		ProductID:   uint(id),
		Language:    models.Language(r.PathValue("lang")),
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		h.fail(w, err, "Failed to save translation")
		return
	}

	body := map[string]any{
		"language":            res.Translation.Language,
		"title":               res.Translation.Title,
		"product_slug":        res.ProductSlug,
		"created_counterpart": res.Counterpart != nil,
	}
	httpjson.Write(w, http.StatusOK, body)
}

func (h *CatalogHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	if err := h.sync.DeleteProduct(r.Context(), uint(id)); err != nil {
		h.fail(w, err, "Failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) fail(w http.ResponseWriter, err error, fallback string) {
	status, msg := httpjson.Status(err, fallback)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error(fallback)
	}
	httpjson.Error(w, status, msg)
}
