package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/mytheresa/bilingual-catalog/app/httpjson"
	"github.com/mytheresa/bilingual-catalog/models"
)

type CategoryResponse struct {
	ID     uint   `json:"id"`
	NameDE string `json:"name_de"`
	NameAR string `json:"name_ar"`
	Slug   string `json:"slug"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
}

type CategorySyncer interface {
	SyncCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type CategoryHandler struct {
	repo CategoryProvider
	sync CategorySyncer
	log  logrus.FieldLogger
}

func NewCategoryHandler(r CategoryProvider, s CategorySyncer, log logrus.FieldLogger) *CategoryHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CategoryHandler{repo: r, sync: s, log: log}
}

type categoryInput struct {
	NameDE string `json:"name_de"`
	NameAR string `json:"name_ar"`
}

func toResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:     c.ID,
		NameDE: c.NameDE,
		NameAR: c.NameAR,
		Slug:   c.SlugValue(),
	}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		h.log.WithError(err).Error("list categories")
		httpjson.Error(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toResponse(&categories[i])
	}
	httpjson.Write(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input categoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := h.sync.SyncCategory(r.Context(), &models.Category{
		NameDE: input.NameDE,
		NameAR: input.NameAR,
	})
	if err != nil {
		h.fail(w, err, "Failed to create category")
		return
	}
	httpjson.Write(w, http.StatusCreated, toResponse(category))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Category not found")
		return
	}

	var input categoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := h.repo.GetCategory(r.Context(), uint(id))
	if err != nil {
		h.fail(w, err, "Failed to update category")
		return
	}
	category.NameDE = input.NameDE
	category.NameAR = input.NameAR

	category, err = h.sync.SyncCategory(r.Context(), category)
	if err != nil {
		h.fail(w, err, "Failed to update category")
		return
	}
	httpjson.Write(w, http.StatusOK, toResponse(category))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Category not found")
		return
	}
	if err := h.sync.DeleteCategory(r.Context(), uint(id)); err != nil {
		h.fail(w, err, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) fail(w http.ResponseWriter, err error, fallback string) {
	status, msg := httpjson.Status(err, fallback)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error(fallback)
	}
	httpjson.Error(w, status, msg)
}
