// Package httpjson writes JSON responses and maps catalog errors to status codes.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mytheresa/bilingual-catalog/app/catalogsync"
	"github.com/mytheresa/bilingual-catalog/models"
)

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Status maps err to a response status and a client-safe message. fallback
// is used for unexpected errors.
func Status(err error, fallback string) (int, string) {
	var v *catalogsync.ValidationError
	switch {
	case errors.As(err, &v):
		return http.StatusBadRequest, v.Message
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, "conflicting write, please retry"
	case errors.Is(err, models.ErrCategoryNotFound):
		return http.StatusNotFound, "Category not found"
	case errors.Is(err, models.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, models.ErrTranslationNotFound):
		return http.StatusNotFound, "Translation not found"
	case errors.Is(err, models.ErrMissingReference):
		return http.StatusBadRequest, "referenced record does not exist"
	default:
		return http.StatusInternalServerError, fallback
	}
}
