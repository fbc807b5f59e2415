package catalogsync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/bilingual-catalog/models"
)

func TestSyncCategory(t *testing.T) {
	testCases := []struct {
		name          string
		input         models.Category
		expectedDE    string
		expectedAR    string
		expectedSlug  string
		expectInvalid bool
	}{
		{
			name:         "German only back-fills Arabic",
			input:        models.Category{NameDE: "Stühle"},
			expectedDE:   "Stühle",
			expectedAR:   "Stühle",
			expectedSlug: "stuhle",
		},
		{
			name:         "Arabic only back-fills German and slugs from it",
			input:        models.Category{NameAR: "Tische"},
			expectedDE:   "Tische",
			expectedAR:   "Tische",
			expectedSlug: "tische",
		},
		{
			name:         "Both names kept as given",
			input:        models.Category{NameDE: "Lampen", NameAR: "مصابيح"},
			expectedDE:   "Lampen",
			expectedAR:   "مصابيح",
			expectedSlug: "lampen",
		},
		{
			name:          "Both names empty is rejected",
			input:         models.Category{},
			expectInvalid: true,
		},
		{
			name:          "Whitespace names are empty",
			input:         models.Category{NameDE: "  ", NameAR: "\t"},
			expectInvalid: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			store := newMemStore()
			svc := newTestService(store, identityTranslator{})
			category := tc.input

			// Act
			got, err := svc.SyncCategory(context.Background(), &category)

			// Assert
			if tc.expectInvalid {
				assert.True(t, IsValidation(err), "expected validation error, got %v", err)
				assert.Empty(t, store.categories, "nothing should be persisted")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedDE, got.NameDE)
			assert.Equal(t, tc.expectedAR, got.NameAR)
			assert.Equal(t, tc.expectedSlug, got.SlugValue())
			assert.NotZero(t, got.ID)
		})
	}
}

func TestSyncCategoryValidationMessage(t *testing.T) {
	svc := newTestService(newMemStore(), identityTranslator{})

	_, err := svc.SyncCategory(context.Background(), &models.Category{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "please provide at least a German or Arabic name")
}

func TestSyncCategoryUsesTranslator(t *testing.T) {
	tr := &prefixTranslator{}
	svc := newTestService(newMemStore(), tr)

	got, err := svc.SyncCategory(context.Background(), &models.Category{NameAR: "كراسي"})

	require.NoError(t, err)
	assert.Equal(t, "DE:كراسي", got.NameDE)
	assert.Equal(t, "de", got.SlugValue())
	assert.Equal(t, 1, tr.calls)
}

func TestSyncCategorySlugAssignedOnce(t *testing.T) {
	store := newMemStore()
	tr := &prefixTranslator{}
	svc := newTestService(store, tr)

	category := &models.Category{NameDE: "Sofas"}
	_, err := svc.SyncCategory(context.Background(), category)
	require.NoError(t, err)
	require.Equal(t, "sofas", category.SlugValue())
	callsAfterCreate := tr.calls

	// Re-save unchanged: no translation, no re-slug.
	_, err = svc.SyncCategory(context.Background(), category)
	require.NoError(t, err)
	assert.Equal(t, callsAfterCreate, tr.calls)
	assert.Equal(t, "sofas", category.SlugValue())

	// Rename: slug stays.
	category.NameDE = "Couches"
	_, err = svc.SyncCategory(context.Background(), category)
	require.NoError(t, err)
	assert.Equal(t, "sofas", category.SlugValue())
	assert.Equal(t, "sofas", store.categories[category.ID].SlugValue())
}

func TestSyncCategorySlugDeduplicates(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, identityTranslator{})

	expected := []string{"garten", "garten-2", "garten-3"}
	for _, want := range expected {
		c, err := svc.SyncCategory(context.Background(), &models.Category{NameDE: "Garten"})
		require.NoError(t, err)
		assert.Equal(t, want, c.SlugValue())
	}
}

func TestSyncCategoryKeepsExistingSlug(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, identityTranslator{})

	c, err := svc.SyncCategory(context.Background(), &models.Category{NameDE: "Küche", Slug: strPtr("kitchen")})

	require.NoError(t, err)
	assert.Equal(t, "kitchen", c.SlugValue())
}

func TestSyncCategoryRetriesOnConcurrentSlug(t *testing.T) {
	store := newMemStore()
	store.takeOnFirstWrite["bad"] = true
	svc := newTestService(store, identityTranslator{})

	c, err := svc.SyncCategory(context.Background(), &models.Category{NameDE: "Bad"})

	require.NoError(t, err)
	assert.Equal(t, "bad-2", c.SlugValue())
}

func TestSyncCategoryConflictWithoutSlugSurfaces(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, identityTranslator{})

	_, err := svc.SyncCategory(context.Background(), &models.Category{NameDE: "A", Slug: strPtr("dup")})
	require.NoError(t, err)

	_, err = svc.SyncCategory(context.Background(), &models.Category{NameDE: "B", Slug: strPtr("dup")})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestDeleteCategoryRemovesProductImages(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, identityTranslator{})

	c, err := svc.SyncCategory(context.Background(), &models.Category{NameDE: "Deko"})
	require.NoError(t, err)
	_, err = svc.SyncProduct(context.Background(), &models.Product{CategoryID: c.ID, SKU: "D-1", Image: "products/vase"})
	require.NoError(t, err)
	_, err = svc.SyncProduct(context.Background(), &models.Product{CategoryID: c.ID, SKU: "D-2"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), c.ID))

	assert.Empty(t, store.categories)
	assert.Empty(t, store.products)
	assert.Equal(t, []string{"products/vase"}, store.removedImages)
}
