package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepLTranslate(t *testing.T) {
	testCases := []struct {
		name         string
		status       int
		body         string
		source       string
		expected     string
		expectErr    bool
		checkRequest func(t *testing.T, r *http.Request)
	}{
		{
			name:     "Success",
			status:   http.StatusOK,
			body:     `{"translations":[{"detected_source_language":"DE","text":"كرسي أحمر"}]}`,
			source:   "DE",
			expected: "كرسي أحمر",
			checkRequest: func(t *testing.T, r *http.Request) {
				assert.Equal(t, "DeepL-Auth-Key secret:fx", r.Header.Get("Authorization"))
				assert.Equal(t, "Roter Stuhl", r.PostForm.Get("text"))
				assert.Equal(t, "AR", r.PostForm.Get("target_lang"))
				assert.Equal(t, "DE", r.PostForm.Get("source_lang"))
			},
		},
		{
			name:     "Source omitted when empty",
			status:   http.StatusOK,
			body:     `{"translations":[{"text":"x"}]}`,
			expected: "x",
			checkRequest: func(t *testing.T, r *http.Request) {
				_, ok := r.PostForm["source_lang"]
				assert.False(t, ok)
			},
		},
		{
			name:      "Quota exceeded",
			status:    456,
			body:      `{"message":"Quota exceeded"}`,
			expectErr: true,
		},
		{
			name:      "Empty translations",
			status:    http.StatusOK,
			body:      `{"translations":[]}`,
			expectErr: true,
		},
		{
			name:      "Empty translated text",
			status:    http.StatusOK,
			body:      `{"translations":[{"text":""}]}`,
			expectErr: true,
		},
		{
			name:      "Garbage body",
			status:    http.StatusOK,
			body:      `not json`,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				if tc.checkRequest != nil {
					tc.checkRequest(t, r)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			d := NewDeepL("secret:fx", srv.URL, srv.Client())
			got, err := d.Translate(context.Background(), "Roter Stuhl", "AR", tc.source)

			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNewDeepLEndpoint(t *testing.T) {
	assert.Equal(t, DeepLFreeURL, NewDeepL("abc:fx", "", nil).endpoint)
	assert.Equal(t, DeepLProURL, NewDeepL("abc", "", nil).endpoint)
	assert.Equal(t, "http://local", NewDeepL("abc", "http://local", nil).endpoint)
}
