package translate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	ProviderDeepL  = "deepl"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Options selects and configures a backend.
type Options struct {
	Provider     string
	DeepLAPIKey  string
	DeepLAPIURL  string
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
}

// New builds the Service for opts. With no provider named it uses whichever
// key is present, DeepL first. Missing credentials are not an error: the
// service then returns source text unchanged.
func New(ctx context.Context, opts Options, log logrus.FieldLogger) (*Service, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	provider := opts.Provider
	if provider == "" {
		switch {
		case opts.DeepLAPIKey != "":
			provider = ProviderDeepL
		case opts.GeminiAPIKey != "":
			provider = ProviderGemini
		default:
			provider = ProviderNone
		}
	}

	var backend Backend
	switch provider {
	case ProviderDeepL:
		if opts.DeepLAPIKey != "" {
			backend = NewDeepL(opts.DeepLAPIKey, opts.DeepLAPIURL, &http.Client{Timeout: opts.Timeout})
		}
	case ProviderGemini:
		if opts.GeminiAPIKey != "" {
			g, err := NewGemini(ctx, opts.GeminiAPIKey, opts.GeminiModel)
			if err != nil {
				log.WithError(err).Warn("gemini backend unavailable")
			} else {
				backend = g
			}
		}
	case ProviderNone:
	default:
		return nil, fmt.Errorf("translate: unknown provider %q", provider)
	}

	if backend == nil {
		log.WithField("provider", provider).Warn("no translation credentials, counterparts will copy source text")
	} else {
		log.WithField("provider", provider).Info("translation backend configured")
	}
	return NewService(backend, opts.Timeout, log), nil
}
