// Package translate wraps an external machine translation backend behind a
// service that never fails: any backend problem degrades to the source text.
package translate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 5 * time.Second

// ErrUnavailable is reported by the backend used when no credentials are configured.
var ErrUnavailable = errors.New("translate: backend unavailable")

// Backend performs one translation. target and source are normalized
// two-letter uppercase codes; source may be empty to let the backend detect it.
type Backend interface {
	Translate(ctx context.Context, text, target, source string) (string, error)
}

// Translator is what the catalog sync components depend on.
type Translator interface {
	Translate(ctx context.Context, text, target, source string) string
}

// Service is the process-wide Translator. The zero value is not usable; build
// one with NewService.
type Service struct {
	backend Backend
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewService wraps backend. A nil backend behaves as permanently unavailable.
func NewService(backend Backend, timeout time.Duration, log logrus.FieldLogger) *Service {
	if backend == nil {
		backend = Unavailable{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{backend: backend, timeout: timeout, log: log}
}

// Translate returns text translated into target, or text itself when the
// backend is unconfigured, times out, fails, or panics.
func (s *Service) Translate(ctx context.Context, text, target, source string) (out string) {
	if text == "" {
		return ""
	}

	t, src := NormalizeCode(target), NormalizeCode(source)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{"target": t, "source": src, "panic": r}).
				Warn("translation backend panicked, keeping source text")
			out = text
		}
	}()

	res, err := s.backend.Translate(ctx, text, t, src)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			s.log.WithError(err).WithFields(logrus.Fields{"target": t, "source": src}).
				Warn("translation failed, keeping source text")
		}
		return text
	}
	if strings.TrimSpace(res) == "" {
		s.log.WithFields(logrus.Fields{"target": t, "source": src}).
			Warn("translation came back empty, keeping source text")
		return text
	}
	return res
}

// Close releases the backend's resources when it holds any.
func (s *Service) Close() error {
	if c, ok := s.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// NormalizeCode upper-cases a language code and keeps its first two letters.
// It does not check that the code is supported.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) > 2 {
		code = code[:2]
	}
	return code
}

// Unavailable is the backend used when no provider is configured.
type Unavailable struct{}

func (Unavailable) Translate(context.Context, string, string, string) (string, error) {
	return "", ErrUnavailable
}
