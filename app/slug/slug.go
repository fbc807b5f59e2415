// Package slug derives unique, length-bounded URL slugs from display text.
package slug

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is used when the base text has no slug-able characters,
// e.g. a purely Arabic name.
const Fallback = "item"

// DefaultMaxProbes bounds the suffix search in Allocate.
const DefaultMaxProbes = 5000

// ErrProbeExhausted means every candidate up to the probe limit is taken.
// It points at a misconfigured limit or a corrupted slug index, not at user input.
var ErrProbeExhausted = errors.New("slug: probe limit exhausted")

var (
	disallowed = regexp.MustCompile(`[^a-z0-9_\s\v-]`)
	separators = regexp.MustCompile(`[-\s\v]+`)
)

// ExistsFunc reports whether candidate is already used by another entity.
type ExistsFunc func(candidate string) (bool, error)

// Slugify lowercases s, folds accents to ASCII, drops everything that is not
// a letter, digit, underscore, hyphen or space, and joins words with hyphens.
// It returns "" when nothing survives.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	ascii = disallowed.ReplaceAllString(strings.ToLower(ascii), "")
	ascii = separators.ReplaceAllString(strings.TrimSpace(ascii), "-")
	return strings.Trim(ascii, "-_")
}

// Allocator hands out slugs that exists() does not report as taken.
type Allocator struct {
	MaxProbes int
}

// New returns an Allocator with the given probe limit; non-positive limits use DefaultMaxProbes.
func New(maxProbes int) *Allocator {
	if maxProbes <= 0 {
		maxProbes = DefaultMaxProbes
	}
	return &Allocator{MaxProbes: maxProbes}
}

// Allocate derives a slug from base of at most maxLength bytes. On collision it
// probes base-2, base-3, ... shortening base so the suffix always fits.
// exists must already exclude the entity being saved.
func (a *Allocator) Allocate(base string, maxLength int, exists ExistsFunc) (string, error) {
	if maxLength < 1 {
		return "", fmt.Errorf("slug: invalid max length %d", maxLength)
	}

	baseSlug := Slugify(base)
	if baseSlug == "" {
		baseSlug = Fallback
	}
	baseSlug = truncate(baseSlug, maxLength)

	taken, err := exists(baseSlug)
	if err != nil {
		return "", fmt.Errorf("slug: check %q: %w", baseSlug, err)
	}
	if !taken {
		return baseSlug, nil
	}

	limit := a.MaxProbes
	if limit <= 0 {
		limit = DefaultMaxProbes
	}
	for i := 2; i < limit+2; i++ {
		suffix := "-" + strconv.Itoa(i)
		allowed := maxLength - len(suffix)
		if allowed < 0 {
			allowed = 0
		}
		candidate := truncate(baseSlug, allowed) + suffix
		if len(candidate) > maxLength {
			// The suffix alone no longer fits.
			break
		}
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("slug: check %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: base %q", ErrProbeExhausted, baseSlug)
}

// Allocate uses an Allocator with the default probe limit.
func Allocate(base string, maxLength int, exists ExistsFunc) (string, error) {
	return New(DefaultMaxProbes).Allocate(base, maxLength, exists)
}

// truncate cuts an ASCII slug to n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
