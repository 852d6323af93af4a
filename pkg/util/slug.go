package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MaxSlugLength bounds the base slug; collision suffixes may extend it.
const MaxSlugLength = 120

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphens      = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a display name. Anything outside
// [a-z0-9] is dropped after lowercasing, so "Al-Noor Café #1" becomes
// "al-noor-caf-1". Names with no ASCII letters or digits get a
// timestamp placeholder.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugLength {
		slug = strings.Trim(slug[:MaxSlugLength], "-")
	}
	if slug == "" {
		return fmt.Sprintf("business-%d", time.Now().UnixMilli())
	}
	return slug
}

// SlugCandidate returns the n-th candidate for base: base, base-1, base-2, ...
func SlugCandidate(base string, n int) string {
	if n <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
