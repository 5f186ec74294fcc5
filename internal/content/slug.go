// Package content holds the text helpers shared by articles, videos,
// playlists and promotions: slugs, tag sets and read-time estimates.
package content

import (
	"context"
	"fmt"

	"medialane/internal/validation"

	"github.com/gosimple/slug"
)

const (
	maxSlugLength     = 200
	maxSlugCandidates = 1000
	fallbackSlug      = "untitled"
)

// SlugExists reports whether a slug is already taken in the target table.
type SlugExists func(ctx context.Context, candidate string) (bool, error)

// Slugify returns the URL-safe form of title.
func Slugify(title string) string {
	s := slug.Make(title)
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
	}
	for len(s) > 0 && s[len(s)-1] == '-' {
		s = s[:len(s)-1]
	}
	if s == "" {
		return fallbackSlug
	}
	return s
}

// UniqueSlug slugifies title and appends -2, -3, ... until exists reports
// the candidate as free. Reserved route words are never returned bare.
func UniqueSlug(ctx context.Context, title string, exists SlugExists) (string, error) {
	base := Slugify(title)
	for n := 1; n <= maxSlugCandidates; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		if validation.IsReservedSlug(candidate) {
			continue
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugCandidates)
}
