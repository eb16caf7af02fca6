package store

import (
	"fmt"
	"regexp"
	"strings"

	"thingherder/pkg/models"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading/trailing
// hyphens trimmed, truncated to the slug length limit.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > models.MaxSlugLength {
		slug = strings.Trim(slug[:models.MaxSlugLength], "-")
	}
	if slug == "" {
		slug = "project"
	}
	return slug
}

// uniqueSlugLocked resolves collisions deterministically by appending -1,
// -2, ... until the slug is free; the first free suffix wins. Caller must
// hold at least the read lock.
func (s *Store) uniqueSlugLocked(base string) string {
	if !s.slugExistsLocked(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !s.slugExistsLocked(candidate) {
			return candidate
		}
	}
}

func (s *Store) slugExistsLocked(slug string) bool {
	for _, p := range s.doc.Projects {
		if p.Slug == slug {
			return true
		}
	}
	return false
}
