package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reQ        = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
	reSlug     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reCategory = regexp.MustCompile(`^[A-Za-z0-9 _-]{1,64}$`)

	sortFields = map[string]bool{
		"name": true, "price": true, "category": true,
		"createdAt": true, "updatedAt": true,
	}
)

// Q validates a search query: trims, enforces allowed characters and max length.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// Slug validates a product slug as produced by the shared slug rule.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 100 && reSlug.MatchString(s)
}

func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reCategory.MatchString(s)
}

// SortBy clamps to the sortable field whitelist; anything else falls
// back to name order.
func SortBy(s string) string {
	if sortFields[s] {
		return s
	}
	return "name"
}

func SortOrder(s string) string {
	if s == "desc" {
		return "desc"
	}
	return "asc"
}

func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func Limit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 12
	}
	if n > 100 {
		return 100 // clamp to avoid abuse
	}
	return n
}
