package sheet

import (
	"regexp"
	"strings"
)

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify is the single slug rule for the whole app. Pages that build
// links and the lookup that resolves them must agree exactly, so keep
// this pure and boring: lowercase, squash non-alphanumeric runs to one
// hyphen, trim the ends.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = reNonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
