package sheet

import (
	"regexp"
	"strings"
)

var (
	reDriveShare  = regexp.MustCompile(`drive\.google\.com/file/d/([A-Za-z0-9_-]+)`)
	reDriveDirect = regexp.MustCompile(`drive\.google\.com/uc\?.*id=`)
	// Bare Drive file ids are long url-safe tokens pasted without a URL.
	reBareFileID = regexp.MustCompile(`^[A-Za-z0-9_-]{28,}$`)
)

// Hosts we pass through untouched even when the value has no scheme.
var knownImageHosts = []string{
	"cloudinary.com",
	"imgix.net",
	"imgur.com",
	"amazonaws.com",
	"googleusercontent.com",
	"unsplash.com",
	"storage.googleapis.com",
}

// NormalizeImageURL translates the image-link shapes people paste into
// the sheet (Drive share links, bare file ids, direct CDN URLs) into one
// directly fetchable form. Empty result means the value is unusable and
// should be dropped. Normalizing an already-canonical URL is a no-op.
func NormalizeImageURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if m := reDriveShare.FindStringSubmatch(s); m != nil {
		return "https://drive.google.com/uc?export=view&id=" + m[1]
	}
	if reDriveDirect.MatchString(s) {
		return s
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	if strings.HasPrefix(s, "/") {
		return s // site-relative asset path
	}
	if reBareFileID.MatchString(s) {
		return "https://drive.google.com/uc?export=view&id=" + s
	}
	for _, host := range knownImageHosts {
		if strings.Contains(s, host) {
			return s
		}
	}
	return ""
}

// normalizeImageSlots maps the four raw slots of one row to canonical
// URLs: invalid slots dropped, slot order preserved, at most four kept.
func normalizeImageSlots(slots [4]string) []string {
	var out []string
	for _, raw := range slots {
		if u := NormalizeImageURL(raw); u != "" {
			out = append(out, u)
		}
	}
	return out
}
