package storage

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	versionSegment   = regexp.MustCompile(`^v\d+$`)
	transformSegment = regexp.MustCompile(`^[a-z]{1,3}_[^/]*(,[a-z]{1,3}_[^/]*)*$`)
)

// PublicIDFromURL derives the image host public id from a delivery URL.
//
// For ".../upload/[transformations/][v<digits>/]<folder>/<name>.<ext>" the id is
// "<folder>/<name>". URLs without an upload segment yield their last path
// segment minus its extension. ok is false when no id can be derived.
func PublicIDFromURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	p := strings.Trim(u.Path, "/")
	if p == "" {
		return "", false
	}
	segments := strings.Split(p, "/")

	uploadAt := -1
	for i, seg := range segments {
		if seg == "upload" {
			uploadAt = i
			break
		}
	}

	if uploadAt == -1 {
		return trimExt(segments[len(segments)-1])
	}

	rest := segments[uploadAt+1:]
	for len(rest) > 1 && transformSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", false
	}

	last, ok := trimExt(rest[len(rest)-1])
	if !ok {
		return "", false
	}
	rest[len(rest)-1] = last
	return strings.Join(rest, "/"), true
}

func trimExt(segment string) (string, bool) {
	name := strings.TrimSuffix(segment, path.Ext(segment))
	if name == "" {
		return "", false
	}
	return name, true
}
