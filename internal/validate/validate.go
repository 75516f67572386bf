package validate

import (
	"fmt"
	"net/url"
	"regexp"
)

// Page field length limits, shared with the admin API.
const (
	MaxSlugLength        = 64
	MaxTitleLength       = 500
	MaxDescriptionLength = 5000
	MaxURLLength         = 2048
	MaxUsernameLength    = 100
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

func checkLen(value string, max int, field string) string {
	if len(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

func Title(s string) string       { return checkLen(s, MaxTitleLength, "title") }
func Description(s string) string { return checkLen(s, MaxDescriptionLength, "description") }
func Username(s string) string    { return checkLen(s, MaxUsernameLength, "username") }

// Slug allows lowercase letters, digits and dashes; pages are served at /p/{slug}.
func Slug(s string) string {
	if msg := checkLen(s, MaxSlugLength, "slug"); msg != "" {
		return msg
	}
	if !slugPattern.MatchString(s) {
		return "slug may only contain lowercase letters, digits and dashes"
	}
	return ""
}

// HTTPURL requires an absolute http or https URL with a host.
func HTTPURL(s string, field string) string {
	if msg := checkLen(s, MaxURLLength, field); msg != "" {
		return msg
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Sprintf("%s must be an http(s) URL", field)
	}
	return ""
}

// FieldLimits returns a map of field names to max lengths for the /api/limits endpoint.
func FieldLimits() map[string]int {
	return map[string]int{
		"slug":        MaxSlugLength,
		"title":       MaxTitleLength,
		"description": MaxDescriptionLength,
		"url":         MaxURLLength,
	}
}
