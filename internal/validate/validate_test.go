package validate

import (
	"strings"
	"testing"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "Trang 1 - Video Hot", ""},
		{"empty", "", ""},
		{"at limit", string(make([]byte, MaxTitleLength)), ""},
		{"over limit", string(make([]byte, MaxTitleLength+1)), "title must be 500 characters or fewer"},
	}
	for _, tt := range tests {
		if got := Title(tt.input); got != tt.want {
			t.Errorf("Title(%q [len=%d]) = %q, want %q", tt.name, len(tt.input), got, tt.want)
		}
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "Nội dung trang 1.", ""},
		{"at limit", string(make([]byte, MaxDescriptionLength)), ""},
		{"over limit", string(make([]byte, MaxDescriptionLength+1)), "description must be 5000 characters or fewer"},
	}
	for _, tt := range tests {
		if got := Description(tt.input); got != tt.want {
			t.Errorf("Description(%q [len=%d]) = %q, want %q", tt.name, len(tt.input), got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"1", true},
		{"summer-sale", true},
		{"a1-b2", true},
		{"", false},
		{"-leading", false},
		{"Upper", false},
		{"with space", false},
		{"../etc", false},
		{strings.Repeat("a", MaxSlugLength), true},
		{strings.Repeat("a", MaxSlugLength+1), false},
	}
	for _, tt := range tests {
		got := Slug(tt.input)
		if (got == "") != tt.valid {
			t.Errorf("Slug(%q) = %q, want valid=%v", tt.input, got, tt.valid)
		}
	}
}

func TestHTTPURL(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"https://vt.tiktok.com/abc", true},
		{"http://shopee.vn", true},
		{"", false},
		{"javascript:alert(1)", false},
		{"//evil.example", false},
		{"ftp://files.example", false},
		{"https://", false},
		{"https://example.com/" + strings.Repeat("a", MaxURLLength), false},
	}
	for _, tt := range tests {
		got := HTTPURL(tt.input, "tiktokLink")
		if (got == "") != tt.valid {
			t.Errorf("HTTPURL(%q) = %q, want valid=%v", tt.input, got, tt.valid)
		}
	}
}

func TestHTTPURL_MessageNamesField(t *testing.T) {
	got := HTTPURL("nope", "shopeeLink")
	if got != "shopeeLink must be an http(s) URL" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestFieldLimits(t *testing.T) {
	limits := FieldLimits()
	if limits["title"] != MaxTitleLength || limits["slug"] != MaxSlugLength {
		t.Errorf("unexpected limits: %v", limits)
	}
}
