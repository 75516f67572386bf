// Package browser classifies the visitor's browser from its user agent and
// decides how to get out of embedded in-app browsers that block or intercept
// external navigation.
package browser

import (
	"regexp"
	"strings"

	"github.com/mssola/useragent"
)

const (
	fallbackMobileWidth  = 375
	fallbackDesktopWidth = 1280
)

// hostileTokens mark in-app browsers that must be escaped before the gate
// renders. Best effort; unknown browsers are treated as normal.
var hostileTokens = []string{"fban", "fbav", "fb_iab", "fbios", "instagram", "line/", "zalo"}

// embeddedTokens mark webviews that are tolerable to render in but still
// show a "leaving app" prompt on direct cross-origin navigation.
var embeddedTokens = []string{"; wv)", "musical_ly", "bytedancewebview", "twitter for"}

var (
	androidPattern = regexp.MustCompile(`(?i)android`)
	iosPattern     = regexp.MustCompile(`(?i)iphone|ipad|ipod`)
)

type Context struct {
	UserAgent     string
	IsAndroid     bool
	IsIOS         bool
	IsInApp       bool
	IsHostile     bool
	ViewportWidth int
}

// Detect parses the user agent once. A viewportWidth of zero means the
// client has not reported one, and a width typical for the device is used.
func Detect(userAgent string, viewportWidth int) Context {
	lower := strings.ToLower(userAgent)
	ua := useragent.New(userAgent)

	ctx := Context{
		UserAgent:     userAgent,
		IsAndroid:     androidPattern.MatchString(userAgent),
		IsIOS:         iosPattern.MatchString(userAgent),
		IsHostile:     containsAny(lower, hostileTokens),
		ViewportWidth: viewportWidth,
	}
	ctx.IsInApp = ctx.IsHostile || containsAny(lower, embeddedTokens)

	if ctx.ViewportWidth <= 0 {
		if ua.Mobile() || ctx.IsAndroid || ctx.IsIOS {
			ctx.ViewportWidth = fallbackMobileWidth
		} else {
			ctx.ViewportWidth = fallbackDesktopWidth
		}
	}
	return ctx
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
