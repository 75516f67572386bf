package browser

import (
	"fmt"
	"net/url"
	"strings"
)

// EscapeParam is appended to URLs handed to an escape attempt. Seeing it on
// the way back in means the attempt already ran and must not run again.
const EscapeParam = "escape"

type EscapeState string

const (
	StateNormal       EscapeState = "normal"
	StateEscaping     EscapeState = "escaping"
	StateEscapeScreen EscapeState = "escape_screen"
)

type Outcome struct {
	State EscapeState
	// IntentURL asks Android to reopen the page in the system browser.
	IntentURL string
	// TargetURL is the current page marked as an escape attempt.
	TargetURL string
	// OpenURL is the same-origin synthetic-click document for TargetURL.
	OpenURL string
	// AutoRedirect enables the timed escape actions on the escape screen.
	AutoRedirect bool
	IOS          bool
}

// Escape decides what a page load does before any gate UI renders.
// currentURL must be absolute.
func Escape(ctx Context, currentURL *url.URL, attempted bool) Outcome {
	if !ctx.IsHostile {
		return Outcome{State: StateNormal}
	}

	target := MarkAttempted(currentURL)
	out := Outcome{
		TargetURL: target.String(),
		OpenURL:   "/api/open?url=" + url.QueryEscape(target.String()),
		IOS:       ctx.IsIOS,
	}

	if ctx.IsAndroid && !attempted {
		out.State = StateEscaping
		out.IntentURL = IntentURL(target)
		return out
	}

	out.State = StateEscapeScreen
	out.AutoRedirect = ctx.IsIOS && !attempted
	return out
}

// Attempted reports whether the URL carries the escape marker.
func Attempted(u *url.URL) bool {
	return u.Query().Get(EscapeParam) == "1"
}

// MarkAttempted returns a copy of u with the escape marker set.
func MarkAttempted(u *url.URL) *url.URL {
	marked := *u
	q := marked.Query()
	q.Set(EscapeParam, "1")
	marked.RawQuery = q.Encode()
	marked.Fragment = ""
	return &marked
}

// IntentURL builds a Chrome intent for u. The fallback URL is u itself, used
// when the intent cannot be resolved.
func IntentURL(u *url.URL) string {
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	withoutScheme := strings.TrimPrefix(u.String(), scheme+"://")
	return fmt.Sprintf("intent://%s#Intent;scheme=%s;package=com.android.chrome;S.browser_fallback_url=%s;end",
		withoutScheme, scheme, url.QueryEscape(u.String()))
}
