// Package dispatch decides how an affiliate link is opened for a visitor.
package dispatch

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/vidgate/vidgate/internal/browser"
	"github.com/vidgate/vidgate/internal/gate"
	"github.com/vidgate/vidgate/internal/page"
)

// HopPath serves the same-origin redirect document.
const HopPath = "/api/go"

var ErrMalformedTarget = errors.New("malformed or missing link")

type LinkType string

const (
	LinkTiktok LinkType = "tiktok"
	LinkShopee LinkType = "shopee"
)

func ParseLinkType(s string) (LinkType, error) {
	switch LinkType(s) {
	case LinkTiktok, LinkShopee:
		return LinkType(s), nil
	default:
		return "", fmt.Errorf("invalid link type %q", s)
	}
}

// LinkForAction maps a gate navigation to the link it opens.
func LinkForAction(a gate.Action) (LinkType, bool) {
	switch a {
	case gate.ActionTiktok:
		return LinkTiktok, true
	case gate.ActionShopee:
		return LinkShopee, true
	default:
		return "", false
	}
}

type Mode string

const (
	// ModeNewTab opens the external URL directly in a new browsing context.
	ModeNewTab Mode = "new_tab"
	// ModeHop navigates the current document through the same-origin
	// redirect document, so the in-app browser sees no cross-origin jump.
	ModeHop Mode = "hop"
	// ModeNone means there is nothing to open.
	ModeNone Mode = "none"
)

type Target struct {
	Mode Mode
	URL  string
}

// Resolve returns the validated external URL for link on p.
func Resolve(p *page.Page, link LinkType) (string, error) {
	if p == nil {
		return "", ErrMalformedTarget
	}
	var raw string
	switch link {
	case LinkTiktok:
		raw = p.TiktokLink
	case LinkShopee:
		raw = p.ShopeeLink
	}
	if !ValidExternalURL(raw) {
		return "", ErrMalformedTarget
	}
	return raw, nil
}

// Open picks how link is opened in ctx. A missing or malformed link yields
// ModeNone together with ErrMalformedTarget.
func Open(link LinkType, p *page.Page, ctx browser.Context) (Target, error) {
	target, err := Resolve(p, link)
	if err != nil {
		return Target{Mode: ModeNone}, err
	}
	if ctx.IsInApp {
		return Target{Mode: ModeHop, URL: HopURL(p.Slug, link)}, nil
	}
	return Target{Mode: ModeNewTab, URL: target}, nil
}

func HopURL(slug string, link LinkType) string {
	q := url.Values{}
	if slug != "" {
		q.Set("page", slug)
	}
	q.Set("type", string(link))
	return HopPath + "?" + q.Encode()
}

// ValidExternalURL accepts absolute http(s) URLs with a host.
func ValidExternalURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
