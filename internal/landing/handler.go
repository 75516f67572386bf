// Package landing serves the visitor-facing pages: the gated video page, the
// in-app browser escape documents and the redirect documents used to open
// affiliate links.
package landing

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vidgate/vidgate/internal/browser"
	"github.com/vidgate/vidgate/internal/dispatch"
	"github.com/vidgate/vidgate/internal/gate"
	"github.com/vidgate/vidgate/internal/httputil"
	"github.com/vidgate/vidgate/internal/page"
)

const (
	// NoticeParam carries a passive message for the next page render.
	NoticeParam       = "notice"
	noticeUnavailable = "link-unavailable"
	viewportParam     = "vw"
	maxViewportWidth  = 10000
)

type PageFinder interface {
	FindActive(ctx context.Context, slug string) (*page.Page, error)
}

type Handler struct {
	pages         PageFinder
	engine        *gate.Engine
	policy        gate.Policy
	baseURL       string
	secureCookies bool
}

func NewHandler(pages PageFinder, engine *gate.Engine, policy gate.Policy, baseURL string) *Handler {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Handler{
		pages:         pages,
		engine:        engine,
		policy:        policy,
		baseURL:       baseURL,
		secureCookies: strings.HasPrefix(baseURL, "https://"),
	}
}

// Page renders GET / and GET /p/{slug}. Hostile in-app browsers are sent
// through the escape flow before any gate UI is rendered.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	nonce := httputil.NonceFromContext(r.Context())
	httputil.SetNoStore(w)

	bctx := browser.Detect(r.UserAgent(), viewportWidth(r))
	if h.escape(w, r, bctx, nonce) {
		return
	}

	p, err := h.pages.FindActive(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, page.ErrNotFound) {
			slog.Error("landing: failed to load page", "slug", slug, "error", err)
		}
		httputil.WriteHTML(w, http.StatusNotFound, unavailablePageTemplate, unavailablePageData{Nonce: nonce})
		return
	}

	device := gate.DeviceClassForWidth(bctx.ViewportWidth)
	persistence := gate.NewPersistence(NewCookieStore(w, r, h.secureCookies), h.policy)
	state := persistence.Restore(gate.KeyFor(p.Slug), device)
	decision := h.engine.Decide(state)

	httputil.WriteHTML(w, http.StatusOK, gatePageTemplate, gatePageData{
		Title:          p.Title,
		Description:    p.Description,
		Videos:         videos(p),
		ShowOverlay:    decision.ShowOverlay,
		Label:          decision.Label,
		ClickURL:       clickPath(p.Slug, bctx.ViewportWidth),
		NewTab:         !bctx.IsInApp,
		Notice:         r.URL.Query().Get(NoticeParam) == noticeUnavailable,
		Device:         string(device),
		MobileMaxWidth: gate.MobileMaxWidth,
		Nonce:          nonce,
	})
}

func (h *Handler) escape(w http.ResponseWriter, r *http.Request, bctx browser.Context, nonce string) bool {
	current, err := url.Parse(h.origin(r) + r.URL.RequestURI())
	if err != nil {
		slog.Warn("landing: unparseable request url", "url", r.URL.String(), "error", err)
		return false
	}

	out := browser.Escape(bctx, current, browser.Attempted(current))
	switch out.State {
	case browser.StateEscaping:
		slog.Info("landing: escaping in-app browser", "platform", "android", "path", r.URL.Path)
		httputil.WriteHTML(w, http.StatusOK, intentPageTemplate, intentPageData{
			IntentURL: template.URL(out.IntentURL),
			TargetURL: out.TargetURL,
			Nonce:     nonce,
		})
		return true
	case browser.StateEscapeScreen:
		openHref := template.URL(out.OpenURL)
		if bctx.IsAndroid {
			target, _ := url.Parse(out.TargetURL)
			openHref = template.URL(browser.IntentURL(target))
		}
		httputil.WriteHTML(w, http.StatusOK, escapePageTemplate, escapePageData{
			TargetURL:    out.TargetURL,
			OpenURL:      out.OpenURL,
			OpenHref:     openHref,
			IOS:          out.IOS,
			AutoRedirect: out.AutoRedirect,
			Nonce:        nonce,
		})
		return true
	default:
		return false
	}
}

// Click applies one overlay click. The new count is written to a cookie on
// this same response, before the visitor is sent to the external link.
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	httputil.SetNoStore(w)

	p, err := h.pages.FindActive(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, page.ErrNotFound) {
			slog.Error("landing: failed to load page", "slug", slug, "error", err)
		}
		http.Redirect(w, r, pagePath(slug), http.StatusSeeOther)
		return
	}

	bctx := browser.Detect(r.UserAgent(), viewportWidth(r))
	device := gate.DeviceClassForWidth(bctx.ViewportWidth)
	key := gate.KeyFor(p.Slug)
	persistence := gate.NewPersistence(NewCookieStore(w, r, h.secureCookies), h.policy)

	next, action := h.engine.Advance(persistence.Load(key, device))
	persistence.Save(key, next)

	link, ok := dispatch.LinkForAction(action)
	if !ok {
		http.Redirect(w, r, pagePath(p.Slug), http.StatusSeeOther)
		return
	}

	target, err := dispatch.Open(link, p, bctx)
	if err != nil {
		slog.Warn("landing: link unavailable", "slug", p.Slug, "link", link, "error", err)
		http.Redirect(w, r, pagePath(p.Slug)+"?"+NoticeParam+"="+noticeUnavailable, http.StatusSeeOther)
		return
	}

	switch target.Mode {
	case dispatch.ModeHop:
		http.Redirect(w, r, target.URL, http.StatusSeeOther)
	default:
		http.Redirect(w, r, target.URL, http.StatusFound)
	}
}

// Go serves the same-origin redirect document for a page link, chosen by
// type or by an explicit url that must be one of the page's own links.
func (h *Handler) Go(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawType := q.Get("type")
	rawURL := q.Get("url")

	var link dispatch.LinkType
	if rawURL == "" {
		var err error
		link, err = dispatch.ParseLinkType(rawType)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid type")
			return
		}
	}

	p, err := h.pages.FindActive(r.Context(), q.Get("page"))
	if err != nil {
		if !errors.Is(err, page.ErrNotFound) {
			slog.Error("landing: failed to load page", "slug", q.Get("page"), "error", err)
		}
		httputil.WriteError(w, http.StatusNotFound, "content not found")
		return
	}

	var target string
	if rawURL != "" {
		target, err = matchPageLink(p, rawURL)
	} else {
		target, err = dispatch.Resolve(p, link)
	}
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "link unavailable")
		return
	}

	httputil.SetNoStore(w)
	httputil.WriteHTML(w, http.StatusOK, hopPageTemplate, redirectPageData{
		URL:   target,
		Nonce: httputil.NonceFromContext(r.Context()),
	})
}

// Open serves the synthetic-click document that pushes iOS in-app browsers
// into the system browser. Only URLs on this site are followed; anything
// else falls back to the site root.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	httputil.SetNoStore(w)
	httputil.WriteHTML(w, http.StatusOK, openPageTemplate, redirectPageData{
		URL:   h.safeOpenTarget(h.origin(r), r.URL.Query().Get("url")),
		Nonce: httputil.NonceFromContext(r.Context()),
	})
}

func (h *Handler) origin(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (h *Handler) safeOpenTarget(origin, raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, "/\\") {
		return raw
	}
	if u, err := url.Parse(raw); err == nil && u.Host != "" && u.User == nil {
		if strings.EqualFold(u.Scheme+"://"+u.Host, origin) {
			return raw
		}
	}
	return origin + "/"
}

func matchPageLink(p *page.Page, raw string) (string, error) {
	for _, link := range []dispatch.LinkType{dispatch.LinkTiktok, dispatch.LinkShopee} {
		if target, err := dispatch.Resolve(p, link); err == nil && target == raw {
			return target, nil
		}
	}
	return "", dispatch.ErrMalformedTarget
}

// viewportWidth prefers the width sent with the request over the one
// remembered in a cookie. Zero means unknown.
func viewportWidth(r *http.Request) int {
	if w := parseWidth(r.URL.Query().Get(viewportParam)); w > 0 {
		return w
	}
	if c, err := r.Cookie(viewportCookie); err == nil {
		return parseWidth(c.Value)
	}
	return 0
}

func parseWidth(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 || n > maxViewportWidth {
		return 0
	}
	return n
}

func videos(p *page.Page) []string {
	var out []string
	for _, v := range []string{p.Video1URL, p.Video2URL} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func pagePath(slug string) string {
	return "/p/" + url.PathEscape(slug)
}

// clickPath always names the resolved page, so a click from the site root
// counts toward the same page it rendered.
func clickPath(slug string, width int) string {
	return pagePath(slug) + "/click?" + viewportParam + "=" + strconv.Itoa(width)
}
