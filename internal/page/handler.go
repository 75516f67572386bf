package page

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vidgate/vidgate/internal/httputil"
	"github.com/vidgate/vidgate/internal/validate"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

type createRequest struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Video1URL   string `json:"video1Url"`
	Video2URL   string `json:"video2Url"`
	TiktokLink  string `json:"tiktokLink"`
	ShopeeLink  string `json:"shopeeLink"`
	IsActive    *bool  `json:"isActive"`
}

type updateRequest struct {
	Slug        *string `json:"slug"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Video1URL   *string `json:"video1Url"`
	Video2URL   *string `json:"video2Url"`
	TiktokLink  *string `json:"tiktokLink"`
	ShopeeLink  *string `json:"shopeeLink"`
	IsActive    *bool   `json:"isActive"`
}

type pageResponse struct {
	Page *Page `json:"page"`
}

type listResponse struct {
	Pages []Page `json:"pages"`
}

type contentResponse struct {
	Content *Page `json:"content"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pages, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("page: list failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list pages")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Pages: pages})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" || req.Title == "" || req.Description == "" || req.Video1URL == "" ||
		req.Video2URL == "" || req.TiktokLink == "" || req.ShopeeLink == "" {
		httputil.WriteError(w, http.StatusBadRequest, "all fields are required")
		return
	}

	if msg := validateFields(&req.Slug, &req.Title, &req.Description, &req.Video1URL, &req.Video2URL, &req.TiktokLink, &req.ShopeeLink); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := h.repo.Create(r.Context(), Page{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Video1URL:   req.Video1URL,
		Video2URL:   req.Video2URL,
		TiktokLink:  req.TiktokLink,
		ShopeeLink:  req.ShopeeLink,
		IsActive:    isActive,
	})
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			httputil.WriteError(w, http.StatusBadRequest, "slug already exists, please use a different slug")
			return
		}
		slog.Error("page: create failed", "slug", req.Slug, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create page")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, pageResponse{Page: created})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Slug != nil {
		trimmed := strings.TrimSpace(*req.Slug)
		req.Slug = &trimmed
	}
	if msg := validateFields(req.Slug, req.Title, req.Description, req.Video1URL, req.Video2URL, req.TiktokLink, req.ShopeeLink); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.repo.Update(r.Context(), id, Changes{
		Slug:        nonEmpty(req.Slug),
		Title:       nonEmpty(req.Title),
		Description: nonEmpty(req.Description),
		Video1URL:   nonEmpty(req.Video1URL),
		Video2URL:   nonEmpty(req.Video2URL),
		TiktokLink:  nonEmpty(req.TiktokLink),
		ShopeeLink:  nonEmpty(req.ShopeeLink),
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.WriteError(w, http.StatusNotFound, "page not found")
		case errors.Is(err, ErrSlugTaken):
			httputil.WriteError(w, http.StatusBadRequest, "slug already exists, please use a different slug")
		default:
			slog.Error("page: update failed", "page_id", id, "error", err)
			httputil.WriteError(w, http.StatusInternalServerError, "failed to update page")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pageResponse{Page: updated})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "page not found")
			return
		}
		slog.Error("page: delete failed", "page_id", id, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete page")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Content is the public lookup used by visitor pages. Failures and unknown
// slugs both answer {"content": null} so callers can render an empty state.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")

	p, err := h.repo.FindActive(r.Context(), slug)
	if err != nil && !errors.Is(err, ErrNotFound) {
		slog.Warn("page: content lookup failed", "slug", slug, "error", err)
	}
	httputil.SetNoStore(w)
	httputil.WriteJSON(w, http.StatusOK, contentResponse{Content: p})
}

// validateFields checks every non-nil field; empty strings are left to the
// caller's required-field rules.
func validateFields(slug, title, description, video1, video2, tiktok, shopee *string) string {
	if slug != nil && *slug != "" {
		if msg := validate.Slug(*slug); msg != "" {
			return msg
		}
		if *slug == LatestSlug {
			return "slug \"latest\" is reserved"
		}
	}
	if title != nil {
		if msg := validate.Title(*title); msg != "" {
			return msg
		}
	}
	if description != nil {
		if msg := validate.Description(*description); msg != "" {
			return msg
		}
	}
	urls := []struct {
		value *string
		field string
	}{
		{video1, "video1Url"},
		{video2, "video2Url"},
		{tiktok, "tiktokLink"},
		{shopee, "shopeeLink"},
	}
	for _, u := range urls {
		if u.value == nil || *u.value == "" {
			continue
		}
		if msg := validate.HTTPURL(*u.value, u.field); msg != "" {
			return msg
		}
	}
	return ""
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
