package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/vidgate/vidgate/internal/httputil"
)

const uploadURLExpiry = 30 * time.Minute

type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, key string, contentType string, contentLength int64, expiry time.Duration) (string, error)
	PublicURL(key string) string
	KeyFromURL(rawURL string) (string, bool)
	DeleteObject(ctx context.Context, key string) error
}

type Handler struct {
	storage        ObjectStorage
	maxUploadBytes int64
}

func NewHandler(s ObjectStorage, maxUploadBytes int64) *Handler {
	return &Handler{storage: s, maxUploadBytes: maxUploadBytes}
}

type signRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
}

type signResponse struct {
	UploadURL string `json:"uploadUrl"`
	VideoURL  string `json:"videoUrl"`
	Key       string `json:"key"`
}

type deleteRequest struct {
	VideoURL string `json:"videoUrl"`
}

type deleteResponse struct {
	Deleted bool   `json:"deleted"`
	Skipped bool   `json:"skipped,omitempty"`
	Key     string `json:"key,omitempty"`
}

func extensionForContentType(ct string) (string, bool) {
	switch ct {
	case "video/mp4":
		return ".mp4", true
	case "video/webm":
		return ".webm", true
	case "video/quicktime":
		return ".mov", true
	default:
		return "", false
	}
}

func videoKey(contentType string) string {
	ext, _ := extensionForContentType(contentType)
	return fmt.Sprintf("videos/%s%s", ulid.Make().String(), ext)
}

// Sign returns a presigned PUT the admin browser uploads to directly, plus
// the public URL to store on the page once the upload finishes.
func (h *Handler) Sign(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, ok := extensionForContentType(req.ContentType); !ok {
		httputil.WriteError(w, http.StatusBadRequest, "only video/mp4, video/webm, and video/quicktime uploads are supported")
		return
	}

	if req.FileSize <= 0 {
		httputil.WriteError(w, http.StatusBadRequest, "fileSize must be positive")
		return
	}

	if h.maxUploadBytes > 0 && req.FileSize > h.maxUploadBytes {
		httputil.WriteError(w, http.StatusBadRequest, "file too large")
		return
	}

	key := videoKey(req.ContentType)
	uploadURL, err := h.storage.GenerateUploadURL(r.Context(), key, req.ContentType, req.FileSize, uploadURLExpiry)
	if err != nil {
		slog.Error("upload: presign failed", "key", key, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to generate upload URL")
		return
	}

	httputil.SetNoStore(w)
	httputil.WriteJSON(w, http.StatusOK, signResponse{
		UploadURL: uploadURL,
		VideoURL:  h.storage.PublicURL(key),
		Key:       key,
	})
}

// Delete removes a previously uploaded video. URLs that do not point into
// our bucket are skipped, not rejected, since pages may link external videos.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.VideoURL == "" {
		httputil.WriteError(w, http.StatusBadRequest, "videoUrl is required")
		return
	}

	key, ok := h.storage.KeyFromURL(req.VideoURL)
	if !ok {
		httputil.WriteJSON(w, http.StatusOK, deleteResponse{Skipped: true})
		return
	}

	if err := h.storage.DeleteObject(r.Context(), key); err != nil {
		slog.Error("upload: delete failed", "key", key, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete video")
		return
	}

	slog.Info("upload: video deleted", "key", key)
	httputil.WriteJSON(w, http.StatusOK, deleteResponse{Deleted: true, Key: key})
}
