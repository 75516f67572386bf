package server

import (
	"io/fs"
	"net/http"
	"strings"
)

// adminPrefix is where the admin single-page app is mounted. Visitor pages
// own the site root.
const adminPrefix = "/admin"

type spaFileServer struct {
	fileServer http.Handler
	fileSystem fs.FS
}

func newSPAFileServer(fsys fs.FS) *spaFileServer {
	return &spaFileServer{
		fileServer: http.FileServer(http.FS(fsys)),
		fileSystem: fsys,
	}
}

// ServeHTTP expects the mount prefix to be stripped already. Unknown paths
// fall back to index.html so client-side routes survive a reload.
func (s *spaFileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" {
		path = "index.html"
	}

	if _, err := fs.Stat(s.fileSystem, path); err != nil {
		r.URL.Path = "/"
	}
	if r.URL.Path == "/" {
		w.Header().Set("Cache-Control", "no-cache")
	}

	s.fileServer.ServeHTTP(w, r)
}
