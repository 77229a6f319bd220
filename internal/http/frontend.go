package httpapi

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cattery-backend-go/internal/services"
)

var reservedPrefixes = []string{"api/", "images/", "assets/"}

func assetsDir(dist string) string {
	return filepath.Join(dist, "assets")
}

// Root serves the SEO shell, or a status document while no build is present.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	if s.serveShell(w, r) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Abyssinian Cat Breeder API",
		"status":  "running",
	})
}

// Frontend handles client-side routes. Real files from the build are served
// as-is except .html documents, which always go through the shell.
func (s *Server) Frontend(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(path, prefix) {
			WriteError(w, http.StatusNotFound, "Not found")
			return
		}
	}
	if !strings.HasSuffix(path, ".html") {
		candidate := filepath.Join(s.Config.FrontendDist, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			http.ServeFile(w, r, candidate)
			return
		}
	}
	if s.serveShell(w, r) {
		return
	}
	WriteError(w, http.StatusNotFound, "Not found")
}

// serveShell writes index.html with the SEO markers filled in. It reports
// false without writing anything when there is no usable shell.
func (s *Server) serveShell(w http.ResponseWriter, r *http.Request) bool {
	raw, err := os.ReadFile(filepath.Join(s.Config.FrontendDist, "index.html"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			writeFailure(w, r, err)
			return true
		}
		return false
	}
	fragments, err := s.SEO.Render(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return true
	}
	doc, ok := services.InjectSEO(string(raw), fragments)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
	return true
}
