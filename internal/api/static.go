package api

import (
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// Static serves a built single-page app from dir. Paths that do not match
// a file fall back to index.html so client-side routes resolve.
func Static(dir string) http.Handler {
	return staticFS(os.DirFS(dir))
}

func staticFS(root fs.FS) http.Handler {
	fileServer := http.FileServer(http.FS(root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' blob: data:; media-src 'self' blob:; style-src 'self' 'unsafe-inline'; connect-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if strings.HasPrefix(r.URL.Path, "/api/") {
			httpError(w, http.StatusNotFound, "Not found")
			return
		}

		if path := strings.TrimPrefix(r.URL.Path, "/"); path != "" {
			f, err := root.Open(path)
			if err != nil {
				r.URL.Path = "/"
			} else {
				f.Close()
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}
