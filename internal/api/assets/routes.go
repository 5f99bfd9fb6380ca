// Package assets serves the embedded static files under /images/.
package assets

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/johnwards/vitrine/internal/api"
	"github.com/johnwards/vitrine/internal/domain"
	"github.com/johnwards/vitrine/web"
)

// Routes returns a registrar serving files from fsys, which must hold an
// images/ tree. A nil fsys serves the embedded web assets. Missing product
// images are answered with the placeholder image.
func Routes(fsys fs.FS) func(chi.Router) {
	if fsys == nil {
		sub, err := fs.Sub(web.StaticFS, "static")
		if err != nil {
			panic("failed to create sub filesystem: " + err.Error())
		}
		fsys = sub
	}
	fileServer := http.FileServer(http.FS(fsys))
	placeholder := strings.TrimPrefix(domain.PlaceholderImage, "/")

	return func(r chi.Router) {
		r.Get(api.AssetsPrefix+"*", func(w http.ResponseWriter, r *http.Request) {
			name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
			if f, err := fsys.Open(name); err == nil {
				st, statErr := f.Stat()
				_ = f.Close()
				if statErr == nil && !st.IsDir() {
					fileServer.ServeHTTP(w, r)
					return
				}
			}

			if !strings.HasPrefix(name, "images/products/") {
				api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Resource not found: "+r.URL.Path, api.CorrelationID(r.Context())))
				return
			}
			b, err := fs.ReadFile(fsys, placeholder)
			if err != nil {
				http.Error(w, "placeholder image not found", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "image/png")
			w.Header().Set("Cache-Control", "no-cache")
			_, _ = w.Write(b)
		})
	}
}
