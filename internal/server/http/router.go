package httpserver

import "net/http"

// NewMux mounts the API under /api/ and, when webDir is set, the static front
// end under /.
func NewMux(api http.Handler, webDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/", api)
	if webDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(webDir)))
	}
	return mux
}
