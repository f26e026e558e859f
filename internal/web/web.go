package web

import (
	"bytes"
	_ "embed"
	"net/http"
	"time"
)

//go:embed static/index.html
var indexHTML []byte

var startedAt = time.Now()

// IndexHandler отдаёт встроенную стартовую страницу.
func IndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, "index.html", startedAt, bytes.NewReader(indexHTML))
	})
}
