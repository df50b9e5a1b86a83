package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/syncwatch/server/web"
)

func (c controller) Mux() http.Handler {
	r := chi.NewRouter()

	r.Use(c.requestIdMw)
	r.Use(c.requestLoggingMw)
	r.Use(c.corsMw)

	r.Get("/", c.index)
	r.Get("/video", c.video)
	r.Head("/video", c.video)
	r.Get("/ws", c.ws)
	r.Handle("/static/*", http.FileServer(http.FS(web.FS)))
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(c.notFound)

	return r
}

func (c controller) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Not Found"))
}
