package controller

import (
	"net/http"
)

type indexData struct {
	Title string
}

func (c controller) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if err := c.indexTmpl.Execute(w, indexData{Title: "Sync Video Player"}); err != nil {
		c.logger.WarnContext(r.Context(), "failed to render index", "error", err)
	}
}

func (c controller) video(w http.ResponseWriter, r *http.Request) {
	c.videoHandler.ServeHTTP(w, r)
}
