package videostream

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/syncwatch/server/internal/metrics"
)

// Streamer delivers one video file over HTTP with byte-range support. The
// file is opened and stat'd per request, so its size is never cached.
type Streamer struct {
	path   string
	logger *slog.Logger
}

func NewStreamer(path string, logger *slog.Logger) *Streamer {
	return &Streamer{
		path:   path,
		logger: logger,
	}
}

func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(s.path)
	if err != nil {
		s.logger.WarnContext(r.Context(), "failed to open video file", "path", s.path, "error", err)
		metrics.VideoRequests.WithLabelValues(strconv.Itoa(http.StatusNotFound)).Inc()
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		s.logger.WarnContext(r.Context(), "failed to stat video file", "path", s.path, "error", err)
		metrics.VideoRequests.WithLabelValues(strconv.Itoa(http.StatusNotFound)).Inc()
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	size := stat.Size()

	rangeHeader := r.Header.Get("Range")
	rng, err := Resolve(rangeHeader, size)
	if err != nil {
		s.logger.DebugContext(r.Context(), "unsatisfiable range", "range", rangeHeader, "size", size, "error", err)
		metrics.VideoRequests.WithLabelValues(strconv.Itoa(http.StatusRequestedRangeNotSatisfiable)).Inc()
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		http.Error(w, "range not satisfiable", http.StatusRequestedRangeNotSatisfiable)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")

	status := http.StatusOK
	if rangeHeader != "" {
		status = http.StatusPartialContent
		w.Header().Set("Content-Range", rng.ContentRange(size))
		w.Header().Set("Accept-Ranges", "bytes")
	}
	w.Header().Set("Content-Length", strconv.FormatInt(rng.ContentLength(), 10))

	metrics.VideoRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}

	if _, err := f.Seek(rng.Start, io.SeekStart); err != nil {
		s.logger.WarnContext(r.Context(), "failed to seek video file", "offset", rng.Start, "error", err)
		return
	}

	n, err := io.CopyN(w, f, rng.ContentLength())
	metrics.VideoBytesSent.Add(float64(n))
	if err != nil && !errors.Is(err, io.EOF) {
		// client went away mid-stream, nothing to recover
		s.logger.DebugContext(r.Context(), "video stream ended early",
			"sent", n,
			"expected", rng.ContentLength(),
			"error", err,
		)
	}
}
