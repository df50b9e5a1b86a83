package videostream

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStreamer(t *testing.T, content []byte) *Streamer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "video.mp4")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	return NewStreamer(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testContent(n int) []byte {
	content := make([]byte, n)
	for i := range content {
		content[i] = byte(i % 251)
	}
	return content
}

func TestStreamerFullFile(t *testing.T) {
	content := testContent(1000)
	streamer := newTestStreamer(t, content)

	req := httptest.NewRequest(http.MethodGet, "/video", nil)
	rec := httptest.NewRecorder()
	streamer.ServeHTTP(rec, req)

	resp := rec.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "video/mp4", resp.Header.Get("Content-Type"))
	assert.Equal(t, "1000", resp.Header.Get("Content-Length"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, body)
}

func TestStreamerRange(t *testing.T) {
	content := testContent(1000)
	streamer := newTestStreamer(t, content)

	tests := []struct {
		name         string
		rangeHeader  string
		wantStart    int64
		wantEnd      int64
		contentRange string
	}{
		{
			name:         "open-ended",
			rangeHeader:  "bytes=100-",
			wantStart:    100,
			wantEnd:      999,
			contentRange: "bytes 100-999/1000",
		},
		{
			name:         "bounded",
			rangeHeader:  "bytes=250-749",
			wantStart:    250,
			wantEnd:      749,
			contentRange: "bytes 250-749/1000",
		},
		{
			name:         "single byte",
			rangeHeader:  "bytes=0-0",
			wantStart:    0,
			wantEnd:      0,
			contentRange: "bytes 0-0/1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/video", nil)
			req.Header.Set("Range", tt.rangeHeader)
			rec := httptest.NewRecorder()
			streamer.ServeHTTP(rec, req)

			resp := rec.Result()
			assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
			assert.Equal(t, tt.contentRange, resp.Header.Get("Content-Range"))
			assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))

			wantLen := tt.wantEnd - tt.wantStart + 1
			assert.Equal(t, strconv.FormatInt(wantLen, 10), resp.Header.Get("Content-Length"))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, content[tt.wantStart:tt.wantEnd+1], body)
		})
	}
}

func TestStreamerUnsatisfiableRange(t *testing.T) {
	streamer := newTestStreamer(t, testContent(1000))

	req := httptest.NewRequest(http.MethodGet, "/video", nil)
	req.Header.Set("Range", "bytes=5000-")
	rec := httptest.NewRecorder()
	streamer.ServeHTTP(rec, req)

	resp := rec.Result()
	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, resp.StatusCode)
	assert.Equal(t, "bytes */1000", resp.Header.Get("Content-Range"))
}

func TestStreamerMalformedRange(t *testing.T) {
	streamer := newTestStreamer(t, testContent(100))

	req := httptest.NewRequest(http.MethodGet, "/video", nil)
	req.Header.Set("Range", "bytes=abc-def")
	rec := httptest.NewRecorder()
	streamer.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, rec.Result().StatusCode)
}

func TestStreamerMissingFile(t *testing.T) {
	streamer := NewStreamer(filepath.Join(t.TempDir(), "missing.mp4"), slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/video", nil)
	rec := httptest.NewRecorder()
	streamer.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Result().StatusCode)
}

func TestStreamerHead(t *testing.T) {
	streamer := newTestStreamer(t, testContent(1000))

	req := httptest.NewRequest(http.MethodHead, "/video", nil)
	req.Header.Set("Range", "bytes=100-199")
	rec := httptest.NewRecorder()
	streamer.ServeHTTP(rec, req)

	resp := rec.Result()
	assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
	assert.Equal(t, "100", resp.Header.Get("Content-Length"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestStreamerSizeNotCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video.mp4")
	require.NoError(t, os.WriteFile(path, testContent(100), 0o644))
	streamer := NewStreamer(path, slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/video", nil)
	rec := httptest.NewRecorder()
	streamer.ServeHTTP(rec, req)
	assert.Equal(t, "100", rec.Result().Header.Get("Content-Length"))

	// file grows between requests
	require.NoError(t, os.WriteFile(path, testContent(250), 0o644))

	rec = httptest.NewRecorder()
	streamer.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/video", nil))
	assert.Equal(t, "250", rec.Result().Header.Get("Content-Length"))
}
