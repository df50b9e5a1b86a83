package videostream

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidRange  = errors.New("invalid range format")
	ErrUnsatisfiable = errors.New("range not satisfiable")
)

// Range is an inclusive byte interval into the video file.
type Range struct {
	Start int64
	End   int64
}

func (r Range) ContentLength() int64 {
	return r.End - r.Start + 1
}

func (r Range) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, size)
}

// Resolve translates a Range request header and the file size into a concrete
// byte interval. An empty header resolves to the whole file. Only the first
// range-spec of a multi-range header is honored.
func Resolve(header string, size int64) (Range, error) {
	if header == "" {
		return Range{Start: 0, End: size - 1}, nil
	}

	if !strings.HasPrefix(header, "bytes=") {
		return Range{}, ErrInvalidRange
	}

	spec := strings.TrimPrefix(header, "bytes=")
	if idx := strings.Index(spec, ","); idx != -1 {
		spec = strings.TrimSpace(spec[:idx])
	}

	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return Range{}, ErrInvalidRange
	}

	if parts[0] == "" {
		// suffix form: last N bytes
		suffixLen, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || suffixLen <= 0 {
			return Range{}, ErrInvalidRange
		}
		start := size - suffixLen
		if start < 0 {
			start = 0
		}
		if size == 0 {
			return Range{}, ErrUnsatisfiable
		}
		return Range{Start: start, End: size - 1}, nil
	}

	start, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || start < 0 {
		return Range{}, ErrInvalidRange
	}

	end := size - 1
	if parts[1] != "" {
		end, err = strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Range{}, ErrInvalidRange
		}
	}

	if start > end || start >= size || end >= size {
		return Range{}, ErrUnsatisfiable
	}

	return Range{Start: start, End: end}, nil
}
