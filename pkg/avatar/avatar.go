package avatar

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"

	// Register decoders for every accepted format.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBytes caps inline images at 5 MiB.
const DefaultMaxBytes int64 = 5 << 20

// Result is the single value delivered by Read.
type Result struct {
	DataURL string
	MIME    string
	Size    int64
	Width   int
	Height  int
	Err     error
}

// Option customises a read.
type Option func(*config)

type config struct {
	maxBytes int64
}

// WithMaxBytes overrides the size cap. Non-positive values keep the default.
func WithMaxBytes(limit int64) Option {
	return func(c *config) {
		if limit > 0 {
			c.maxBytes = limit
		}
	}
}

var acceptedMIME = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
}

// Read loads r on a new goroutine and returns a channel that yields exactly
// one Result before closing. Cancelling ctx before the read completes yields
// a Result carrying ctx.Err().
func Read(ctx context.Context, r io.Reader, options ...Option) <-chan Result {
	cfg := config{maxBytes: DefaultMaxBytes}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make(chan Result, 1)
	go func() {
		defer close(out)
		res := load(r, cfg)
		if err := ctx.Err(); err != nil {
			res = Result{Err: err}
		}
		out <- res
	}()
	return out
}

// ReadFile opens path and reads it with Read.
func ReadFile(ctx context.Context, path string, options ...Option) <-chan Result {
	file, err := os.Open(path)
	if err != nil {
		out := make(chan Result, 1)
		out <- Result{Err: fmt.Errorf("avatar: open %s: %w", path, err)}
		close(out)
		return out
	}

	out := make(chan Result, 1)
	go func() {
		defer close(out)
		defer file.Close()
		out <- <-Read(ctx, file, options...)
	}()
	return out
}

func load(r io.Reader, cfg config) Result {
	if r == nil {
		return Result{Err: ErrNoImage}
	}
	data, err := io.ReadAll(io.LimitReader(r, cfg.maxBytes+1))
	if err != nil {
		return Result{Err: fmt.Errorf("avatar: read image: %w", err)}
	}
	return encode(data, cfg)
}

func encode(data []byte, cfg config) Result {
	size := int64(len(data))
	if size == 0 {
		return Result{Err: ErrNoImage}
	}
	if size > cfg.maxBytes {
		return Result{Err: fmt.Errorf("%w: more than %d bytes", ErrTooLarge, cfg.maxBytes)}
	}

	sniffed := http.DetectContentType(data)
	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %s", ErrUnsupportedImage, sniffed)}
	}
	mime, ok := acceptedMIME[format]
	if !ok {
		return Result{Err: fmt.Errorf("%w: %s", ErrUnsupportedImage, format)}
	}

	return Result{
		DataURL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		MIME:    mime,
		Size:    size,
		Width:   imgCfg.Width,
		Height:  imgCfg.Height,
	}
}
