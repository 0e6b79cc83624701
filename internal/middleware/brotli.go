package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

const (
	// Responses smaller than this go out uncompressed; the encoding
	// overhead outweighs the savings on small JSON envelopes.
	compressMinBytes = 1024

	compressQuality = brotli.DefaultCompression
)

// Brotli compresses response bodies for clients that advertise br support
// in Accept-Encoding. Output is buffered until compressMinBytes so short
// responses pass through untouched.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !clientAcceptsBr(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		w := &brCompressor{
			ResponseWriter: c.Writer,
			br:             brotli.NewWriterLevel(c.Writer, compressQuality),
		}
		c.Writer = w
		defer w.finish(c)

		c.Next()
	}
}

type brCompressor struct {
	gin.ResponseWriter
	br      *brotli.Writer
	pending []byte
	started bool
}

func (w *brCompressor) Write(p []byte) (int, error) {
	if w.started {
		return w.br.Write(p)
	}

	w.pending = append(w.pending, p...)
	if len(w.pending) < compressMinBytes {
		return len(p), nil
	}

	w.started = true
	w.ResponseWriter.Header().Set("Content-Encoding", "br")
	w.ResponseWriter.Header().Del("Content-Length")
	if _, err := w.br.Write(w.pending); err != nil {
		return 0, err
	}
	w.pending = nil
	return len(p), nil
}

func (w *brCompressor) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// finish flushes whatever is left once the handler chain returns: responses
// that never crossed the threshold are written plain, compressed ones close
// the brotli stream.
func (w *brCompressor) finish(c *gin.Context) {
	if w.started {
		if err := w.br.Close(); err != nil {
			_ = c.Error(err)
		}
		return
	}
	if len(w.pending) > 0 {
		if _, err := w.ResponseWriter.Write(w.pending); err != nil {
			_ = c.Error(err)
		}
	}
}

func clientAcceptsBr(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}
