package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// gzipPool shares flate state across requests. Sync batches from field
// devices compress well and arrive in bursts, so per-request allocation of
// the compressor is measurable under load.
var gzipPool = struct {
	writers sync.Pool
	readers sync.Pool
}{
	writers: sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }},
	readers: sync.Pool{New: func() any { return new(gzip.Reader) }},
}

// withGZip transparently inflates gzip request bodies and, when the client
// advertises gzip in Accept-Encoding, compresses the response.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			body, err := inflatedBody(r.Body)
			if err != nil {
				http.Error(w, "malformed gzip body", http.StatusBadRequest)
				return
			}
			r.Body = body
			// downstream handlers see a plain body
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipPool.writers.Get().(*gzip.Writer)
		zw.Reset(w)
		defer func() {
			zw.Close()
			gzipPool.writers.Put(zw)
		}()

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, zw: zw}, r)
	})
}

// inflatedBody wraps body in a pooled gzip reader. Closing the returned body
// hands the reader back to the pool.
func inflatedBody(body io.ReadCloser) (io.ReadCloser, error) {
	zr := gzipPool.readers.Get().(*gzip.Reader)
	if err := zr.Reset(body); err != nil {
		gzipPool.readers.Put(zr)
		return nil, err
	}
	return &pooledGzipBody{zr: zr}, nil
}

type pooledGzipBody struct {
	zr     *gzip.Reader
	closed bool
}

func (b *pooledGzipBody) Read(p []byte) (int, error) { return b.zr.Read(p) }

// Close is idempotent: the reader must go back to the pool exactly once.
func (b *pooledGzipBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	err := b.zr.Close()
	gzipPool.readers.Put(b.zr)
	return err
}

type gzipResponseWriter struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(p []byte) (int, error) {
	return w.zw.Write(p)
}
