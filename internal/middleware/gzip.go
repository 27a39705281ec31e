package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// GzipMiddleware распаковывает gzip-запросы и сжимает ответы для клиентов с поддержкой gzip.
// Сжимаются только текстовые ответы (JSON, text/*, SVG): PNG уже сжат.
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			if r.Body == nil || r.Body == http.NoBody {
				writeMessage(w, http.StatusBadRequest, "Empty request body")
				return
			}

			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "Invalid gzip body")
				return
			}
			defer gz.Close()
			r.Body = gz
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: w}
		defer gw.Close()

		next.ServeHTTP(gw, r)
	})
}

// gzipResponseWriter откладывает решение о сжатии до записи заголовков,
// когда уже известен Content-Type ответа
type gzipResponseWriter struct {
	http.ResponseWriter
	gz       *gzip.Writer
	decided  bool
	compress bool
}

// WriteHeader выбирает режим сжатия и записывает код состояния
func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if !w.decided {
		w.decide(statusCode)
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write записывает данные в сжатый или обычный поток
func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.decided {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.compress {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// Close дописывает хвост gzip-потока
func (w *gzipResponseWriter) Close() error {
	if w.gz == nil {
		return nil
	}
	return w.gz.Close()
}

func (w *gzipResponseWriter) decide(statusCode int) {
	w.decided = true

	h := w.Header()
	if statusCode == http.StatusNoContent || statusCode == http.StatusNotModified ||
		h.Get("Content-Encoding") != "" || !isCompressible(h.Get("Content-Type")) {
		return
	}

	w.compress = true
	h.Set("Content-Encoding", "gzip")
	h.Del("Content-Length")
	h.Add("Vary", "Accept-Encoding")
	w.gz = gzip.NewWriter(w.ResponseWriter)
}

func isCompressible(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "application/json") ||
		strings.HasPrefix(ct, "text/") ||
		strings.HasPrefix(ct, "image/svg+xml")
}
