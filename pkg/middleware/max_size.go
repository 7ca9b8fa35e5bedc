package middleware

import "net/http"

// MaxRequestSize caps the request body. The limit sits above the image
// upload cap so multipart field overhead never trips it; oversized bodies
// fail inside the handlers' body reads with a 400.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
