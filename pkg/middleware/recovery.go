package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"voyago/pkg/logger"
)

// Recovery converts panics into a 500 envelope instead of crashing the
// process. In non-production the panic message is included in the body.
func Recovery(log *logger.Logger, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"request_id", RequestID(r),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					if production {
						_, _ = w.Write([]byte(`{"success":false,"message":"Something went wrong!"}`))
						return
					}
					body := fmt.Sprintf(`{"success":false,"message":"Something went wrong!","error":%q}`, fmt.Sprint(err))
					_, _ = w.Write([]byte(body))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
