package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/moosemarche/moosebot/backend/pkg/log"
)

// AccessLog writes one structured line per request, at a level chosen by status.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := log.Fields{
			"request_id":    chimw.GetReqID(r.Context()),
			"method":        r.Method,
			"path":          r.URL.Path,
			"status":        status,
			"latency_ms":    time.Since(start).Milliseconds(),
			"ip":            r.RemoteAddr,
			"user_agent":    r.UserAgent(),
			"response_size": ww.BytesWritten(),
		}

		switch {
		case status >= 500:
			log.Error(fields, "server error")
		case status >= 400:
			log.Warn(fields, "client error")
		default:
			log.Info(fields, "request served")
		}
	})
}
