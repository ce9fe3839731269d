package api

import (
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"mediscreen.com/prescreen/logger"
	"net/http"
	"time"
)

var defaultLogger = logger.NewLogger("API")

type endpointLoggerFields struct {
	Method    string `json:"method"`
	Url       string `json:"url"`
	RequestID string `json:"request_id,omitempty"`
}

const RequestInfoFieldsKey = "request_info"

func makeRequestLogger(request *http.Request) zerolog.Logger {
	fields := endpointLoggerFields{
		Method:    request.Method,
		Url:       request.URL.String(),
		RequestID: middleware.GetReqID(request.Context()),
	}
	return defaultLogger.
		With().Interface(RequestInfoFieldsKey, fields).Logger()
}

// requestLogger writes one line per request once the handler is done.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		l := makeRequestLogger(r)
		l.Info().
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("Handled request")
	})
}
