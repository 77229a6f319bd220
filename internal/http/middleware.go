package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const ctxRequestID contextKey = "requestID"

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// RequestLogger tags each request with an id, echoed in X-Request-ID, and logs
// it once the handler returns. A caller's X-Request-ID is kept only when it is
// a UUID.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		if incoming, err := uuid.Parse(r.Header.Get("X-Request-ID")); err == nil {
			requestID = incoming.String()
		}
		w.Header().Set("X-Request-ID", requestID)
		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r.WithContext(context.WithValue(r.Context(), ctxRequestID, requestID)))
		if recorder.status == 0 {
			recorder.status = http.StatusOK
		}
		log.Printf("%s %s %d %dB %s id=%s", r.Method, r.URL.Path, recorder.status, recorder.bytes, time.Since(start), requestID)
	})
}

func RequestID(r *http.Request) string {
	if value, ok := r.Context().Value(ctxRequestID).(string); ok {
		return value
	}
	return ""
}
