package middleware

import "net/http"

// ResponseRecorder wraps ResponseWriter, captures the status code and runs
// a hook just before the first byte is written (cookie persistence).
type ResponseRecorder struct {
	http.ResponseWriter
	status      int
	wrote       bool
	beforeWrite func(http.ResponseWriter)
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, status: http.StatusOK}
}

// SetBeforeWrite registers the pre-write hook.
func (rw *ResponseRecorder) SetBeforeWrite(fn func(http.ResponseWriter)) {
	rw.beforeWrite = fn
}

func (rw *ResponseRecorder) WriteHeader(statusCode int) {
	rw.runBeforeWrite()
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseRecorder) Write(b []byte) (int, error) {
	rw.runBeforeWrite()
	return rw.ResponseWriter.Write(b)
}

func (rw *ResponseRecorder) runBeforeWrite() {
	if rw.wrote {
		return
	}
	rw.wrote = true
	if rw.beforeWrite != nil {
		rw.beforeWrite(rw.ResponseWriter)
	}
}

// Flush forwards to the underlying writer so streaming responses work
// through the wrapper.
func (rw *ResponseRecorder) Flush() {
	rw.runBeforeWrite()
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Status returns the captured status code.
func (rw *ResponseRecorder) Status() int { return rw.status }

// Wrote reports whether any response byte or header was written.
func (rw *ResponseRecorder) Wrote() bool { return rw.wrote }
