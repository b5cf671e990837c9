package httputils

import (
	"io"
	"net/http"
)

// ResponseWriterInterceptor keeps the body and the status code of a
// response out of the wire so the caller can rewrite them after the
// wrapped handler returned.
type ResponseWriterInterceptor struct {
	http.ResponseWriter
	writer     io.Writer
	statusCode int
}

func NewResponseWriterInterceptor(w http.ResponseWriter, writer io.Writer) *ResponseWriterInterceptor {
	return &ResponseWriterInterceptor{
		ResponseWriter: w,
		writer:         writer,
		statusCode:     http.StatusOK,
	}
}

func (w *ResponseWriterInterceptor) Write(b []byte) (int, error) {
	return w.writer.Write(b)
}

func (w *ResponseWriterInterceptor) WriteHeader(statusCode int) {
	w.statusCode = statusCode
}

func (w *ResponseWriterInterceptor) StatusCode() int {
	return w.statusCode
}
