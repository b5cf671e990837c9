package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"boscoin.io/congress/lib/command"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/network/httputils"
	"boscoin.io/congress/lib/node/runner/api/resource"
)

type TeeReadCloser struct {
	io.ReadCloser
	teeReader io.Reader
}

func (tee TeeReadCloser) Read(p []byte) (n int, err error) {
	return tee.teeReader.Read(p)
}

func NewTeeReadCloser(origin io.ReadCloser, w io.Writer) io.ReadCloser {
	return &TeeReadCloser{
		ReadCloser: origin,
		teeReader:  io.TeeReader(origin, w),
	}
}

// PostCommandsHandler hands the posted command over to the node handler
// and rewrites its raw response into the API shapes: an error body
// becomes a problem document, an applied command is acknowledged with
// the command echo read back from the request.
func (api NetworkHandlerAPI) PostCommandsHandler(w http.ResponseWriter, r *http.Request, handler http.HandlerFunc) {
	var bufferResponse bytes.Buffer
	writer := bufio.NewWriter(&bufferResponse)
	interceptedResponseWriter := httputils.NewResponseWriterInterceptor(w, writer)

	var bufferRequest bytes.Buffer
	r.Body = NewTeeReadCloser(r.Body, &bufferRequest)

	handler(interceptedResponseWriter, r)
	writer.Flush()

	if interceptedResponseWriter.StatusCode() != http.StatusOK {
		var errResponse errors.Error
		if err := json.Unmarshal(bufferResponse.Bytes(), &errResponse); err != nil {
			// Just bypass
			w.WriteHeader(interceptedResponseWriter.StatusCode())
			w.Write(bufferResponse.Bytes())
			return
		}
		httputils.WriteJSONError(w, &errResponse)
		return
	}

	var cmd command.Command
	json.Unmarshal(bufferRequest.Bytes(), &cmd)
	if err := httputils.WriteJSON(w, 200, resource.NewCommandPost(cmd)); err != nil {
		http.Error(w, "Error writing response", http.StatusInternalServerError)
	}
}
