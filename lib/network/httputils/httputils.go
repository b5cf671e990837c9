package httputils

import (
	"net/http"

	"boscoin.io/congress/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true

	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		100: 409,
		101: 404,
		102: 500,
		103: 400,
		104: 400,
		105: 400,
		106: 400,
		107: 400,
		108: 400,
		109: 400,
		110: 400,
		111: 400,
		112: 400,
		113: 415,
		114: 400,
		115: 400,
		116: 500,
		117: 500,
		118: 501,

		130: 403,
		131: 409,
		132: 409,
		133: 404,

		140: 404,
		141: 409,
		142: 404,
		143: 404,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
	}
	return 500
}
