package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"boscoin.io/congress/lib/errors"
)

// Problem is the RFC 7807 problem document the api returns for every error.
type Problem struct {
	// "type" (string) - A URI reference [RFC3986] that identifies the
	// problem type.  This specification encourages that, when
	// dereferenced, it provide human-readable documentation for the
	// problem type (e.g., using HTML [W3C.REC-html5-20141028]).  When
	// this member is not present, its value is assumed to be
	// "about:blank".
	Type string `json:"type"`

	//"title" (string) - A short, human-readable summary of the problem
	//type.  It SHOULD NOT change from occurrence to occurrence of the
	//problem, except for purposes of localization (e.g., using
	//proactive content negotiation; see [RFC7231], Section 3.4).
	Title string `json:"title"`

	//"status" (number) - The HTTP status code ([RFC7231], Section 6)
	//generated by the origin server for this occurrence of the problem.
	Status int `json:"status,omitempty"`

	//"detail" (string) - A human-readable explanation specific to this
	//occurrence of the problem.
	Detail string `json:"detail,omitempty"`

	//"instance" (string) - A URI reference that identifies the specific
	//occurrence of the problem.  It may or may not yield further
	//information if dereferenced.
	Instance string `json:"instance,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem makes a Problem from err. The coded errors of this
// project get a type URI carrying their code so clients can match on it.
func NewErrorProblem(err error, status int) Problem {
	p := Problem{Type: "about:blank", Title: err.Error(), Status: status}
	if e, ok := err.(*errors.Error); ok {
		p.Type = fmt.Sprintf("https://boscoin.io/congress/errors/%d", e.Code)
		p.Title = e.Message
	}
	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}

// WriteJSONError writes err to the response as a problem document, with the
// status taken from the error code mapping.
func WriteJSONError(w http.ResponseWriter, err error) {
	code := StatusCode(err)

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(code)

	if bs, e := json.Marshal(NewErrorProblem(err, code)); e == nil {
		w.Write(bs)
	}
}
