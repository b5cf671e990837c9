package observer

import (
	"strings"

	observable "github.com/GianlucaGuarini/go-observable"
)

// ResourceObserver relays every state change of the campaign ledger to
// the subscribed event streams.
var ResourceObserver = observable.New()

type Resource string

const (
	Camp Resource = "campaign"
	Vt   Resource = "voter"
	Pr   Resource = "proposal"
	Win  Resource = "winner"
)

type Condition string

const (
	All        Condition = "*"
	Identifier Condition = "identifier"
	Phase      Condition = "phase"
)

// Conditions selects the events one subscription receives; it is the
// body element of `POST /subscribe`.
type Conditions struct {
	Resource  Resource  `json:"resource"`
	Condition Condition `json:"condition"`
	Value     string    `json:"value"`
}

func NewCondition(resource Resource, condition Condition, values ...string) Conditions {
	c := Conditions{
		Resource:  resource,
		Condition: condition,
	}
	if len(values) > 0 {
		c.Value = strings.Join(values, "-")
	}

	return c
}

func (c Conditions) Event() string {
	s := string(c.Resource) + "-" + string(c.Condition)
	if len(c.Value) > 0 {
		s += "=" + c.Value
	}

	return s
}

func (c Conditions) String() string {
	return c.Event()
}
