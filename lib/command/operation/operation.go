package operation

import (
	"encoding/json"
	"reflect"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/errors"
)

type OperationType string

const (
	TypeRegisterVoter  OperationType = "register-voter"
	TypeStartProposals OperationType = "start-proposals"
	TypeSubmitProposal OperationType = "submit-proposal"
	TypeEndProposals   OperationType = "end-proposals"
	TypeStartVoting    OperationType = "start-voting"
	TypeCastVote       OperationType = "cast-vote"
	TypeEndVoting      OperationType = "end-voting"
	TypeTallyVotes     OperationType = "tally-votes"
	TypeResetCampaign  OperationType = "reset-campaign"
)

var OperationTypes []string = []string{
	string(TypeRegisterVoter),
	string(TypeStartProposals),
	string(TypeSubmitProposal),
	string(TypeEndProposals),
	string(TypeStartVoting),
	string(TypeCastVote),
	string(TypeEndVoting),
	string(TypeTallyVotes),
	string(TypeResetCampaign),
}

func IsValidOperationType(oType string) bool {
	_, found := common.InStringArray(OperationTypes, oType)
	return found
}

// IsAdminOperation reports whether the operation may only be issued by the
// campaign administrator.
func IsAdminOperation(t OperationType) bool {
	switch t {
	case TypeRegisterVoter, TypeStartProposals, TypeEndProposals, TypeStartVoting, TypeEndVoting, TypeTallyVotes, TypeResetCampaign:
		return true
	default:
		return false
	}
}

type Operation struct {
	H Header
	B Body
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	//
	// Check that this operation body is self consistent
	//
	// This routine is used by the command checker before the operation
	// reaches the ledger.
	//
	// Params:
	//   conf = Node configuration
	//
	// Returns:
	//   An `error` if the body is invalid, `nil` otherwise
	//
	IsWellFormed(common.Config) error
}

type Targetable interface {
	TargetAddress() string
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	if t, err = TypeFromBody(opb); err != nil {
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

// TypeFromBody maps a concrete operation body to its wire type.
func TypeFromBody(opb Body) (t OperationType, err error) {
	switch opb.(type) {
	case RegisterVoter:
		t = TypeRegisterVoter
	case StartProposals:
		t = TypeStartProposals
	case SubmitProposal:
		t = TypeSubmitProposal
	case EndProposals:
		t = TypeEndProposals
	case StartVoting:
		t = TypeStartVoting
	case CastVote:
		t = TypeCastVote
	case EndVoting:
		t = TypeEndVoting
	case TallyVotes:
		t = TypeTallyVotes
	case ResetCampaign:
		t = TypeResetCampaign
	default:
		err = errors.UnknownOperationType
	}

	return
}

type envelop struct {
	H Header
	B interface{}
}

func (o Operation) IsWellFormed(conf common.Config) (err error) {
	return o.B.IsWellFormed(conf)
}

func (o Operation) String() string {
	encoded, _ := json.MarshalIndent(o, "", "  ")

	return string(encoded)
}

func (o Operation) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body

	return
}

func UnmarshalBodyJSON(t OperationType, b []byte) (body Body, err error) {
	bi, err := newBodyFromType(t)
	if err != nil {
		return
	}

	if err = json.Unmarshal(b, bi); err != nil {
		return
	}

	// UnmarshalJSON takes a pointer receiver, so the unmarshalled body is a
	// pointer to the struct.
	// No other way to go from interface-to-pointer to interface-to-value
	// because values within interfaces are not addressable.
	body = reflect.ValueOf(bi).Elem().Interface().(Body)

	return
}

func newBodyFromType(t OperationType) (bi interface{}, err error) {
	switch t {
	case TypeRegisterVoter:
		bi = &RegisterVoter{}
	case TypeStartProposals:
		bi = &StartProposals{}
	case TypeSubmitProposal:
		bi = &SubmitProposal{}
	case TypeEndProposals:
		bi = &EndProposals{}
	case TypeStartVoting:
		bi = &StartVoting{}
	case TypeCastVote:
		bi = &CastVote{}
	case TypeEndVoting:
		bi = &EndVoting{}
	case TypeTallyVotes:
		bi = &TallyVotes{}
	case TypeResetCampaign:
		bi = &ResetCampaign{}
	default:
		err = errors.InvalidOperation
	}

	return
}
