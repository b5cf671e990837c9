package command

import (
	"time"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/errors"
)

type Checker struct {
	common.DefaultChecker

	Conf    common.Config
	Command Command
}

func CheckType(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if checker.Command.T != string(common.CommandMessage) {
		err = errors.InvalidMessage
		return
	}

	return
}

func CheckVersion(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if checker.Command.H.Version != checker.Conf.CommandVersion {
		err = errors.MessageVersionNotMatched
		return
	}

	return
}

// CheckCreatedTime rejects commands whose client clock drifts too far from
// the node clock; stale captures cannot be replayed after the window closes.
func CheckCreatedTime(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	var created time.Time
	if created, err = common.ParseISO8601(checker.Command.H.Created); err != nil {
		return
	}

	now := time.Now()
	timeStart := now.Add(time.Duration(-1) * common.CommandConfirmedTimeAllowDuration)
	timeEnd := now.Add(common.CommandConfirmedTimeAllowDuration)
	if created.Before(timeStart) || created.After(timeEnd) {
		err = errors.MessageHasIncorrectTime
		return
	}

	return
}

func CheckSource(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if _, err = keypair.Parse(checker.Command.B.Source); err != nil {
		err = errors.BadPublicAddress
		return
	}

	return
}

func CheckOperation(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	op := checker.Command.B.Operation
	if !operation.IsValidOperationType(string(op.H.Type)) {
		err = errors.InvalidOperation
		return
	}

	var derived operation.OperationType
	if derived, err = operation.TypeFromBody(op.B); err != nil {
		return
	}
	if derived != op.H.Type {
		err = errors.TypeOperationBodyNotMatched
		return
	}

	err = op.IsWellFormed(checker.Conf)

	return
}

func CheckHash(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if checker.Command.H.Hash != checker.Command.B.MakeHashString() {
		err = errors.HashDoesNotMatch
		return
	}

	return
}

func CheckVerifySignature(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	var kp keypair.KP
	if kp, err = keypair.Parse(checker.Command.B.Source); err != nil {
		err = errors.BadPublicAddress
		return
	}
	err = kp.Verify(
		append(checker.Conf.NetworkID, []byte(checker.Command.H.Hash)...),
		base58.Decode(checker.Command.H.Signature),
	)
	if err != nil {
		err = errors.SignatureVerificationFailed
		return
	}

	return
}
