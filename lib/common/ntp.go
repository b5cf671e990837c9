package common

import (
	"time"

	"github.com/beevik/ntp"
	pkgerrors "github.com/pkg/errors"
)

const (
	DefaultNTPServer string = "pool.ntp.org"

	// TimeSyncAllowDuration is the allowed drift between the local clock
	// and the NTP server. Command time windows depend on it staying small.
	TimeSyncAllowDuration time.Duration = time.Minute
)

// CheckTimeSync queries the given NTP server and fails when the local
// clock drifts beyond TimeSyncAllowDuration.
func CheckTimeSync(server string) error {
	if len(server) < 1 {
		server = DefaultNTPServer
	}

	response, err := ntp.Query(server)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to query ntp server, %s", server)
	}

	offset := response.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > TimeSyncAllowDuration {
		return pkgerrors.Errorf("local clock drifts %s from ntp server, %s", response.ClockOffset, server)
	}

	return nil
}
