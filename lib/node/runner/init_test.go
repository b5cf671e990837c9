package runner

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/test"
)

func init() {
	common.SetLogging(log, logging.LvlDebug, test.LogHandler())
}
