package network

import (
	"os"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/congress/lib/common"
)

var log logging.Logger = logging.New("module", "network")

// VerboseLogs enables the request and response logging of the http server.
var VerboseLogs bool = common.GetENVValue("CONGRESS_DEBUG_HTTP2", "0") == "1"

func SetLogging(level logging.Lvl, handler logging.Handler) {
	lh := logging.LvlFilterHandler(level, handler)
	log.SetHandler(lh)
}

func init() {
	SetLogging(logging.LvlCrit, logging.StreamHandler(os.Stdout, logging.TerminalFormat()))
}
