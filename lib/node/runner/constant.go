package runner

import (
	"time"
)

var (
	// HTTPCacheTimeout is the expire of the cached responses on the
	// read-mostly endpoints, like the node document and the winner.
	HTTPCacheTimeout time.Duration = time.Second * 2

	// DebugPProf mounts the `net/http/pprof` handlers under the debug
	// router.
	DebugPProf bool = false
)
