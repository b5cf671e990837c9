package common

import "time"

const (
	// CommandVersion is the wire version of campaign commands. Nodes
	// reject commands carrying a different version.
	CommandVersion string = "1"

	// CommandConfirmedTimeAllowDuration is the allowed gap between the
	// `Created` time of a command and the clock of the receiving node.
	CommandConfirmedTimeAllowDuration time.Duration = time.Hour

	// DefaultProposalsLimit bounds how many proposals one campaign
	// generation accepts.
	DefaultProposalsLimit int = 1000

	HTTPCachePoolSize int = 10000

	HTTPCacheMemoryAdapterName string = "mem"
	HTTPCacheRedisAdapterName  string = "redis"
)
