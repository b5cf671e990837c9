package common

//
// Config holds the runtime settings of a congress node. It is built
// once by the command line layer and handed down to every component.
//
type Config struct {
	NetworkID []byte

	CommandVersion string

	ProposalsLimit int

	// Those fields are not campaign-related
	RateLimitRuleAPI  RateLimitRule
	RateLimitRuleNode RateLimitRule

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.CommandVersion = CommandVersion

	p.ProposalsLimit = DefaultProposalsLimit

	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)
	p.RateLimitRuleNode = NewRateLimitRule(RateLimitNode)

	p.HTTPCachePoolSize = HTTPCachePoolSize

	return p
}
