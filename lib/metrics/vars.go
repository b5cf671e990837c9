package metrics

var (
	Campaign = NopCampaignMetrics()
	API      = NopAPIMetrics()
)
