package metrics

func InitPrometheusMetrics() {
	Version = PromVersion()
	Campaign = PromCampaignMetrics()
	API = PromAPIMetrics()
}
