package metrics

const (
	Namespace         = "congress"
	CampaignSubsystem = "campaign"
	APISubsystem      = "api"
)

const (
	CampaignOperation = "operation"
)
