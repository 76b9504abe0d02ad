package metrics

const (
	Namespace           = "gov"
	GovernanceSubsystem = "governance"
	APISubsystem        = "api"
)
