package metrics

func InitPrometheusMetrics() {
	Governance = PromGovernanceMetrics()
	API = PromAPIMetrics()
}
