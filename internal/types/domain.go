package types

// Domain tags one of the three retrieval agents.
type Domain string

const (
	DomainWellness Domain = "wellness"
	DomainIssues   Domain = "issues"
	DomainAlerts   Domain = "alerts"
)

// Domains lists every agent domain in menu order.
func Domains() []Domain {
	return []Domain{DomainWellness, DomainIssues, DomainAlerts}
}

// ParseDomain accepts a domain tag plus the agent route aliases used by the
// original screens ("mental-health", "civic", "disaster").
func ParseDomain(s string) (Domain, bool) {
	switch s {
	case string(DomainWellness), "mental-health":
		return DomainWellness, true
	case string(DomainIssues), "civic":
		return DomainIssues, true
	case string(DomainAlerts), "disaster":
		return DomainAlerts, true
	}
	return "", false
}

// QueryRequest is one user action against an agent. It is never persisted.
type QueryRequest struct {
	Domain Domain `json:"domain"`
	Input  string `json:"input"`
}
