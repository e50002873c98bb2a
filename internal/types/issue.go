package types

import "slices"

// MaxCardLabels is how many labels an issue card shows.
const MaxCardLabels = 3

type IssueSuggestion struct {
	Repository string   `json:"repository" desc:"The full repository name, e.g., 'owner/repo'."`
	Title      string   `json:"title" desc:"The title of the GitHub issue."`
	URL        string   `json:"url" desc:"The full URL to the GitHub issue."`
	Number     int      `json:"number" desc:"The issue number." min:"0"`
	Labels     []string `json:"labels" desc:"A list of relevant labels."`
}

// CardLabels returns a copy of at most the first MaxCardLabels labels. The
// record itself keeps the full list.
func (i IssueSuggestion) CardLabels() []string {
	return slices.Clone(i.Labels[:min(len(i.Labels), MaxCardLabels)])
}
