package domain

import "strings"

// SplitName derives a first/last name pair from a free-text lead name.
// The substring before the first space becomes the first name and the
// remainder the last name; a name with no space yields an empty last name.
func SplitName(name string) (first, last string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ""
	}

	idx := strings.Index(trimmed, " ")
	if idx < 0 {
		return trimmed, ""
	}
	return trimmed[:idx], strings.TrimSpace(trimmed[idx+1:])
}

// jobDescriptions maps a lead's situation to the suggested description for
// the job created during conversion.
var jobDescriptions = map[Situation]string{
	SituationNewSystem: "New irrigation system installation",
	SituationUpgrade:   "Irrigation system upgrade",
	SituationRepair:    "Irrigation system repair",
	SituationExploring: "Irrigation consultation",
}

// DefaultJobDescription returns the situation-keyed job description
// suggestion, or an empty string for an unknown situation.
func DefaultJobDescription(situation Situation) string {
	return jobDescriptions[situation]
}
