// Package domain provides core business rules for the leads bounded context.
package domain

// Status is the lifecycle status of a lead.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
	StatusLost      Status = "lost"
	StatusSpam      Status = "spam"
)

// Situation classifies what the lead is asking for. Immutable after intake.
type Situation string

const (
	SituationNewSystem Situation = "new_system"
	SituationUpgrade   Situation = "upgrade"
	SituationRepair    Situation = "repair"
	SituationExploring Situation = "exploring"
)

// transitions is the full status transition table. A status missing from a
// row's reachable set cannot be reached from that row, full stop; the
// repository is never called for a pair rejected here.
var transitions = map[Status][]Status{
	StatusNew:       {StatusContacted, StatusQualified, StatusLost, StatusSpam},
	StatusContacted: {StatusQualified, StatusLost, StatusSpam},
	StatusQualified: {StatusConverted, StatusLost},
	StatusConverted: {},
	// lost is the only terminal-looking status that re-enters the pipeline.
	StatusLost: {StatusNew},
	StatusSpam: {},
}

var knownSituations = map[Situation]struct{}{
	SituationNewSystem: {},
	SituationUpgrade:   {},
	SituationRepair:    {},
	SituationExploring: {},
}

// IsKnownStatus reports whether the value is a member of the status enum.
func IsKnownStatus(status Status) bool {
	_, ok := transitions[status]
	return ok
}

// IsKnownSituation reports whether the value is a member of the situation enum.
func IsKnownSituation(situation Situation) bool {
	_, ok := knownSituations[situation]
	return ok
}

// ReachableFrom returns the statuses reachable from the given status.
// The returned slice is a fresh copy; callers may mutate it freely.
// An unknown status has no reachable statuses.
func ReachableFrom(status Status) []Status {
	return append([]Status(nil), transitions[status]...)
}

// CanTransition reports whether the policy allows moving from one status to
// another. Self-transitions are not edges in the table and are rejected.
func CanTransition(from, to Status) bool {
	for _, reachable := range transitions[from] {
		if reachable == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a lead in this status accepts no further status
// mutation. Used to suppress all status-changing operations up front.
func IsTerminal(status Status) bool {
	return status == StatusConverted || status == StatusSpam
}
