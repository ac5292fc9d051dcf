// Package domain holds the jobs bounded context's core types.
package domain

// Status is a job's lifecycle state.
type Status string

const (
	StatusOpen      Status = "open"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var knownStatuses = map[Status]bool{
	StatusOpen:      true,
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCanceled:  true,
}

// IsKnownStatus reports whether s is one of the defined job statuses.
func IsKnownStatus(s Status) bool {
	return knownStatuses[s]
}
