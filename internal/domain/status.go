package domain

import "fmt"

// ReportStatus is the administrative status of a submitted report. It is
// unrelated to the AI verification state of a draft.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusVerified ReportStatus = "verified"
	StatusRejected ReportStatus = "rejected"
	StatusCleaned  ReportStatus = "cleaned"
)

var allowedTransitions = map[ReportStatus][]ReportStatus{
	StatusPending:  {StatusVerified, StatusRejected},
	StatusVerified: {StatusCleaned},
}

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected, StatusCleaned:
		return true
	}
	return false
}

// Active reports still describe a problem on the ground.
func (s ReportStatus) Active() bool { return s == StatusPending || s == StatusVerified }

func (s ReportStatus) Terminal() bool { return len(allowedTransitions[s]) == 0 }

func (s ReportStatus) CanTransition(to ReportStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// CheckTransition returns an invalid_transition error for edges outside the
// administrative state machine.
func CheckTransition(from, to ReportStatus) error {
	if !to.Valid() {
		return Validation("status", fmt.Sprintf("unknown status %q", to))
	}
	if !from.CanTransition(to) {
		return &Error{Kind: KindInvalidTransition, Field: "status", Message: fmt.Sprintf("cannot move report from %s to %s", from, to)}
	}
	return nil
}
