// Package workflow holds the reservation and usage-verification rules as pure
// functions. Every operation takes a snapshot of the relevant records and
// returns a decision; persistence, locking and authorization stay with the
// callers.
package workflow

import (
	"errors"
	"fmt"
	"time"
)

// ReservationStatus values follow the stored vocabulary.
type ReservationStatus string

const (
	StatusPending  ReservationStatus = "pendiente"
	StatusApproved ReservationStatus = "aprobada"
	StatusRejected ReservationStatus = "rechazada"
)

// VerificationStatus values for classroom usage records. Alert is only ever
// entered by classification, never by a reviewer.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pendiente"
	VerificationVerified VerificationStatus = "verificada"
	VerificationRejected VerificationStatus = "rechazada"
	VerificationAlert    VerificationStatus = "alerta"
)

// Decision is a reviewer's verdict on a pending item.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionVerify  Decision = "verify"
)

const (
	ReasonNoUsageReported = "no usage reported"
	ReasonExceedsCapacity = "exceeds capacity"
)

var (
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrInvalidAttendance = errors.New("expected attendance must be at least 1")
	ErrOverCapacity      = errors.New("expected attendance exceeds classroom capacity")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownDecision   = errors.New("unknown decision")
)

// SlotSource tells which kind of record a conflicting slot came from.
type SlotSource string

const (
	SourceReservation SlotSource = "reservation"
	SourceSchedule    SlotSource = "schedule"
)

// SlotConflictError names the entry that already occupies the requested slot.
type SlotConflictError struct {
	ConflictingID string
	Source        SlotSource
	Start         time.Time
	End           time.Time
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot conflicts with %s %s (%s - %s)",
		e.Source, e.ConflictingID, e.Start.Format("15:04"), e.End.Format("15:04"))
}

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Symmetric:
// Overlaps(a, b) == Overlaps(b, a). Back-to-back slots do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	maxStart := i.Start
	if other.Start.After(maxStart) {
		maxStart = other.Start
	}

	minEnd := i.End
	if other.End.Before(minEnd) {
		minEnd = other.End
	}

	return maxStart.Before(minEnd)
}

// BookedSlot is an occupied interval for a classroom on the date under
// consideration, whether it comes from a reservation still in play or from a
// recurring weekly schedule entry.
type BookedSlot struct {
	ID     string
	Source SlotSource
	Interval
}

// Options tunes the engine. EnforceCapacity upgrades the advisory
// over-capacity check at submission into a hard rejection; the default keeps
// capacity advisory until verification time. ReportGrace is how long after the
// scheduled start a usage report may still arrive.
type Options struct {
	EnforceCapacity bool
	ReportGrace     time.Duration
}
