package workflow

import "time"

// Classroom is the capacity snapshot a submission is judged against.
type Classroom struct {
	ID       string
	Capacity int
}

// SubmitRequest is a candidate reservation before any status is assigned.
type SubmitRequest struct {
	ProfessorID        string
	ClassroomID        string
	Date               time.Time
	Start              time.Time
	End                time.Time
	Subject            string
	ExpectedAttendance int
	Notes              string
}

// Reservation is the engine's view of a classroom reservation. The caller owns
// identifiers and persistence.
type Reservation struct {
	ID                 string
	ProfessorID        string
	ClassroomID        string
	Date               time.Time
	Start              time.Time
	End                time.Time
	Subject            string
	ExpectedAttendance int
	Notes              string
	Status             ReservationStatus
	PriorityReview     bool
	CreatedAt          time.Time
	ReviewedAt         *time.Time
}

// SubmitReservation validates a candidate against the classroom and the
// occupied slots for that room and date, in order: time range, attendance,
// capacity, conflict scan. Existing must contain every reservation still in
// play (pending or approved) plus the weekly schedule entries that land on the
// requested date. On success the reservation comes back in pending status,
// stamped with now; over-capacity requests are accepted but flagged for
// priority review unless opts.EnforceCapacity is set.
func SubmitReservation(req SubmitRequest, room Classroom, existing []BookedSlot, now time.Time, opts Options) (Reservation, error) {
	if !req.Start.Before(req.End) {
		return Reservation{}, ErrInvalidTimeRange
	}

	if req.ExpectedAttendance < 1 {
		return Reservation{}, ErrInvalidAttendance
	}

	overCapacity := req.ExpectedAttendance > room.Capacity
	if overCapacity && opts.EnforceCapacity {
		return Reservation{}, ErrOverCapacity
	}

	candidate := Interval{Start: req.Start, End: req.End}
	if conflict := scanConflicts(candidate, existing); conflict != nil {
		return Reservation{}, conflict
	}

	return Reservation{
		ProfessorID:        req.ProfessorID,
		ClassroomID:        req.ClassroomID,
		Date:               req.Date,
		Start:              req.Start,
		End:                req.End,
		Subject:            req.Subject,
		ExpectedAttendance: req.ExpectedAttendance,
		Notes:              req.Notes,
		Status:             StatusPending,
		PriorityReview:     overCapacity,
		CreatedAt:          now,
	}, nil
}

// ReviewReservation moves a pending reservation to approved or rejected.
// Approval re-runs the conflict scan against the slots approved since the
// candidate was submitted; approving into an occupied slot fails rather than
// leaving two approved bookings overlapping. Approved and rejected are
// terminal.
func ReviewReservation(r Reservation, decision Decision, approved []BookedSlot, now time.Time) (Reservation, error) {
	if r.Status != StatusPending {
		return r, ErrInvalidTransition
	}

	switch decision {
	case DecisionApprove:
		candidate := Interval{Start: r.Start, End: r.End}
		if conflict := scanConflicts(candidate, approved); conflict != nil {
			return r, conflict
		}

		r.Status = StatusApproved
	case DecisionReject:
		r.Status = StatusRejected
	default:
		return r, ErrUnknownDecision
	}

	r.ReviewedAt = &now

	return r, nil
}

func scanConflicts(candidate Interval, existing []BookedSlot) *SlotConflictError {
	for _, slot := range existing {
		if candidate.Overlaps(slot.Interval) {
			return &SlotConflictError{
				ConflictingID: slot.ID,
				Source:        slot.Source,
				Start:         slot.Start,
				End:           slot.End,
			}
		}
	}

	return nil
}
