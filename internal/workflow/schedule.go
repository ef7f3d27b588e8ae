package workflow

// ScheduleSlot is a recurring weekly commitment. Times are minutes since
// midnight so slots compare without a date attached; Day runs 1 (Monday)
// through 6 (Saturday).
type ScheduleSlot struct {
	ID          string
	ProfessorID string
	ClassroomID string
	Day         int
	StartMin    int
	EndMin      int
}

func (s ScheduleSlot) overlaps(other ScheduleSlot) bool {
	if s.Day != other.Day {
		return false
	}

	maxStart := max(s.StartMin, other.StartMin)
	minEnd := min(s.EndMin, other.EndMin)

	return maxStart < minEnd
}

// HasScheduleConflict checks a candidate weekly entry against existing ones.
// No two entries for the same professor, and no two for the same classroom,
// may overlap in day and time. Returns the first conflicting entry found.
func HasScheduleConflict(candidate ScheduleSlot, existing []ScheduleSlot) (*SlotConflictError, bool) {
	for _, slot := range existing {
		if slot.ID == candidate.ID {
			continue
		}

		sameParty := slot.ProfessorID == candidate.ProfessorID || slot.ClassroomID == candidate.ClassroomID
		if sameParty && candidate.overlaps(slot) {
			return &SlotConflictError{
				ConflictingID: slot.ID,
				Source:        SourceSchedule,
			}, true
		}
	}

	return nil, false
}
