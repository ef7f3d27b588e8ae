package workflow

import "time"

// UsageReport is what gets classified after a scheduled slot: whether a report
// was filed at all, and the attendance it claims against the capacity snapshot
// taken when the slot was booked.
type UsageReport struct {
	Filed              bool
	ReportedAttendance int
	Capacity           int
	ScheduledStart     time.Time
}

// UsageRecord is the verification subject a reviewer acts on.
type UsageRecord struct {
	ID         string
	Status     VerificationStatus
	Notes      string
	ReviewedAt *time.Time
}

// ClassifyUsage is a deterministic function of the report triple. A slot with
// no report past the grace period alerts, as does reported attendance above
// capacity; everything else waits for a human in pending. The returned reason
// is empty unless the record alerts.
func ClassifyUsage(report UsageReport, now time.Time, opts Options) (VerificationStatus, string) {
	if !report.Filed {
		if now.Sub(report.ScheduledStart) > opts.ReportGrace {
			return VerificationAlert, ReasonNoUsageReported
		}

		return VerificationPending, ""
	}

	if report.ReportedAttendance > report.Capacity {
		return VerificationAlert, ReasonExceedsCapacity
	}

	return VerificationPending, ""
}

// ReviewUsage moves a pending or alerted record to verified or rejected, both
// terminal. Reviewer notes overwrite whatever was stored before; there is no
// merge.
func ReviewUsage(rec UsageRecord, decision Decision, notes string, now time.Time) (UsageRecord, error) {
	if rec.Status != VerificationPending && rec.Status != VerificationAlert {
		return rec, ErrInvalidTransition
	}

	switch decision {
	case DecisionVerify:
		rec.Status = VerificationVerified
	case DecisionReject:
		rec.Status = VerificationRejected
	default:
		return rec, ErrUnknownDecision
	}

	if notes != "" {
		rec.Notes = notes
	}

	rec.ReviewedAt = &now

	return rec, nil
}
