package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aulaboard/internal/workflow"
)

func slotAt(t *testing.T, id string, source workflow.SlotSource, start, end string) workflow.BookedSlot {
	t.Helper()

	return workflow.BookedSlot{
		ID:     id,
		Source: source,
		Interval: workflow.Interval{
			Start: clock(t, start),
			End:   clock(t, end),
		},
	}
}

func clock(t *testing.T, hhmm string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02 15:04", "2025-10-15 "+hhmm)
	require.NoError(t, err)

	return parsed
}

func TestSubmitReservation(t *testing.T) {
	now := clock(t, "07:00")
	room := workflow.Classroom{ID: "room-a101", Capacity: 40}

	existing := []workflow.BookedSlot{
		slotAt(t, "res-1", workflow.SourceReservation, "08:00", "10:00"),
	}

	baseReq := func() workflow.SubmitRequest {
		return workflow.SubmitRequest{
			ProfessorID:        "prof-1",
			ClassroomID:        room.ID,
			Date:               clock(t, "00:00"),
			Start:              clock(t, "10:00"),
			End:                clock(t, "12:00"),
			Subject:            "Calculo I",
			ExpectedAttendance: 35,
		}
	}

	tests := []struct {
		name     string
		mutate   func(*workflow.SubmitRequest)
		opts         workflow.Options
		existing     []workflow.BookedSlot
		wantErr      error
		wantConflict bool
		check        func(*testing.T, workflow.Reservation)
	}{
		{
			name:     "non-overlapping slot is accepted as pending",
			mutate:   func(*workflow.SubmitRequest) {},
			existing: existing,
			check: func(t *testing.T, r workflow.Reservation) {
				assert.Equal(t, workflow.StatusPending, r.Status)
				assert.Equal(t, now, r.CreatedAt)
				assert.False(t, r.PriorityReview)
				assert.Nil(t, r.ReviewedAt)
			},
		},
		{
			name: "overlapping slot conflicts",
			mutate: func(req *workflow.SubmitRequest) {
				req.Start = clock(t, "09:00")
				req.End = clock(t, "11:00")
			},
			existing:     existing,
			wantConflict: true,
		},
		{
			name: "schedule entries count as occupancy",
			mutate: func(req *workflow.SubmitRequest) {
				req.Start = clock(t, "14:00")
				req.End = clock(t, "16:00")
			},
			existing: []workflow.BookedSlot{
				slotAt(t, "sched-9", workflow.SourceSchedule, "15:00", "17:00"),
			},
			wantConflict: true,
		},
		{
			name: "back-to-back slots do not conflict",
			mutate: func(req *workflow.SubmitRequest) {
				req.Start = clock(t, "10:00")
				req.End = clock(t, "11:00")
			},
			existing: []workflow.BookedSlot{
				slotAt(t, "res-1", workflow.SourceReservation, "08:00", "10:00"),
				slotAt(t, "res-2", workflow.SourceReservation, "11:00", "13:00"),
			},
			check: func(t *testing.T, r workflow.Reservation) {
				assert.Equal(t, workflow.StatusPending, r.Status)
			},
		},
		{
			name: "inverted time range is rejected",
			mutate: func(req *workflow.SubmitRequest) {
				req.Start = clock(t, "12:00")
				req.End = clock(t, "10:00")
			},
			wantErr: workflow.ErrInvalidTimeRange,
		},
		{
			name: "zero-length time range is rejected",
			mutate: func(req *workflow.SubmitRequest) {
				req.End = req.Start
			},
			wantErr: workflow.ErrInvalidTimeRange,
		},
		{
			name: "zero attendance is rejected",
			mutate: func(req *workflow.SubmitRequest) {
				req.ExpectedAttendance = 0
			},
			wantErr: workflow.ErrInvalidAttendance,
		},
		{
			name: "over capacity is flagged for priority review by default",
			mutate: func(req *workflow.SubmitRequest) {
				req.ExpectedAttendance = 45
			},
			check: func(t *testing.T, r workflow.Reservation) {
				assert.Equal(t, workflow.StatusPending, r.Status)
				assert.True(t, r.PriorityReview)
			},
		},
		{
			name: "over capacity hard-fails when enforcement is on",
			mutate: func(req *workflow.SubmitRequest) {
				req.ExpectedAttendance = 45
			},
			opts:    workflow.Options{EnforceCapacity: true},
			wantErr: workflow.ErrOverCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseReq()
			tt.mutate(&req)

			res, err := workflow.SubmitReservation(req, room, tt.existing, now, tt.opts)

			if tt.wantConflict {
				var conflict *workflow.SlotConflictError
				require.ErrorAs(t, err, &conflict)
				assert.NotEmpty(t, conflict.ConflictingID)

				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestSubmitReservation_ValidationOrder(t *testing.T) {
	// A request that is wrong in every way fails on the time range first.
	req := workflow.SubmitRequest{
		ClassroomID:        "room-a101",
		Start:              clock(t, "12:00"),
		End:                clock(t, "10:00"),
		ExpectedAttendance: 0,
	}

	_, err := workflow.SubmitReservation(req, workflow.Classroom{Capacity: 1}, nil, clock(t, "07:00"), workflow.Options{})
	assert.ErrorIs(t, err, workflow.ErrInvalidTimeRange)
}

func TestReviewReservation(t *testing.T) {
	now := clock(t, "12:00")

	pending := workflow.Reservation{
		ID:          "res-42",
		ClassroomID: "room-a101",
		Start:       clock(t, "09:00"),
		End:         clock(t, "11:00"),
		Status:      workflow.StatusPending,
	}

	t.Run("approve pending with free slot", func(t *testing.T) {
		reviewed, err := workflow.ReviewReservation(pending, workflow.DecisionApprove, nil, now)
		require.NoError(t, err)
		assert.Equal(t, workflow.StatusApproved, reviewed.Status)
		require.NotNil(t, reviewed.ReviewedAt)
		assert.Equal(t, now, *reviewed.ReviewedAt)
	})

	t.Run("reject pending", func(t *testing.T) {
		reviewed, err := workflow.ReviewReservation(pending, workflow.DecisionReject, nil, now)
		require.NoError(t, err)
		assert.Equal(t, workflow.StatusRejected, reviewed.Status)
	})

	t.Run("approval re-checks conflicts against approved slots", func(t *testing.T) {
		approvedSince := []workflow.BookedSlot{
			slotAt(t, "res-7", workflow.SourceReservation, "08:00", "10:00"),
		}

		_, err := workflow.ReviewReservation(pending, workflow.DecisionApprove, approvedSince, now)

		var conflict *workflow.SlotConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "res-7", conflict.ConflictingID)
	})

	t.Run("terminal states refuse further transitions and stay unchanged", func(t *testing.T) {
		approved := pending
		approved.Status = workflow.StatusApproved

		reviewed, err := workflow.ReviewReservation(approved, workflow.DecisionReject, nil, now)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
		assert.Equal(t, workflow.StatusApproved, reviewed.Status)

		rejected := pending
		rejected.Status = workflow.StatusRejected

		reviewed, err = workflow.ReviewReservation(rejected, workflow.DecisionApprove, nil, now)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
		assert.Equal(t, workflow.StatusRejected, reviewed.Status)
	})

	t.Run("unknown decision", func(t *testing.T) {
		_, err := workflow.ReviewReservation(pending, workflow.Decision("maybe"), nil, now)
		assert.ErrorIs(t, err, workflow.ErrUnknownDecision)
	})
}

func TestIntervalOverlapSymmetry(t *testing.T) {
	pairs := []struct {
		name string
		a    workflow.Interval
		b    workflow.Interval
		want bool
	}{
		{
			name: "partial overlap",
			a:    workflow.Interval{Start: clock(t, "08:00"), End: clock(t, "10:00")},
			b:    workflow.Interval{Start: clock(t, "09:00"), End: clock(t, "11:00")},
			want: true,
		},
		{
			name: "containment",
			a:    workflow.Interval{Start: clock(t, "08:00"), End: clock(t, "12:00")},
			b:    workflow.Interval{Start: clock(t, "09:00"), End: clock(t, "10:00")},
			want: true,
		},
		{
			name: "touching endpoints",
			a:    workflow.Interval{Start: clock(t, "08:00"), End: clock(t, "10:00")},
			b:    workflow.Interval{Start: clock(t, "10:00"), End: clock(t, "12:00")},
			want: false,
		},
		{
			name: "disjoint",
			a:    workflow.Interval{Start: clock(t, "08:00"), End: clock(t, "09:00")},
			b:    workflow.Interval{Start: clock(t, "11:00"), End: clock(t, "12:00")},
			want: false,
		},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}
