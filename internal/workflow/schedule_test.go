package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aulaboard/internal/workflow"
)

func TestHasScheduleConflict(t *testing.T) {
	existing := []workflow.ScheduleSlot{
		{ID: "h-1", ProfessorID: "prof-1", ClassroomID: "room-a101", Day: 1, StartMin: 8 * 60, EndMin: 10 * 60},
		{ID: "h-2", ProfessorID: "prof-2", ClassroomID: "room-b201", Day: 3, StartMin: 14 * 60, EndMin: 16 * 60},
	}

	tests := []struct {
		name         string
		candidate    workflow.ScheduleSlot
		wantConflict bool
		wantWith     string
	}{
		{
			name:      "free slot on another day",
			candidate: workflow.ScheduleSlot{ID: "h-3", ProfessorID: "prof-1", ClassroomID: "room-a101", Day: 2, StartMin: 8 * 60, EndMin: 10 * 60},
		},
		{
			name:         "same professor overlapping elsewhere",
			candidate:    workflow.ScheduleSlot{ID: "h-3", ProfessorID: "prof-1", ClassroomID: "room-c301", Day: 1, StartMin: 9 * 60, EndMin: 11 * 60},
			wantConflict: true,
			wantWith:     "h-1",
		},
		{
			name:         "same classroom different professor",
			candidate:    workflow.ScheduleSlot{ID: "h-3", ProfessorID: "prof-9", ClassroomID: "room-a101", Day: 1, StartMin: 9 * 60, EndMin: 11 * 60},
			wantConflict: true,
			wantWith:     "h-1",
		},
		{
			name:      "different professor and classroom may share the slot",
			candidate: workflow.ScheduleSlot{ID: "h-3", ProfessorID: "prof-9", ClassroomID: "room-d401", Day: 1, StartMin: 9 * 60, EndMin: 11 * 60},
		},
		{
			name:      "back-to-back same classroom",
			candidate: workflow.ScheduleSlot{ID: "h-3", ProfessorID: "prof-9", ClassroomID: "room-a101", Day: 1, StartMin: 10 * 60, EndMin: 12 * 60},
		},
		{
			name:      "same id is ignored when re-checking an existing entry",
			candidate: workflow.ScheduleSlot{ID: "h-1", ProfessorID: "prof-1", ClassroomID: "room-a101", Day: 1, StartMin: 8 * 60, EndMin: 10 * 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflict, found := workflow.HasScheduleConflict(tt.candidate, existing)

			assert.Equal(t, tt.wantConflict, found)

			if tt.wantConflict {
				require.NotNil(t, conflict)
				assert.Equal(t, tt.wantWith, conflict.ConflictingID)
				assert.Equal(t, workflow.SourceSchedule, conflict.Source)
			} else {
				assert.Nil(t, conflict)
			}
		})
	}
}
