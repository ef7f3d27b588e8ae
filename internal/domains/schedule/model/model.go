package model

import (
	"aulaboard/internal/workflow"
	"aulaboard/shared/model"
)

const (
	TableName  = "horarios"
	EntityName = "schedule"

	FieldID          = "id"
	FieldProfessorID = "profesor_id"
	FieldClassroomID = "aula_id"
	FieldDayOfWeek   = "dia_semana"
	FieldStartTime   = "hora_inicio"
	FieldEndTime     = "hora_fin"
	FieldSubject     = "materia"
)

type Schedule struct {
	ID            string `db:"id"`
	ProfessorID   string `db:"profesor_id"`
	ClassroomID   string `db:"aula_id"`
	DayOfWeek     int    `db:"dia_semana"`
	StartTime     string `db:"hora_inicio"`
	EndTime       string `db:"hora_fin"`
	Subject       string `db:"materia"`
	ClassroomName string `db:"aula_numero" table:"aulas" column:"numero"`
	ProfessorName string `db:"profesor_nombre" table:"users" column:"nombre"`
	model.Metadata
}

func (Schedule) GetJoinQuery() string {
	return "JOIN aulas ON aulas.id = horarios.aula_id JOIN users ON users.id = horarios.profesor_id"
}

// ToSlot converts the entry into the shape the conflict scan works on.
// Times are stored as zero-padded HH:MM strings.
func (s Schedule) ToSlot() workflow.ScheduleSlot {
	return workflow.ScheduleSlot{
		ID:          s.ID,
		ProfessorID: s.ProfessorID,
		ClassroomID: s.ClassroomID,
		Day:         s.DayOfWeek,
		StartMin:    toMinutes(s.StartTime),
		EndMin:      toMinutes(s.EndTime),
	}
}

func toMinutes(hhmm string) int {
	if len(hhmm) < 5 {
		return 0
	}

	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')

	return h*60 + m
}
