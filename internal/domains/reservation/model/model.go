package model

import (
	"time"

	"aulaboard/internal/workflow"
	"aulaboard/shared/model"
	"aulaboard/shared/timezone"
)

const (
	TableName  = "reservas"
	EntityName = "reservation"

	FieldID               = "id"
	FieldProfessorID      = "profesor_id"
	FieldClassroomID      = "aula_id"
	FieldDate             = "fecha"
	FieldStartTime        = "hora_inicio"
	FieldEndTime          = "hora_fin"
	FieldSubject          = "materia"
	FieldExpectedStudents = "estudiantes_esperados"
	FieldNotes            = "notas"
	FieldStatus           = "estado"
	FieldPriorityReview   = "revision_prioritaria"
	FieldReviewedAt       = "revisado_en"
)

type Reservation struct {
	ID               string     `db:"id"`
	ProfessorID      string     `db:"profesor_id"`
	ClassroomID      string     `db:"aula_id"`
	Date             time.Time  `db:"fecha"`
	StartTime        string     `db:"hora_inicio"`
	EndTime          string     `db:"hora_fin"`
	Subject          string     `db:"materia"`
	ExpectedStudents int        `db:"estudiantes_esperados"`
	Notes            *string    `db:"notas"`
	Status           string     `db:"estado"`
	PriorityReview   bool       `db:"revision_prioritaria"`
	ReviewedAt       *time.Time `db:"revisado_en"`

	ClassroomName     string `db:"aula_numero" table:"aulas" column:"numero"`
	ClassroomCapacity int    `db:"aula_capacidad" table:"aulas" column:"capacidad"`
	BuildingName      string `db:"edificio_nombre" table:"edificios" column:"nombre"`
	ProfessorName     string `db:"profesor_nombre" table:"users" column:"nombre"`
	ProfessorEmail    string `db:"profesor_email" table:"users" column:"email"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "JOIN aulas ON aulas.id = reservas.aula_id " +
		"JOIN edificios ON edificios.id = aulas.edificio_id " +
		"JOIN users ON users.id = reservas.profesor_id"
}

// SlotRange combines the stored date with the HH:MM bounds into concrete
// instants in the configured timezone.
func (r Reservation) SlotRange() (time.Time, time.Time) {
	return timezone.CombineDateTime(r.Date, r.StartTime), timezone.CombineDateTime(r.Date, r.EndTime)
}

// ToBookedSlot exposes the row to the conflict scan.
func (r Reservation) ToBookedSlot() workflow.BookedSlot {
	start, end := r.SlotRange()

	return workflow.BookedSlot{
		ID:     r.ID,
		Source: workflow.SourceReservation,
		Interval: workflow.Interval{
			Start: start,
			End:   end,
		},
	}
}
