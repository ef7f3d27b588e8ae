package model

import (
	"time"

	"aulaboard/shared/model"
)

const (
	TableName  = "usos"
	EntityName = "usage"

	FieldID               = "id"
	FieldReservationID    = "reserva_id"
	FieldReportedStudents = "estudiantes_reportados"
	FieldStatus           = "estado"
	FieldNotes            = "notas"
	FieldReportedAt       = "reportado_en"
	FieldReviewedAt       = "revisado_en"
)

type Usage struct {
	ID               string     `db:"id"`
	ReservationID    string     `db:"reserva_id"`
	ReportedStudents int        `db:"estudiantes_reportados"`
	Status           string     `db:"estado"`
	Notes            *string    `db:"notas"`
	ReportedAt       time.Time  `db:"reportado_en"`
	ReviewedAt       *time.Time `db:"revisado_en"`

	Date              time.Time `db:"fecha" table:"reservas" column:"fecha"`
	StartTime         string    `db:"hora_inicio" table:"reservas" column:"hora_inicio"`
	EndTime           string    `db:"hora_fin" table:"reservas" column:"hora_fin"`
	Subject           string    `db:"materia" table:"reservas" column:"materia"`
	ProfessorID       string    `db:"profesor_id" table:"reservas" column:"profesor_id"`
	ClassroomName     string    `db:"aula_numero" table:"aulas" column:"numero"`
	ClassroomCapacity int       `db:"aula_capacidad" table:"aulas" column:"capacidad"`
	BuildingName      string    `db:"edificio_nombre" table:"edificios" column:"nombre"`
	ProfessorName     string    `db:"profesor_nombre" table:"users" column:"nombre"`
	model.Metadata
}

func (Usage) GetJoinQuery() string {
	return "JOIN reservas ON reservas.id = usos.reserva_id " +
		"JOIN aulas ON aulas.id = reservas.aula_id " +
		"JOIN edificios ON edificios.id = aulas.edificio_id " +
		"JOIN users ON users.id = reservas.profesor_id"
}
