package model

import "aulaboard/shared/model"

const (
	TableName  = "aulas"
	EntityName = "classroom"

	FieldID         = "id"
	FieldBuildingID = "edificio_id"
	FieldNumber     = "numero"
	FieldCapacity   = "capacidad"
	FieldEquipment  = "equipamiento"
)

type Classroom struct {
	ID           string  `db:"id"`
	BuildingID   string  `db:"edificio_id"`
	Number       string  `db:"numero"`
	Capacity     int     `db:"capacidad"`
	Equipment    *string `db:"equipamiento"`
	BuildingName string  `db:"edificio_nombre" table:"edificios" column:"nombre"`
	model.Metadata
}

func (Classroom) GetJoinQuery() string {
	return "JOIN edificios ON edificios.id = aulas.edificio_id"
}
