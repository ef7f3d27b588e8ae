package model

import "aulaboard/shared/model"

const (
	TableName  = "edificios"
	EntityName = "building"

	FieldID   = "id"
	FieldName = "nombre"
)

type Building struct {
	ID   string `db:"id"`
	Name string `db:"nombre"`
	model.Metadata
}
