package dto

import (
	"aulaboard/internal/domains/classroom/model"
	"aulaboard/shared"
	gDto "aulaboard/shared/dto"
	gModel "aulaboard/shared/model"
	"aulaboard/shared/timezone"

	"github.com/google/uuid"
)

type CreateClassroomRequest struct {
	BuildingID string  `json:"building_id" validate:"required,uuid"`
	Number     string  `json:"number"      validate:"required,max=20"`
	Capacity   int     `json:"capacity"    validate:"required,min=1"`
	Equipment  *string `json:"equipment"   validate:"omitempty,max=500"`
}

func (c *CreateClassroomRequest) ToModel(user string) model.Classroom {
	return model.Classroom{
		ID:         uuid.NewString(),
		BuildingID: c.BuildingID,
		Number:     c.Number,
		Capacity:   c.Capacity,
		Equipment:  c.Equipment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateClassroomRequest struct {
	BuildingID string  `db:"edificio_id"  json:"building_id" validate:"omitempty,uuid"`
	Number     string  `db:"numero"       json:"number"      validate:"omitempty,max=20"`
	Capacity   *int    `db:"capacidad"    json:"capacity"    validate:"omitempty,min=1"`
	Equipment  *string `db:"equipamiento" json:"equipment"   validate:"omitempty,max=500"`
}

type ClassroomResponse struct {
	ID           string  `json:"id"`
	BuildingID   string  `json:"building_id"`
	BuildingName string  `json:"building_name"`
	Number       string  `json:"number"`
	Capacity     int     `json:"capacity"`
	Equipment    *string `json:"equipment,omitempty"`
	gDto.Metadata
}

func (r *ClassroomResponse) FromModel(model model.Classroom) {
	r.ID = model.ID
	r.BuildingID = model.BuildingID
	r.BuildingName = model.BuildingName
	r.Number = model.Number
	r.Capacity = model.Capacity
	r.Equipment = model.Equipment
	r.Metadata.FromModel(model.Metadata)
}

type GetClassroomsResponse struct {
	Classrooms []ClassroomResponse `json:"classrooms"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetClassroomsResponse) FromModels(models []model.Classroom, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Classrooms = make([]ClassroomResponse, len(models))
	for i, mod := range models {
		r.Classrooms[i].FromModel(mod)
	}
}
