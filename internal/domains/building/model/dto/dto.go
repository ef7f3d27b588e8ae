package dto

import (
	"aulaboard/internal/domains/building/model"
	"aulaboard/shared"
	gDto "aulaboard/shared/dto"
	gModel "aulaboard/shared/model"
	"aulaboard/shared/timezone"

	"github.com/google/uuid"
)

type CreateBuildingRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (c *CreateBuildingRequest) ToModel(user string) model.Building {
	return model.Building{
		ID:   uuid.NewString(),
		Name: c.Name,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBuildingRequest struct {
	Name string `db:"nombre" json:"name" validate:"omitempty,max=100"`
}

type BuildingResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (r *BuildingResponse) FromModel(model model.Building) {
	r.ID = model.ID
	r.Name = model.Name
	r.Metadata.FromModel(model.Metadata)
}

type GetBuildingsResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetBuildingsResponse) FromModels(models []model.Building, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Buildings = make([]BuildingResponse, len(models))
	for i, mod := range models {
		r.Buildings[i].FromModel(mod)
	}
}
