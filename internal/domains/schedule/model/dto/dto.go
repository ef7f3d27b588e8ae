package dto

import (
	"aulaboard/internal/domains/schedule/model"
	"aulaboard/shared"
	gDto "aulaboard/shared/dto"
	gModel "aulaboard/shared/model"
	"aulaboard/shared/timezone"

	"github.com/google/uuid"
)

type CreateScheduleRequest struct {
	ClassroomID string `json:"classroom_id" validate:"required,uuid"`
	DayOfWeek   int    `json:"day_of_week"  validate:"required,min=1,max=6"`
	StartTime   string `json:"start_time"   validate:"required,timeslot"`
	EndTime     string `json:"end_time"     validate:"required,timeslot"`
	Subject     string `json:"subject"      validate:"required,max=100"`
}

func (c *CreateScheduleRequest) ToModel(professorID string) model.Schedule {
	return model.Schedule{
		ID:          uuid.NewString(),
		ProfessorID: professorID,
		ClassroomID: c.ClassroomID,
		DayOfWeek:   c.DayOfWeek,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Subject:     c.Subject,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  professorID,
			ModifiedBy: professorID,
		},
	}
}

type ScheduleResponse struct {
	ID            string `json:"id"`
	ProfessorID   string `json:"professor_id"`
	ProfessorName string `json:"professor_name"`
	ClassroomID   string `json:"classroom_id"`
	ClassroomName string `json:"classroom_name"`
	DayOfWeek     int    `json:"day_of_week"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Subject       string `json:"subject"`
	gDto.Metadata
}

func (r *ScheduleResponse) FromModel(model model.Schedule) {
	r.ID = model.ID
	r.ProfessorID = model.ProfessorID
	r.ProfessorName = model.ProfessorName
	r.ClassroomID = model.ClassroomID
	r.ClassroomName = model.ClassroomName
	r.DayOfWeek = model.DayOfWeek
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Subject = model.Subject
	r.Metadata.FromModel(model.Metadata)
}

type GetSchedulesResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetSchedulesResponse) FromModels(models []model.Schedule, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Schedules = make([]ScheduleResponse, len(models))
	for i, mod := range models {
		r.Schedules[i].FromModel(mod)
	}
}
