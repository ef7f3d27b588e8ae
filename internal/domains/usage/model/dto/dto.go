package dto

import (
	"time"

	"aulaboard/internal/domains/usage/model"
	"aulaboard/internal/workflow"
	"aulaboard/shared"
	"aulaboard/shared/constant"
	gModel "aulaboard/shared/model"
	"aulaboard/shared/timezone"

	"github.com/google/uuid"
)

type ReportUsageRequest struct {
	ReservationID    string  `json:"reservation_id"    validate:"required,uuid"`
	ReportedStudents int     `json:"reported_students" validate:"required,min=1"`
	Notes            *string `json:"notes"             validate:"omitempty,max=500"`
}

func (r *ReportUsageRequest) ToModel(status workflow.VerificationStatus, reason, user string) model.Usage {
	notes := r.Notes
	if notes == nil && reason != constant.Empty {
		notes = &reason
	}

	return model.Usage{
		ID:               uuid.NewString(),
		ReservationID:    r.ReservationID,
		ReportedStudents: r.ReportedStudents,
		Status:           string(status),
		Notes:            notes,
		ReportedAt:       timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReviewUsageRequest struct {
	Decision string `json:"decision" validate:"required,oneof=verify reject"`
	Notes    string `json:"notes"    validate:"omitempty,max=500"`
}

type UsageResponse struct {
	ID               string     `json:"id"`
	ReservationID    string     `json:"reservation_id"`
	ProfessorID      string     `json:"professor_id"`
	ProfessorName    string     `json:"professor_name,omitempty"`
	ClassroomName    string     `json:"classroom_name,omitempty"`
	BuildingName     string     `json:"building_name,omitempty"`
	Capacity         int        `json:"capacity"`
	Subject          string     `json:"subject"`
	Date             string     `json:"date"`
	StartTime        string     `json:"start_time"`
	EndTime          string     `json:"end_time"`
	ReportedStudents int        `json:"reported_students"`
	Status           string     `json:"status"`
	Notes            *string    `json:"notes,omitempty"`
	ReportedAt       *time.Time `json:"reported_at,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
}

func (r *UsageResponse) FromModel(model model.Usage) {
	r.ID = model.ID
	r.ReservationID = model.ReservationID
	r.ProfessorID = model.ProfessorID
	r.ProfessorName = model.ProfessorName
	r.ClassroomName = model.ClassroomName
	r.BuildingName = model.BuildingName
	r.Capacity = model.ClassroomCapacity
	r.Subject = model.Subject
	r.Date = timezone.Format(model.Date, constant.DateFormat)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.ReportedStudents = model.ReportedStudents
	r.Status = model.Status
	r.Notes = model.Notes

	reportedAt := model.ReportedAt
	r.ReportedAt = &reportedAt
	r.ReviewedAt = model.ReviewedAt
}

type GetUsagesResponse struct {
	Usages    []UsageResponse `json:"usages"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetUsagesResponse) FromModels(models []model.Usage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Usages = make([]UsageResponse, len(models))
	for i, mod := range models {
		r.Usages[i].FromModel(mod)
	}
}
