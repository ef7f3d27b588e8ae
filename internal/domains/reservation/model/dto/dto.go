package dto

import (
	"time"

	"aulaboard/internal/domains/reservation/model"
	"aulaboard/internal/workflow"
	"aulaboard/shared"
	"aulaboard/shared/constant"
	gDto "aulaboard/shared/dto"
	gModel "aulaboard/shared/model"
	"aulaboard/shared/timezone"

	"github.com/google/uuid"
)

type SubmitReservationRequest struct {
	ClassroomID      string  `json:"classroom_id"      validate:"required,uuid"`
	Date             string  `json:"date"              validate:"required,dateonly"`
	StartTime        string  `json:"start_time"        validate:"required,timeslot"`
	EndTime          string  `json:"end_time"          validate:"required,timeslot"`
	Subject          string  `json:"subject"           validate:"required,max=100"`
	ExpectedStudents int     `json:"expected_students" validate:"required,min=1"`
	Notes            *string `json:"notes"             validate:"omitempty,max=500"`
}

// ToSubmitRequest hands the request to the booking rules. Date parsing is
// safe after validation.
func (r *SubmitReservationRequest) ToSubmitRequest(professorID string) workflow.SubmitRequest {
	date, _ := timezone.Parse(constant.DateFormat, r.Date)

	notes := constant.Empty
	if r.Notes != nil {
		notes = *r.Notes
	}

	return workflow.SubmitRequest{
		ProfessorID:        professorID,
		ClassroomID:        r.ClassroomID,
		Date:               date,
		Start:              timezone.CombineDateTime(date, r.StartTime),
		End:                timezone.CombineDateTime(date, r.EndTime),
		Subject:            r.Subject,
		ExpectedAttendance: r.ExpectedStudents,
		Notes:              notes,
	}
}

func FromEngine(res workflow.Reservation, req SubmitReservationRequest, user string) model.Reservation {
	return model.Reservation{
		ID:               uuid.NewString(),
		ProfessorID:      res.ProfessorID,
		ClassroomID:      res.ClassroomID,
		Date:             res.Date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Subject:          res.Subject,
		ExpectedStudents: res.ExpectedAttendance,
		Notes:            req.Notes,
		Status:           string(res.Status),
		PriorityReview:   res.PriorityReview,
		Metadata: gModel.Metadata{
			CreatedAt:  res.CreatedAt,
			ModifiedAt: res.CreatedAt,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReviewReservationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

type ReservationResponse struct {
	ID                string     `json:"id"`
	ProfessorID       string     `json:"professor_id"`
	ProfessorName     string     `json:"professor_name,omitempty"`
	ProfessorEmail    string     `json:"professor_email,omitempty"`
	ClassroomID       string     `json:"classroom_id"`
	ClassroomName     string     `json:"classroom_name,omitempty"`
	ClassroomCapacity int        `json:"classroom_capacity,omitempty"`
	BuildingName      string     `json:"building_name,omitempty"`
	Date              string     `json:"date"`
	StartTime         string     `json:"start_time"`
	EndTime           string     `json:"end_time"`
	Subject           string     `json:"subject"`
	ExpectedStudents  int        `json:"expected_students"`
	Notes             *string    `json:"notes,omitempty"`
	Status            string     `json:"status"`
	PriorityReview    bool       `json:"priority_review"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.ProfessorID = model.ProfessorID
	r.ProfessorName = model.ProfessorName
	r.ProfessorEmail = model.ProfessorEmail
	r.ClassroomID = model.ClassroomID
	r.ClassroomName = model.ClassroomName
	r.ClassroomCapacity = model.ClassroomCapacity
	r.BuildingName = model.BuildingName
	r.Date = timezone.Format(model.Date, constant.DateFormat)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Subject = model.Subject
	r.ExpectedStudents = model.ExpectedStudents
	r.Notes = model.Notes
	r.Status = model.Status
	r.PriorityReview = model.PriorityReview
	r.ReviewedAt = model.ReviewedAt
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
