package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"aulaboard/config"
	"aulaboard/infras/otel/mocks"
	reservationMocks "aulaboard/internal/domains/reservation/mocks"
	reservationModel "aulaboard/internal/domains/reservation/model"
	usageMocks "aulaboard/internal/domains/usage/mocks"
	"aulaboard/internal/domains/usage/model"
	"aulaboard/internal/domains/usage/model/dto"
	"aulaboard/internal/domains/usage/service"
	cacheMocks "aulaboard/shared/cache/mocks"
	"aulaboard/shared/constant"
	gDto "aulaboard/shared/dto"
	"aulaboard/shared/failure"
	"aulaboard/shared/timezone"
)

const (
	testReservationID = "0b2c7c44-55aa-4f8b-9f83-2b1d1f2ab901"
	testProfessorID   = "prof-1"
)

func userCtx(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

// approvedReservation starts an hour from now so a report filed during the
// test always lands inside the grace period.
func approvedReservation() reservationModel.Reservation {
	start := timezone.Now().Add(time.Hour)

	return reservationModel.Reservation{
		ID:                testReservationID,
		ProfessorID:       testProfessorID,
		ClassroomID:       "aula-1",
		Date:              time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, timezone.GetLocation()),
		StartTime:         timezone.Format(start, "15:04"),
		EndTime:           timezone.Format(start.Add(2*time.Hour), "15:04"),
		Subject:           "Algoritmos",
		ExpectedStudents:  30,
		Status:            "aprobada",
		ClassroomCapacity: 40,
	}
}

func TestUsageService_Report(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := usageMocks.NewMockUsage(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.App.Workflow.ReportGraceMin = 15

	svc := service.New(mockRepo, mockReservationRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name       string
		ctx        context.Context
		req        dto.ReportUsageRequest
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantStatus string
	}{
		{
			name: "report within capacity lands pending",
			ctx:  userCtx(testProfessorID, constant.RoleProfessor),
			req:  dto.ReportUsageRequest{ReservationID: testReservationID, ReportedStudents: 28},
			setupMock: func() {
				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approvedReservation(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantStatus: "pendiente",
		},
		{
			name: "attendance above capacity alerts",
			ctx:  userCtx(testProfessorID, constant.RoleProfessor),
			req:  dto.ReportUsageRequest{ReservationID: testReservationID, ReportedStudents: 55},
			setupMock: func() {
				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approvedReservation(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantStatus: "alerta",
		},
		{
			name: "reservation not found",
			ctx:  userCtx(testProfessorID, constant.RoleProfessor),
			req:  dto.ReportUsageRequest{ReservationID: testReservationID, ReportedStudents: 28},
			setupMock: func() {
				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservationModel.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "foreign professor is rejected",
			ctx:  userCtx("prof-9", constant.RoleProfessor),
			req:  dto.ReportUsageRequest{ReservationID: testReservationID, ReportedStudents: 28},
			setupMock: func() {
				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approvedReservation(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "pending reservation cannot be reported",
			ctx:  userCtx(testProfessorID, constant.RoleProfessor),
			req:  dto.ReportUsageRequest{ReservationID: testReservationID, ReportedStudents: 28},
			setupMock: func() {
				pending := approvedReservation()
				pending.Status = "pendiente"

				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "duplicate report",
			ctx:  userCtx(testProfessorID, constant.RoleProfessor),
			req:  dto.ReportUsageRequest{ReservationID: testReservationID, ReportedStudents: 28},
			setupMock: func() {
				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approvedReservation(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Report(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, testReservationID, res.ReservationID)
		})
	}
}

func TestUsageService_Review(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := usageMocks.NewMockUsage(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockReservationRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.ReviewUsageRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "verify a pending record",
			req:  dto.ReviewUsageRequest{Decision: constant.ReviewDecisionVerify},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Usage{ID: "uso-1", Status: "pendiente", ReportedStudents: 28}, nil)

				mockRepo.EXPECT().
					UpdateChecked(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "reject an alerted record with notes",
			req:  dto.ReviewUsageRequest{Decision: constant.ReviewDecisionReject, Notes: "sala vacía"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Usage{ID: "uso-1", Status: "alerta", ReportedStudents: 55}, nil)

				mockRepo.EXPECT().
					UpdateChecked(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "already verified record",
			req:  dto.ReviewUsageRequest{Decision: constant.ReviewDecisionVerify},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Usage{ID: "uso-1", Status: "verificada"}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "missing record",
			req:  dto.ReviewUsageRequest{Decision: constant.ReviewDecisionVerify},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Usage{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Review(userCtx("admin-1", constant.RoleAdmin), "uso-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUsageService_GetBoard_SynthesizesAlerts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := usageMocks.NewMockUsage(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Workflow.ReportGraceMin = 15

	svc := service.New(mockRepo, mockReservationRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).Times(2)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(0, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Usage{}, nil)

	// Approved yesterday, never reported: well past any grace period.
	elapsed := approvedReservation()
	start := timezone.Now().Add(-24 * time.Hour)
	elapsed.Date = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, timezone.GetLocation())
	elapsed.StartTime = timezone.Format(start, "15:04")
	elapsed.EndTime = timezone.Format(start.Add(2*time.Hour), "15:04")

	mockReservationRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]reservationModel.Reservation{elapsed}, nil)

	res, err := svc.GetBoard(userCtx("admin-1", constant.RoleAdmin), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Usages, 1)
	assert.Equal(t, "alerta", res.Usages[0].Status)
	assert.Empty(t, res.Usages[0].ID)
	assert.Equal(t, testReservationID, res.Usages[0].ReservationID)
}
