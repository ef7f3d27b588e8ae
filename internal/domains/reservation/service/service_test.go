package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"aulaboard/config"
	"aulaboard/infras/otel/mocks"
	classroomMocks "aulaboard/internal/domains/classroom/mocks"
	classroomModel "aulaboard/internal/domains/classroom/model"
	reservationMocks "aulaboard/internal/domains/reservation/mocks"
	"aulaboard/internal/domains/reservation/model"
	"aulaboard/internal/domains/reservation/model/dto"
	"aulaboard/internal/domains/reservation/service"
	scheduleMocks "aulaboard/internal/domains/schedule/mocks"
	scheduleModel "aulaboard/internal/domains/schedule/model"
	cacheMocks "aulaboard/shared/cache/mocks"
	"aulaboard/shared/constant"
	"aulaboard/shared/failure"
	"aulaboard/shared/timezone"
)

const (
	testClassroomID = "6f1b24c8-9a53-4a59-8f62-0d9f6c3f8a11"
	testProfessorID = "prof-1"
	testDate        = "2026-09-07"
)

func professorCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleProfessor)
}

func adminCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func submitRequest() dto.SubmitReservationRequest {
	return dto.SubmitReservationRequest{
		ClassroomID:      testClassroomID,
		Date:             testDate,
		StartTime:        "10:00",
		EndTime:          "12:00",
		Subject:          "Algoritmos",
		ExpectedStudents: 25,
	}
}

func bookedReservation(id, status, start, end string) model.Reservation {
	date, _ := timezone.Parse(constant.DateFormat, testDate)

	return model.Reservation{
		ID:          id,
		ProfessorID: "prof-2",
		ClassroomID: testClassroomID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Status:      status,
	}
}

func TestReservationService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockClassroomRepo := classroomMocks.NewMockClassroom(ctrl)
	mockScheduleRepo := scheduleMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockClassroomRepo, mockScheduleRepo, nil, cfg, mockCache, mockOtel)

	classroom := classroomModel.Classroom{ID: testClassroomID, Capacity: 40}

	tests := []struct {
		name         string
		req          dto.SubmitReservationRequest
		setupMock    func()
		wantErr      bool
		wantCode     int
		wantPriority bool
	}{
		{
			name: "successful submission lands pending",
			req:  submitRequest(),
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(classroom, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)

				mockScheduleRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]scheduleModel.Schedule{}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "classroom not found",
			req:  submitRequest(),
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(classroomModel.Classroom{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "overlap with a pending reservation",
			req:  submitRequest(),
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(classroom, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{bookedReservation("res-2", "pendiente", "11:00", "13:00")}, nil)

				mockScheduleRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]scheduleModel.Schedule{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "overlap with a weekly schedule entry",
			req:  submitRequest(),
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(classroom, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)

				mockScheduleRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]scheduleModel.Schedule{{
						ID:          "sch-1",
						ClassroomID: testClassroomID,
						DayOfWeek:   1,
						StartTime:   "09:00",
						EndTime:     "11:00",
					}}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "over capacity is accepted but flagged",
			req: dto.SubmitReservationRequest{
				ClassroomID:      testClassroomID,
				Date:             testDate,
				StartTime:        "10:00",
				EndTime:          "12:00",
				Subject:          "Algoritmos",
				ExpectedStudents: 80,
			},
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(classroom, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)

				mockScheduleRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]scheduleModel.Schedule{}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantPriority: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Submit(professorCtx(testProfessorID), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "pendiente", res.Status)
			assert.Equal(t, tt.wantPriority, res.PriorityReview)
			assert.Equal(t, testProfessorID, res.ProfessorID)
		})
	}
}

func TestReservationService_Submit_EnforcedCapacity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockClassroomRepo := classroomMocks.NewMockClassroom(ctrl)
	mockScheduleRepo := scheduleMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.Workflow.EnforceCapacity = true

	svc := service.New(mockRepo, mockClassroomRepo, mockScheduleRepo, nil, cfg, mockCache, mockOtel)

	mockClassroomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(classroomModel.Classroom{ID: testClassroomID, Capacity: 40}, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Reservation{}, nil)

	mockScheduleRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]scheduleModel.Schedule{}, nil)

	req := submitRequest()
	req.ExpectedStudents = 80

	_, err := svc.Submit(professorCtx(testProfessorID), req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockClassroomRepo := classroomMocks.NewMockClassroom(ctrl)
	mockScheduleRepo := scheduleMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockClassroomRepo, mockScheduleRepo, nil, cfg, mockCache, mockOtel)

	owned := bookedReservation("res-1", "pendiente", "10:00", "12:00")
	owned.ProfessorID = testProfessorID

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner reads own reservation",
			ctx:  professorCtx(testProfessorID),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owned, nil)
			},
		},
		{
			name: "admin reads any reservation",
			ctx:  adminCtx("admin-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owned, nil)
			},
		},
		{
			name: "foreign professor is rejected",
			ctx:  professorCtx("prof-9"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owned, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "missing reservation",
			ctx:  professorCtx(testProfessorID),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(tt.ctx, "res-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "res-1", res.ID)
		})
	}
}

func TestReservationService_Review_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockClassroomRepo := classroomMocks.NewMockClassroom(ctrl)
	mockScheduleRepo := scheduleMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockClassroomRepo, mockScheduleRepo, nil, cfg, mockCache, mockOtel)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Reservation{}, nil)

	err := svc.Review(adminCtx("admin-1"), "missing", dto.ReviewReservationRequest{Decision: constant.ReviewDecisionApprove})

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
