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
	scheduleMocks "aulaboard/internal/domains/schedule/mocks"
	"aulaboard/internal/domains/schedule/model"
	"aulaboard/internal/domains/schedule/model/dto"
	"aulaboard/internal/domains/schedule/service"
	cacheMocks "aulaboard/shared/cache/mocks"
	"aulaboard/shared/constant"
	"aulaboard/shared/failure"
)

const (
	testClassroomID = "6f1b24c8-9a53-4a59-8f62-0d9f6c3f8a11"
	testProfessorID = "prof-1"
)

func professorCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleProfessor)
}

func createRequest() dto.CreateScheduleRequest {
	return dto.CreateScheduleRequest{
		ClassroomID: testClassroomID,
		DayOfWeek:   2,
		StartTime:   "08:00",
		EndTime:     "10:00",
		Subject:     "Cálculo",
	}
}

func TestScheduleService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := scheduleMocks.NewMockSchedule(ctrl)
	mockClassroomRepo := classroomMocks.NewMockClassroom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockClassroomRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateScheduleRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  createRequest(),
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Schedule{}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "end before start",
			req: dto.CreateScheduleRequest{
				ClassroomID: testClassroomID,
				DayOfWeek:   2,
				StartTime:   "10:00",
				EndTime:     "08:00",
				Subject:     "Cálculo",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "classroom does not exist",
			req:  createRequest(),
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "same classroom same weekday overlap",
			req:  createRequest(),
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Schedule{{
						ID:          "sch-1",
						ProfessorID: "prof-2",
						ClassroomID: testClassroomID,
						DayOfWeek:   2,
						StartTime:   "09:00",
						EndTime:     "11:00",
					}}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "same professor overlap in another classroom",
			req:  createRequest(),
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Schedule{{
						ID:          "sch-2",
						ProfessorID: testProfessorID,
						ClassroomID: "otra-aula",
						DayOfWeek:   2,
						StartTime:   "09:00",
						EndTime:     "11:00",
					}}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "adjacent slots do not conflict",
			req:  createRequest(),
			setupMock: func() {
				mockClassroomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Schedule{{
						ID:          "sch-3",
						ProfessorID: "prof-2",
						ClassroomID: testClassroomID,
						DayOfWeek:   2,
						StartTime:   "10:00",
						EndTime:     "12:00",
					}}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(professorCtx(testProfessorID), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestScheduleService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := scheduleMocks.NewMockSchedule(ctrl)
	mockClassroomRepo := classroomMocks.NewMockClassroom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockClassroomRepo, cfg, mockCache, mockOtel)

	owned := model.Schedule{ID: "sch-1", ProfessorID: testProfessorID}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner deletes own entry",
			ctx:  professorCtx(testProfessorID),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(owned, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
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
			name: "missing entry",
			ctx:  professorCtx(testProfessorID),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Schedule{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(tt.ctx, "sch-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
