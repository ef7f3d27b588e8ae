package classroom

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"aulaboard/infras/otel"
	"aulaboard/internal/domains/classroom/model"
	"aulaboard/internal/domains/classroom/model/dto"
	"aulaboard/internal/domains/classroom/service"
	"aulaboard/shared/constant"
	gDto "aulaboard/shared/dto"
	"aulaboard/shared/validator"
	"aulaboard/transport/http/response"
)

type Handler struct {
	service service.Classroom
	otel    otel.Otel
}

func New(service service.Classroom, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/classrooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateClassroom)
		routerGroup.Get("/", handler.GetClassrooms)
		routerGroup.Get("/{id}", handler.GetClassroomByID)
		routerGroup.Patch("/{id}", handler.UpdateClassroom)
		routerGroup.Delete("/{id}", handler.DeleteClassroom)
	})
}

// CreateClassroom registers a new classroom in a building.
// @Summary Create a new classroom
// @Description Create a classroom with its number, capacity and equipment.
// @Tags Classroom
// @Accept json
// @Produce json
// @Param request body dto.CreateClassroomRequest true "Create Classroom Request"
// @Success 201 {object} response.Message "Classroom created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/classrooms [post]
// @Security BearerAuth
func (handler *Handler) CreateClassroom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateClassroom")
	defer scope.End()

	req := dto.CreateClassroomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create classroom")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Classroom created successfully")

	response.WithMessage(w, http.StatusCreated, "Classroom created successfully")
}

// GetClassrooms retrieves all classrooms.
// @Summary Get all classrooms
// @Description Retrieve classrooms filtered by building, number or minimum capacity.
// @Tags Classroom
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param edificio_id query string false "Filter by building"
// @Param numero query string false "Filter by room number"
// @Param capacidad query int false "Filter by minimum capacity"
// @Success 200 {object} response.Data[dto.GetClassroomsResponse] "List of classrooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/classrooms [get]
// @Security BearerAuth
func (handler *Handler) GetClassrooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClassrooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if buildingID := r.URL.Query().Get(model.FieldBuildingID); buildingID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBuildingID,
			Operator: gDto.FilterOperatorEq,
			Value:    buildingID,
			Table:    model.TableName,
		})
	}

	if number := r.URL.Query().Get(model.FieldNumber); number != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldNumber,
			Operator: gDto.FilterOperatorLike,
			Value:    number,
			Table:    model.TableName,
		})
	}

	if capacity := r.URL.Query().Get(model.FieldCapacity); capacity != "" {
		if minCapacity, err := strconv.Atoi(capacity); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    model.FieldCapacity,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    minCapacity,
				Table:    model.TableName,
			})
		}
	}

	classrooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get classrooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Classrooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, classrooms)
}

// GetClassroomByID retrieves a classroom by its ID.
// @Summary Get a classroom by ID
// @Description Retrieve a classroom by its unique identifier.
// @Tags Classroom
// @Accept json
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 200 {object} response.Data[dto.ClassroomResponse] "Classroom details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/classrooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetClassroomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetClassroomByID")
	defer scope.End()

	id := chi.URLParam(r, "id")

	classroom, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get classroom")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Classroom retrieved successfully")

	response.WithJSON(w, http.StatusOK, classroom)
}

// UpdateClassroom patches a classroom.
// @Summary Update a classroom
// @Description Update a classroom's number, capacity or equipment.
// @Tags Classroom
// @Accept json
// @Produce json
// @Param id path string true "Classroom ID"
// @Param request body dto.UpdateClassroomRequest true "Update Classroom Request"
// @Success 200 {object} response.Message "Classroom updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/classrooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateClassroom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateClassroom")
	defer scope.End()

	id := chi.URLParam(r, "id")

	req := dto.UpdateClassroomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update classroom")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Classroom updated successfully")

	response.WithMessage(w, http.StatusOK, "Classroom updated successfully")
}

// DeleteClassroom removes a classroom.
// @Summary Delete a classroom
// @Description Delete a classroom by its unique identifier.
// @Tags Classroom
// @Accept json
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 200 {object} response.Message "Classroom deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/classrooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteClassroom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteClassroom")
	defer scope.End()

	id := chi.URLParam(r, "id")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete classroom")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Classroom deleted successfully")

	response.WithMessage(w, http.StatusOK, "Classroom deleted successfully")
}
