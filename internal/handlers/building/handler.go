package building

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"aulaboard/infras/otel"
	"aulaboard/internal/domains/building/model"
	"aulaboard/internal/domains/building/model/dto"
	"aulaboard/internal/domains/building/service"
	"aulaboard/shared/constant"
	gDto "aulaboard/shared/dto"
	"aulaboard/shared/validator"
	"aulaboard/transport/http/response"
)

type Handler struct {
	service service.Building
	otel    otel.Otel
}

func New(service service.Building, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/buildings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBuilding)
		routerGroup.Get("/", handler.GetBuildings)
		routerGroup.Get("/{id}", handler.GetBuildingByID)
		routerGroup.Patch("/{id}", handler.UpdateBuilding)
		routerGroup.Delete("/{id}", handler.DeleteBuilding)
	})
}

// CreateBuilding registers a new building.
// @Summary Create a new building
// @Description Create a building with the provided name.
// @Tags Building
// @Accept json
// @Produce json
// @Param request body dto.CreateBuildingRequest true "Create Building Request"
// @Success 201 {object} response.Message "Building created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings [post]
// @Security BearerAuth
func (handler *Handler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBuilding")
	defer scope.End()

	req := dto.CreateBuildingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create building")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Building created successfully")

	response.WithMessage(w, http.StatusCreated, "Building created successfully")
}

// GetBuildings retrieves all buildings.
// @Summary Get all buildings
// @Description Retrieve all buildings with optional name filtering and pagination.
// @Tags Building
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param nombre query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetBuildingsResponse] "List of buildings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings [get]
// @Security BearerAuth
func (handler *Handler) GetBuildings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBuildings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	buildings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get buildings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Buildings retrieved successfully")

	response.WithJSON(w, http.StatusOK, buildings)
}

// GetBuildingByID retrieves a building by its ID.
// @Summary Get a building by ID
// @Description Retrieve a building by its unique identifier.
// @Tags Building
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} response.Data[dto.BuildingResponse] "Building details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBuildingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBuildingByID")
	defer scope.End()

	id := chi.URLParam(r, "id")

	building, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get building")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Building retrieved successfully")

	response.WithJSON(w, http.StatusOK, building)
}

// UpdateBuilding patches a building.
// @Summary Update a building
// @Description Update a building's fields.
// @Tags Building
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Param request body dto.UpdateBuildingRequest true "Update Building Request"
// @Success 200 {object} response.Message "Building updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBuilding")
	defer scope.End()

	id := chi.URLParam(r, "id")

	req := dto.UpdateBuildingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update building")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Building updated successfully")

	response.WithMessage(w, http.StatusOK, "Building updated successfully")
}

// DeleteBuilding removes a building.
// @Summary Delete a building
// @Description Delete a building by its unique identifier.
// @Tags Building
// @Accept json
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} response.Message "Building deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/buildings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBuilding")
	defer scope.End()

	id := chi.URLParam(r, "id")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete building")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Building deleted successfully")

	response.WithMessage(w, http.StatusOK, "Building deleted successfully")
}
