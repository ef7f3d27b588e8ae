package usage

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"aulaboard/infras/otel"
	"aulaboard/internal/domains/usage/model"
	"aulaboard/internal/domains/usage/model/dto"
	"aulaboard/internal/domains/usage/service"
	"aulaboard/shared/constant"
	gDto "aulaboard/shared/dto"
	"aulaboard/shared/validator"
	"aulaboard/transport/http/response"
)

type Handler struct {
	service service.Usage
	otel    otel.Otel
}

func New(service service.Usage, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/usages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.ReportUsage)
		routerGroup.Get("/", handler.GetVerificationBoard)
		routerGroup.Get("/{id}", handler.GetUsageByID)
		routerGroup.Post("/{id}/review", handler.ReviewUsage)
	})
}

// ReportUsage files a usage report for an approved reservation.
// @Summary Report classroom usage
// @Description Report the attendance observed during an approved reservation. Late or over-capacity reports are flagged for attention.
// @Tags Usage
// @Accept json
// @Produce json
// @Param request body dto.ReportUsageRequest true "Report Usage Request"
// @Success 201 {object} response.Data[dto.UsageResponse] "Filed usage report"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/usages [post]
// @Security BearerAuth
func (handler *Handler) ReportUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReportUsage")
	defer scope.End()

	req := dto.ReportUsageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	usage, err := handler.service.Report(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to report usage")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Usage reported successfully")

	response.WithJSON(w, http.StatusCreated, usage)
}

// GetVerificationBoard retrieves the usage verification board.
// @Summary Get the verification board
// @Description Retrieve filed usage reports plus alerts for elapsed approved reservations that were never reported.
// @Tags Usage
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param estado query string false "Filter by status"
// @Param reserva_id query string false "Filter by reservation"
// @Success 200 {object} response.Data[dto.GetUsagesResponse] "Verification board entries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/usages [get]
// @Security BearerAuth
func (handler *Handler) GetVerificationBoard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVerificationBoard")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if reservationID := r.URL.Query().Get(model.FieldReservationID); reservationID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldReservationID,
			Operator: gDto.FilterOperatorEq,
			Value:    reservationID,
			Table:    model.TableName,
		})
	}

	board, err := handler.service.GetBoard(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get verification board")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Verification board retrieved successfully")

	response.WithJSON(w, http.StatusOK, board)
}

// GetUsageByID retrieves a usage report by its ID.
// @Summary Get a usage report by ID
// @Description Retrieve a usage report by its unique identifier.
// @Tags Usage
// @Accept json
// @Produce json
// @Param id path string true "Usage ID"
// @Success 200 {object} response.Data[dto.UsageResponse] "Usage report details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/usages/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUsageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsageByID")
	defer scope.End()

	id := chi.URLParam(r, "id")

	usage, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get usage")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Usage retrieved successfully")

	response.WithJSON(w, http.StatusOK, usage)
}

// ReviewUsage verifies or rejects a usage report.
// @Summary Review a usage report
// @Description Verify or reject a pending or alerted usage report.
// @Tags Usage
// @Accept json
// @Produce json
// @Param id path string true "Usage ID"
// @Param request body dto.ReviewUsageRequest true "Review Usage Request"
// @Success 200 {object} response.Message "Usage reviewed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/usages/{id}/review [post]
// @Security BearerAuth
func (handler *Handler) ReviewUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReviewUsage")
	defer scope.End()

	id := chi.URLParam(r, "id")

	req := dto.ReviewUsageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Review(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to review usage")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Usage reviewed successfully")

	response.WithMessage(w, http.StatusOK, "Usage reviewed successfully")
}
