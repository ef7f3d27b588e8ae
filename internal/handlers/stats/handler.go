package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"aulaboard/infras/otel"
	"aulaboard/internal/domains/stats/service"
	"aulaboard/shared/constant"
	"aulaboard/transport/http/response"
)

type Handler struct {
	service service.Stats
	otel    otel.Otel
}

func New(service service.Stats, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/stats", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAdminStats)
	})
}

// GetAdminStats retrieves the admin dashboard counters.
// @Summary Get admin statistics
// @Description Retrieve today's verification counters and pending queue sizes.
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.AdminStatsResponse] "Admin statistics"
// @Failure 500 {object} response.Error
// @Router /v1/stats [get]
// @Security BearerAuth
func (handler *Handler) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdminStats")
	defer scope.End()

	stats, err := handler.service.GetAdminStats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admin stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}
