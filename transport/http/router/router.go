package router

import (
	"aulaboard/internal/handlers/auth"
	"aulaboard/internal/handlers/building"
	"aulaboard/internal/handlers/classroom"
	"aulaboard/internal/handlers/reservation"
	"aulaboard/internal/handlers/schedule"
	"aulaboard/internal/handlers/stats"
	"aulaboard/internal/handlers/usage"
	"aulaboard/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Building    building.Handler
	Classroom   classroom.Handler
	Schedule    schedule.Handler
	Reservation reservation.Handler
	Usage       usage.Handler
	Stats       stats.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Building.Router(routerGroup)
		r.DomainHandlers.Classroom.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Usage.Router(routerGroup)
		r.DomainHandlers.Stats.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
