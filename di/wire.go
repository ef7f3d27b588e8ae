//go:build wireinject
// +build wireinject

package di

import (
	"aulaboard/config"
	"aulaboard/infras/jwt"
	"aulaboard/infras/otel"
	"aulaboard/infras/postgres"
	"aulaboard/infras/redis"
	"aulaboard/permissions"
	"aulaboard/shared/cache"
	"aulaboard/transport/http"
	"aulaboard/transport/http/middleware"
	"aulaboard/transport/http/router"

	"github.com/google/wire"

	authService "aulaboard/internal/domains/auth/service"
	buildingRepository "aulaboard/internal/domains/building/repository"
	buildingService "aulaboard/internal/domains/building/service"
	classroomRepository "aulaboard/internal/domains/classroom/repository"
	classroomService "aulaboard/internal/domains/classroom/service"
	reservationRepository "aulaboard/internal/domains/reservation/repository"
	reservationService "aulaboard/internal/domains/reservation/service"
	scheduleRepository "aulaboard/internal/domains/schedule/repository"
	scheduleService "aulaboard/internal/domains/schedule/service"
	statsService "aulaboard/internal/domains/stats/service"
	usageRepository "aulaboard/internal/domains/usage/repository"
	usageService "aulaboard/internal/domains/usage/service"
	userRepository "aulaboard/internal/domains/user/repository"
	userService "aulaboard/internal/domains/user/service"

	authHandler "aulaboard/internal/handlers/auth"
	buildingHandler "aulaboard/internal/handlers/building"
	classroomHandler "aulaboard/internal/handlers/classroom"
	reservationHandler "aulaboard/internal/handlers/reservation"
	scheduleHandler "aulaboard/internal/handlers/schedule"
	statsHandler "aulaboard/internal/handlers/stats"
	usageHandler "aulaboard/internal/handlers/usage"
	userHandler "aulaboard/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var buildingDomain = wire.NewSet(
	buildingRepository.New,
	buildingService.New,
)

var classroomDomain = wire.NewSet(
	classroomRepository.New,
	classroomService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var usageDomain = wire.NewSet(
	usageRepository.New,
	usageService.New,
)

var statsDomain = wire.NewSet(
	statsService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	buildingDomain,
	classroomDomain,
	scheduleDomain,
	reservationDomain,
	usageDomain,
	statsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	buildingHandler.New,
	classroomHandler.New,
	scheduleHandler.New,
	reservationHandler.New,
	statsHandler.New,
	usageHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
