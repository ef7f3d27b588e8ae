// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"aulaboard/config"
	"aulaboard/infras/jwt"
	"aulaboard/infras/otel"
	"aulaboard/infras/postgres"
	"aulaboard/infras/redis"
	"aulaboard/internal/domains/auth/service"
	repository2 "aulaboard/internal/domains/building/repository"
	service3 "aulaboard/internal/domains/building/service"
	repository3 "aulaboard/internal/domains/classroom/repository"
	service4 "aulaboard/internal/domains/classroom/service"
	repository5 "aulaboard/internal/domains/reservation/repository"
	service6 "aulaboard/internal/domains/reservation/service"
	repository4 "aulaboard/internal/domains/schedule/repository"
	service5 "aulaboard/internal/domains/schedule/service"
	service8 "aulaboard/internal/domains/stats/service"
	repository6 "aulaboard/internal/domains/usage/repository"
	service7 "aulaboard/internal/domains/usage/service"
	"aulaboard/internal/domains/user/repository"
	service2 "aulaboard/internal/domains/user/service"
	"aulaboard/internal/handlers/auth"
	"aulaboard/internal/handlers/building"
	"aulaboard/internal/handlers/classroom"
	"aulaboard/internal/handlers/reservation"
	"aulaboard/internal/handlers/schedule"
	"aulaboard/internal/handlers/stats"
	"aulaboard/internal/handlers/usage"
	"aulaboard/internal/handlers/user"
	"aulaboard/permissions"
	"aulaboard/shared/cache"
	"aulaboard/transport/http"
	"aulaboard/transport/http/middleware"
	"aulaboard/transport/http/router"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceUser := service2.New(repositoryUser, configConfig, redisCache, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	repositoryBuilding := repository2.New(connection, otelOtel)
	serviceBuilding := service3.New(repositoryBuilding, configConfig, redisCache, otelOtel)
	buildingHandler := building.New(serviceBuilding, otelOtel)
	repositoryClassroom := repository3.New(connection, otelOtel)
	serviceClassroom := service4.New(repositoryClassroom, repositoryBuilding, configConfig, redisCache, otelOtel)
	classroomHandler := classroom.New(serviceClassroom, otelOtel)
	repositorySchedule := repository4.New(connection, otelOtel)
	serviceSchedule := service5.New(repositorySchedule, repositoryClassroom, configConfig, redisCache, otelOtel)
	scheduleHandler := schedule.New(serviceSchedule, otelOtel)
	repositoryReservation := repository5.New(connection, otelOtel)
	serviceReservation := service6.New(repositoryReservation, repositoryClassroom, repositorySchedule, connection, configConfig, redisCache, otelOtel)
	reservationHandler := reservation.New(serviceReservation, otelOtel)
	repositoryUsage := repository6.New(connection, otelOtel)
	serviceUsage := service7.New(repositoryUsage, repositoryReservation, configConfig, redisCache, otelOtel)
	usageHandler := usage.New(serviceUsage, otelOtel)
	serviceStats := service8.New(repositoryUsage, repositoryReservation, configConfig, redisCache, otelOtel)
	statsHandler := stats.New(serviceStats, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:        handler,
		User:        userHandler,
		Building:    buildingHandler,
		Classroom:   classroomHandler,
		Schedule:    scheduleHandler,
		Reservation: reservationHandler,
		Usage:       usageHandler,
		Stats:       statsHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, permissions.Get)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var authDomain = wire.NewSet(repository.New, service.New)

var userDomain = wire.NewSet(service2.New)

var buildingDomain = wire.NewSet(repository2.New, service3.New)

var classroomDomain = wire.NewSet(repository3.New, service4.New)

var scheduleDomain = wire.NewSet(repository4.New, service5.New)

var reservationDomain = wire.NewSet(repository5.New, service6.New)

var usageDomain = wire.NewSet(repository6.New, service7.New)

var statsDomain = wire.NewSet(service8.New)

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

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, user.New, building.New, classroom.New, schedule.New, reservation.New, stats.New, usage.New, router.New)
