package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"aulaboard/config"
	"aulaboard/infras/otel"
	reservationModel "aulaboard/internal/domains/reservation/model"
	reservationRepo "aulaboard/internal/domains/reservation/repository"
	"aulaboard/internal/domains/stats/model/dto"
	usageModel "aulaboard/internal/domains/usage/model"
	usageRepo "aulaboard/internal/domains/usage/repository"
	"aulaboard/internal/workflow"
	"aulaboard/shared"
	"aulaboard/shared/cache"
	"aulaboard/shared/constant"
	gDto "aulaboard/shared/dto"
	"aulaboard/shared/timezone"
)

const cacheAdminStats = "stats:admin"

type Stats interface {
	GetAdminStats(ctx context.Context) (dto.AdminStatsResponse, error)
}

type serviceImpl struct {
	usageRepo       usageRepo.Usage
	reservationRepo reservationRepo.Reservation
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	usageRepo usageRepo.Usage,
	reservationRepo reservationRepo.Reservation,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Stats {
	return &serviceImpl{
		usageRepo:       usageRepo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) GetAdminStats(ctx context.Context) (res dto.AdminStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAdminStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheAdminStats)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	today := timezone.Format(timezone.Now(), constant.DateFormat)

	if res.VerifiedToday, err = s.usageRepo.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			usageStatusFilter(workflow.VerificationVerified),
			gDto.Filter{
				ArgName:  "revisado_hoy",
				Value:    fmt.Sprintf("usos.revisado_en >= '%s'::date AND usos.revisado_en < '%s'::date + INTERVAL '1 day'", today, today),
				Operator: gDto.FilterPlainQuery,
			},
		},
	}); err != nil {
		log.Error().Err(err).Msg("failed to count verified usages")

		return res, fmt.Errorf("failed to count verified usages: %w", err)
	}

	if res.PendingVerifications, err = s.countUsages(ctx, workflow.VerificationPending); err != nil {
		return res, err
	}

	if res.RejectedUsages, err = s.countUsages(ctx, workflow.VerificationRejected); err != nil {
		return res, err
	}

	if res.Alerts, err = s.countUsages(ctx, workflow.VerificationAlert); err != nil {
		return res, err
	}

	if res.PendingReservations, err = s.reservationRepo.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    reservationModel.FieldStatus,
				Table:    reservationModel.TableName,
				Value:    string(workflow.StatusPending),
				Operator: gDto.FilterOperatorEq,
			},
		},
	}); err != nil {
		log.Error().Err(err).Msg("failed to count pending reservations")

		return res, fmt.Errorf("failed to count pending reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save admin stats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) countUsages(ctx context.Context, status workflow.VerificationStatus) (int, error) {
	count, err := s.usageRepo.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{usageStatusFilter(status)},
	})
	if err != nil {
		log.Error().Err(err).Str("status", string(status)).Msg("failed to count usages")

		return 0, fmt.Errorf("failed to count usages: %w", err)
	}

	return count, nil
}

func usageStatusFilter(status workflow.VerificationStatus) gDto.Filter {
	return gDto.Filter{
		Field:    usageModel.FieldStatus,
		Table:    usageModel.TableName,
		Value:    string(status),
		Operator: gDto.FilterOperatorEq,
	}
}
