package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"aulaboard/config"
	"aulaboard/infras/otel"
	reservationModel "aulaboard/internal/domains/reservation/model"
	reservationRepo "aulaboard/internal/domains/reservation/repository"
	"aulaboard/internal/domains/usage/model"
	"aulaboard/internal/domains/usage/model/dto"
	"aulaboard/internal/domains/usage/repository"
	"aulaboard/internal/workflow"
	"aulaboard/shared"
	"aulaboard/shared/cache"
	"aulaboard/shared/constant"
	gDto "aulaboard/shared/dto"
	"aulaboard/shared/failure"
	"aulaboard/shared/timezone"
)

const (
	cacheGetUsage    = "usage:get"
	cacheGetAllUsage = "usage:gets"
	cacheCountUsage  = "usage:count"
)

type Usage interface {
	Report(ctx context.Context, req dto.ReportUsageRequest) (dto.UsageResponse, error)
	GetBoard(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UsageResponse, error)
	Review(ctx context.Context, id string, req dto.ReviewUsageRequest) error
}

type serviceImpl struct {
	repo            repository.Usage
	reservationRepo reservationRepo.Reservation
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Usage,
	reservationRepo reservationRepo.Reservation,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Usage {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) options() workflow.Options {
	return workflow.Options{
		EnforceCapacity: s.cfg.App.Workflow.EnforceCapacity,
		ReportGrace:     time.Duration(s.cfg.App.Workflow.ReportGraceMin) * time.Minute,
	}
}

func (s *serviceImpl) Report(ctx context.Context, req dto.ReportUsageRequest) (res dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReportUsage")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(req.ReservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	if role != constant.RoleAdmin && reservation.ProfessorID != user {
		return res, failure.Forbidden("reservation belongs to another professor") //nolint:wrapcheck
	}

	if reservation.Status != string(workflow.StatusApproved) {
		return res, failure.UnprocessableEntity("usage can only be reported for approved reservations") //nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, filterByReservation(req.ReservationID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if usage exists")

		return res, fmt.Errorf("failed to check if usage exists: %w", err)
	}

	if exist {
		return res, failure.Conflict("usage already reported for this reservation") //nolint:wrapcheck
	}

	start, _ := reservation.SlotRange()
	status, reason := workflow.ClassifyUsage(workflow.UsageReport{
		Filed:              true,
		ReportedAttendance: req.ReportedStudents,
		Capacity:           reservation.ClassroomCapacity,
		ScheduledStart:     start,
	}, timezone.Now(), s.options())

	row := req.ToModel(status, reason, user)
	if err = s.repo.Insert(ctx, row); err != nil {
		log.Error().Err(err).Msg("failed to create usage report")

		return res, fmt.Errorf("failed to create usage report: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUsage)
		shared.InvalidateCaches(c, s.cache, cacheCountUsage)
	}()

	res.FromModel(row)
	res.ProfessorID = reservation.ProfessorID
	res.ProfessorName = reservation.ProfessorName
	res.ClassroomName = reservation.ClassroomName
	res.BuildingName = reservation.BuildingName
	res.Capacity = reservation.ClassroomCapacity
	res.Subject = reservation.Subject
	res.Date = timezone.Format(reservation.Date, constant.DateFormat)
	res.StartTime = reservation.StartTime
	res.EndTime = reservation.EndTime

	return res, nil
}

// GetBoard returns the verification queue: filed reports joined to their
// reservations, plus synthesized alert entries for approved reservations
// whose slot started more than the grace period ago without any report.
// Synthesized entries are not persisted and carry no ID until someone files.
func (s *serviceImpl) GetBoard(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUsageBoard")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUsage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for usage board")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count usage reports")

		return res, fmt.Errorf("failed to count usage reports: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get usage reports")

		return res, fmt.Errorf("failed to get usage reports: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	missing, err := s.missingReports(ctx)
	if err != nil {
		return res, err
	}

	res.Usages = append(res.Usages, missing...)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save usage board to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountUsages")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUsage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count usage reports")

		return res, fmt.Errorf("failed to count usage reports: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save usage count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUsage")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUsage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	usage, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get usage report")

		return res, fmt.Errorf("failed to get usage report: %w", err)
	}

	if usage.ID == constant.Empty {
		return res, failure.NotFound("usage report not found") //nolint:wrapcheck
	}

	res.FromModel(usage)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save usage report to cache")
		}
	}()

	return res, nil
}

// Review verifies or rejects a usage record. The status update is guarded by
// a rows-affected check on the reviewable statuses so two admins acting on
// the same record cannot both win.
func (s *serviceImpl) Review(ctx context.Context, id string, req dto.ReviewUsageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReviewUsage")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	usage, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get usage report")

		return fmt.Errorf("failed to get usage report: %w", err)
	}

	if usage.ID == constant.Empty {
		return failure.NotFound("usage report not found") //nolint:wrapcheck
	}

	notes := constant.Empty
	if usage.Notes != nil {
		notes = *usage.Notes
	}

	record := workflow.UsageRecord{
		ID:     usage.ID,
		Status: workflow.VerificationStatus(usage.Status),
		Notes:  notes,
	}

	decision := workflow.DecisionReject
	if req.Decision == constant.ReviewDecisionVerify {
		decision = workflow.DecisionVerify
	}

	now := timezone.Now()

	reviewed, err := workflow.ReviewUsage(record, decision, req.Notes, now)
	if err != nil {
		return mapEngineError(err)
	}

	err = s.repo.UpdateChecked(ctx, map[string]any{
		model.FieldStatus:     string(reviewed.Status),
		model.FieldNotes:      reviewed.Notes,
		model.FieldReviewedAt: now,
		"modified_at":         now,
		"modified_by":         admin,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Table: model.TableName, Value: id, Operator: gDto.FilterOperatorEq},
			gDto.Filter{
				ArgName:  "estado_in",
				Field:    model.FieldStatus,
				Table:    model.TableName,
				Value:    []string{string(workflow.VerificationPending), string(workflow.VerificationAlert)},
				Operator: gDto.FilterOperatorIn,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update usage status")

		return fmt.Errorf("failed to update usage status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUsage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete usage report from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUsage)
		shared.InvalidateCaches(c, s.cache, cacheCountUsage)
	}()

	return nil
}

// missingReports classifies approved reservations that have no filed report.
// Only those past the grace period come back, as alert entries.
func (s *serviceImpl) missingReports(ctx context.Context) ([]dto.UsageResponse, error) {
	now := timezone.Now()

	unreported, err := s.reservationRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    reservationModel.FieldStatus,
				Table:    reservationModel.TableName,
				Value:    string(workflow.StatusApproved),
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				ArgName:  "fecha_hasta",
				Field:    reservationModel.FieldDate,
				Table:    reservationModel.TableName,
				Value:    timezone.Format(now, constant.DateFormat),
				Operator: gDto.FilterOperatorLessEq,
			},
			gDto.Filter{
				Value:    "reservas.id NOT IN (SELECT reserva_id FROM usos)",
				Operator: gDto.FilterPlainQuery,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get unreported reservations")

		return nil, fmt.Errorf("failed to get unreported reservations: %w", err)
	}

	alerts := []dto.UsageResponse{}

	for _, r := range unreported {
		start, _ := r.SlotRange()

		status, reason := workflow.ClassifyUsage(workflow.UsageReport{
			Filed:          false,
			ScheduledStart: start,
		}, now, s.options())
		if status != workflow.VerificationAlert {
			continue
		}

		alerts = append(alerts, dto.UsageResponse{
			ReservationID:    r.ID,
			ProfessorID:      r.ProfessorID,
			ProfessorName:    r.ProfessorName,
			ClassroomName:    r.ClassroomName,
			BuildingName:     r.BuildingName,
			Capacity:         r.ClassroomCapacity,
			Subject:          r.Subject,
			Date:             timezone.Format(r.Date, constant.DateFormat),
			StartTime:        r.StartTime,
			EndTime:          r.EndTime,
			ReportedStudents: 0,
			Status:           string(workflow.VerificationAlert),
			Notes:            &reason,
		})
	}

	return alerts, nil
}

func filterByReservation(reservationID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationID,
				Table:    model.TableName,
				Value:    reservationID,
				Operator: gDto.FilterOperatorEq,
			},
		},
	}
}

func mapEngineError(err error) error {
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		return failure.UnprocessableEntity(err.Error()) //nolint:wrapcheck
	case errors.Is(err, workflow.ErrUnknownDecision):
		return failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	default:
		return fmt.Errorf("usage rules rejected the request: %w", err)
	}
}
