package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"aulaboard/config"
	"aulaboard/infras/otel"
	"aulaboard/infras/postgres"
	classroomModel "aulaboard/internal/domains/classroom/model"
	classroomRepo "aulaboard/internal/domains/classroom/repository"
	"aulaboard/internal/domains/reservation/model"
	"aulaboard/internal/domains/reservation/model/dto"
	"aulaboard/internal/domains/reservation/repository"
	scheduleModel "aulaboard/internal/domains/schedule/model"
	scheduleRepo "aulaboard/internal/domains/schedule/repository"
	"aulaboard/internal/workflow"
	"aulaboard/shared"
	"aulaboard/shared/cache"
	"aulaboard/shared/constant"
	gDto "aulaboard/shared/dto"
	"aulaboard/shared/failure"
	"aulaboard/shared/timezone"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Submit(ctx context.Context, req dto.SubmitReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Review(ctx context.Context, id string, req dto.ReviewReservationRequest) error
}

type serviceImpl struct {
	repo          repository.Reservation
	classroomRepo classroomRepo.Classroom
	scheduleRepo  scheduleRepo.Schedule
	db            *postgres.Connection
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(
	repo repository.Reservation,
	classroomRepo classroomRepo.Classroom,
	scheduleRepo scheduleRepo.Schedule,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:          repo,
		classroomRepo: classroomRepo,
		scheduleRepo:  scheduleRepo,
		db:            db,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

func (s *serviceImpl) options() workflow.Options {
	return workflow.Options{
		EnforceCapacity: s.cfg.App.Workflow.EnforceCapacity,
		ReportGrace:     time.Duration(s.cfg.App.Workflow.ReportGraceMin) * time.Minute,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	professorID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	candidate := req.ToSubmitRequest(professorID)

	classroom, err := s.classroomRepo.Get(ctx, shared.FilterByID(req.ClassroomID, classroomModel.FieldID, classroomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get classroom")

		return res, fmt.Errorf("failed to get classroom: %w", err)
	}

	if classroom.ID == constant.Empty {
		return res, failure.NotFound("classroom not found") //nolint:wrapcheck
	}

	existing, err := s.bookedSlots(ctx, req.ClassroomID, candidate.Date, nil)
	if err != nil {
		return res, err
	}

	reservation, err := workflow.SubmitReservation(
		candidate,
		workflow.Classroom{ID: classroom.ID, Capacity: classroom.Capacity},
		existing,
		timezone.Now(),
		s.options(),
	)
	if err != nil {
		return res, mapEngineError(err)
	}

	row := dto.FromEngine(reservation, req, professorID)
	if err = s.repo.Insert(ctx, row); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	res.FromModel(row)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin && reservation.ProfessorID != user {
		return res, failure.Forbidden("reservation belongs to another professor") //nolint:wrapcheck
	}

	res.FromModel(reservation)

	return res, nil
}

// Review approves or rejects a pending reservation. The room's rows for that
// date are locked for the duration of the transaction so two admins cannot
// approve overlapping requests, and the status update itself is guarded by a
// rows-affected check in case the row changed between read and write. The
// exclusion constraint on approved slots is the final line.
func (s *serviceImpl) Review(ctx context.Context, id string, req dto.ReviewReservationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReviewReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	target, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if target.ID == constant.Empty {
		return failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback review transaction")
			}
		}
	}()

	locked, err := s.repo.GetAllLockedTx(ctx, tx, sameSlotFilter(target.ClassroomID, target.Date))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock reservations for review")

		return fmt.Errorf("failed to lock reservations for review: %w", err)
	}

	current, approved := splitLocked(locked, id)
	if current == nil {
		return failure.UnprocessableEntity("reservation is no longer reviewable") //nolint:wrapcheck
	}

	start, end := current.SlotRange()
	engine := workflow.Reservation{
		ID:          current.ID,
		ProfessorID: current.ProfessorID,
		ClassroomID: current.ClassroomID,
		Date:        current.Date,
		Start:       start,
		End:         end,
		Status:      workflow.ReservationStatus(current.Status),
	}

	decision := workflow.DecisionReject
	if req.Decision == constant.ReviewDecisionApprove {
		decision = workflow.DecisionApprove
	}

	if decision == workflow.DecisionApprove {
		slots, err := s.scheduleSlots(ctx, target.ClassroomID, target.Date)
		if err != nil {
			return err
		}

		approved = append(approved, slots...)
	}

	now := timezone.Now()

	reviewed, err := workflow.ReviewReservation(engine, decision, approved, now)
	if err != nil {
		return mapEngineError(err)
	}

	err = s.repo.UpdateCheckedTx(ctx, tx, map[string]any{
		model.FieldStatus:     string(reviewed.Status),
		model.FieldReviewedAt: now,
		"modified_at":         now,
		"modified_by":         admin,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Table: model.TableName, Value: id, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldStatus, Table: model.TableName, Value: string(workflow.StatusPending), Operator: gDto.FilterOperatorEq},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return mapPqConflict(err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit review transaction")

		return mapPqConflict(err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return nil
}

// bookedSlots collects every slot still in play for the room on the given
// date: pending and approved reservations plus the recurring schedule entries
// landing on that weekday. Exclude skips one reservation ID.
func (s *serviceImpl) bookedSlots(ctx context.Context, classroomID string, date time.Time, exclude *string) ([]workflow.BookedSlot, error) {
	filter := sameSlotFilter(classroomID, date)

	reservations, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations for conflict check")

		return nil, fmt.Errorf("failed to get reservations for conflict check: %w", err)
	}

	slots := make([]workflow.BookedSlot, 0, len(reservations))

	for _, r := range reservations {
		if exclude != nil && r.ID == *exclude {
			continue
		}

		slots = append(slots, r.ToBookedSlot())
	}

	scheduled, err := s.scheduleSlots(ctx, classroomID, date)
	if err != nil {
		return nil, err
	}

	return append(slots, scheduled...), nil
}

func (s *serviceImpl) scheduleSlots(ctx context.Context, classroomID string, date time.Time) ([]workflow.BookedSlot, error) {
	entries, err := s.scheduleRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: scheduleModel.FieldClassroomID, Table: scheduleModel.TableName, Value: classroomID, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: scheduleModel.FieldDayOfWeek, Table: scheduleModel.TableName, Value: int(date.Weekday()), Operator: gDto.FilterOperatorEq},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedules for conflict check")

		return nil, fmt.Errorf("failed to get schedules for conflict check: %w", err)
	}

	slots := make([]workflow.BookedSlot, len(entries))
	for i, entry := range entries {
		slots[i] = workflow.BookedSlot{
			ID:     entry.ID,
			Source: workflow.SourceSchedule,
			Interval: workflow.Interval{
				Start: timezone.CombineDateTime(date, entry.StartTime),
				End:   timezone.CombineDateTime(date, entry.EndTime),
			},
		}
	}

	return slots, nil
}

func sameSlotFilter(classroomID string, date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldClassroomID, Table: model.TableName, Value: classroomID, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldDate, Table: model.TableName, Value: timezone.Format(date, constant.DateFormat), Operator: gDto.FilterOperatorEq},
			gDto.Filter{
				ArgName:  "estado_in",
				Field:    model.FieldStatus,
				Table:    model.TableName,
				Value:    []string{string(workflow.StatusPending), string(workflow.StatusApproved)},
				Operator: gDto.FilterOperatorIn,
			},
		},
	}
}

func splitLocked(locked []model.Reservation, id string) (*model.Reservation, []workflow.BookedSlot) {
	var current *model.Reservation

	approved := []workflow.BookedSlot{}

	for i := range locked {
		if locked[i].ID == id {
			current = &locked[i]

			continue
		}

		if locked[i].Status == string(workflow.StatusApproved) {
			approved = append(approved, locked[i].ToBookedSlot())
		}
	}

	return current, approved
}

func mapEngineError(err error) error {
	var conflict *workflow.SlotConflictError
	if errors.As(err, &conflict) {
		return failure.Conflict(fmt.Sprintf("slot already taken by %s %s", conflict.Source, conflict.ConflictingID)) //nolint:wrapcheck
	}

	switch {
	case errors.Is(err, workflow.ErrInvalidTimeRange),
		errors.Is(err, workflow.ErrInvalidAttendance),
		errors.Is(err, workflow.ErrUnknownDecision):
		return failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	case errors.Is(err, workflow.ErrOverCapacity),
		errors.Is(err, workflow.ErrInvalidTransition):
		return failure.UnprocessableEntity(err.Error()) //nolint:wrapcheck
	default:
		return fmt.Errorf("reservation rules rejected the request: %w", err)
	}
}

// mapPqConflict translates an exclusion constraint violation on approved
// slots into the same conflict failure the in-process scan produces.
func mapPqConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
		return failure.Conflict("slot already taken by an approved reservation") //nolint:wrapcheck
	}

	return fmt.Errorf("failed to review reservation: %w", err)
}
