package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"aulaboard/config"
	"aulaboard/infras/otel"
	buildingModel "aulaboard/internal/domains/building/model"
	buildingRepo "aulaboard/internal/domains/building/repository"
	"aulaboard/internal/domains/classroom/model"
	"aulaboard/internal/domains/classroom/model/dto"
	"aulaboard/internal/domains/classroom/repository"
	"aulaboard/shared"
	"aulaboard/shared/cache"
	"aulaboard/shared/constant"
	gDto "aulaboard/shared/dto"
	"aulaboard/shared/failure"
)

const (
	cacheGetClassroom    = "classroom:get"
	cacheGetAllClassroom = "classroom:gets"
	cacheCountClassroom  = "classroom:count"
)

type Classroom interface {
	Create(ctx context.Context, req dto.CreateClassroomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetClassroomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ClassroomResponse, error)
	Update(ctx context.Context, req dto.UpdateClassroomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Classroom
	buildingRepo buildingRepo.Building
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Classroom,
	buildingRepo buildingRepo.Building,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Classroom {
	return &serviceImpl{
		repo:         repo,
		buildingRepo: buildingRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateClassroomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateClassroom")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.buildingRepo.Exist(ctx, shared.FilterByID(req.BuildingID, buildingModel.FieldID, buildingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if building exists")

		return fmt.Errorf("failed to check if building exists: %w", err)
	}

	if !exist {
		return failure.NotFound("building not found") //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create classroom")

		return fmt.Errorf("failed to create classroom: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllClassroom)
		shared.InvalidateCaches(c, s.cache, cacheCountClassroom)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetClassroomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllClassrooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllClassroom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for classrooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count classrooms")

		return res, fmt.Errorf("failed to count classrooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get classrooms")

		return res, fmt.Errorf("failed to get classrooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save classrooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountClassrooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountClassroom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count classrooms")

		return res, fmt.Errorf("failed to count classrooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save classroom count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ClassroomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetClassroom")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetClassroom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	classroom, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get classroom")

		return res, fmt.Errorf("failed to get classroom: %w", err)
	}

	if classroom.ID == constant.Empty {
		return res, failure.NotFound("classroom not found") //nolint:wrapcheck
	}

	res.FromModel(classroom)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save classroom to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateClassroomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateClassroom")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateClassroomRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if classroom exists")

		return fmt.Errorf("failed to check if classroom exists: %w", err)
	}

	if !exist {
		return failure.NotFound("classroom not found") //nolint:wrapcheck
	}

	if req.BuildingID != constant.Empty {
		exist, err = s.buildingRepo.Exist(ctx, shared.FilterByID(req.BuildingID, buildingModel.FieldID, buildingModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if building exists")

			return fmt.Errorf("failed to check if building exists: %w", err)
		}

		if !exist {
			return failure.NotFound("building not found") //nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update classroom")

		return fmt.Errorf("failed to update classroom: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetClassroom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete classroom from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllClassroom)
		shared.InvalidateCaches(c, s.cache, cacheCountClassroom)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteClassroom")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if classroom exists")

		return fmt.Errorf("failed to check if classroom exists: %w", err)
	}

	if !exist {
		return failure.NotFound("classroom not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete classroom")

		return fmt.Errorf("failed to delete classroom: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetClassroom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete classroom from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllClassroom)
		shared.InvalidateCaches(c, s.cache, cacheCountClassroom)
	}()

	return nil
}
