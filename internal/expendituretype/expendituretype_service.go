package expendituretype

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	expendituretypeerrors "hrms/internal/expendituretype/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const expenditureTypeAllKey = "expenditure_types:all"

//go:generate mockgen -source=expendituretype_service.go -destination=mock/expendituretype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateExpenditureTypeRequest) (ExpenditureTypeResponse, error)
	GetAll(ctx context.Context) ([]ExpenditureTypeResponse, error)
	GetByID(ctx context.Context, id string) (ExpenditureTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateExpenditureTypeRequest) (ExpenditureTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("expendituretype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expendituretype.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func validatePriceBounds(minPrice, maxPrice *decimal.Decimal) error {
	if minPrice != nil && minPrice.IsNegative() {
		return expendituretypeerrors.ErrNegativePrice
	}
	if maxPrice != nil && maxPrice.IsNegative() {
		return expendituretypeerrors.ErrNegativePrice
	}
	if minPrice != nil && maxPrice != nil && minPrice.GreaterThan(*maxPrice) {
		return expendituretypeerrors.ErrInvalidPriceRange
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateExpenditureTypeRequest) (ExpenditureTypeResponse, error) {
	if err := validatePriceBounds(req.MinPrice, req.MaxPrice); err != nil {
		return ExpenditureTypeResponse{}, err
	}

	et := &ExpenditureType{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}

	if err := s.repo.Create(ctx, et); err != nil {
		s.logger.Error("create expenditure type persist failed", zap.Error(err))
		return ExpenditureTypeResponse{}, mapRepositoryError(err)
	}

	s.invalidateCache(ctx)
	s.logger.Info("create expenditure type success",
		zap.String("expenditure_type_id", et.ID.String()),
		zap.String("name", et.Name),
	)
	return mapToResponse(*et), nil
}

func (s *service) GetAll(ctx context.Context) ([]ExpenditureTypeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, expenditureTypeAllKey).Result()
		if err == nil {
			var resp []ExpenditureTypeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(expenditureTypeAllKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(types)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, expenditureTypeAllKey, jsonData, 30*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ExpenditureTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ExpenditureTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ExpenditureTypeResponse{}, expendituretypeerrors.ErrInvalidExpenditureTypeID
	}

	et, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenditureTypeResponse{}, expendituretypeerrors.ErrExpenditureTypeNotFound
		}
		return ExpenditureTypeResponse{}, err
	}
	return mapToResponse(*et), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateExpenditureTypeRequest) (ExpenditureTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ExpenditureTypeResponse{}, expendituretypeerrors.ErrInvalidExpenditureTypeID
	}

	et, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenditureTypeResponse{}, expendituretypeerrors.ErrExpenditureTypeNotFound
		}
		return ExpenditureTypeResponse{}, err
	}

	if req.Name != "" {
		et.Name = strings.TrimSpace(req.Name)
	}
	if req.MinPrice != nil {
		et.MinPrice = req.MinPrice
	}
	if req.MaxPrice != nil {
		et.MaxPrice = req.MaxPrice
	}
	if err := validatePriceBounds(et.MinPrice, et.MaxPrice); err != nil {
		return ExpenditureTypeResponse{}, err
	}

	if err := s.repo.Update(ctx, et); err != nil {
		s.logger.Error("update expenditure type persist failed", zap.String("expenditure_type_id", id), zap.Error(err))
		return ExpenditureTypeResponse{}, mapRepositoryError(err)
	}

	s.invalidateCache(ctx)
	return mapToResponse(*et), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return expendituretypeerrors.ErrInvalidExpenditureTypeID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, expenditureTypeAllKey).Err(); err != nil {
		s.logger.Warn("expenditure type cache invalidation failed", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return expendituretypeerrors.ErrExpenditureTypeNameTaken
	}
	return err
}

func mapToResponse(et ExpenditureType) ExpenditureTypeResponse {
	return ExpenditureTypeResponse{
		ID:       et.ID.String(),
		Name:     et.Name,
		MinPrice: et.MinPrice,
		MaxPrice: et.MaxPrice,
	}
}

func mapToListResponse(types []ExpenditureType) []ExpenditureTypeResponse {
	resp := make([]ExpenditureTypeResponse, len(types))
	for i, et := range types {
		resp[i] = mapToResponse(et)
	}
	return resp
}
