package company

import (
	"context"
	"errors"
	"strings"
	"time"

	companyerrors "hrms/internal/company/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	c := &Company{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(req.Name),
		Title:           req.Title,
		MersisNo:        req.MersisNo,
		TaxNumber:       req.TaxNumber,
		Logo:            req.Logo,
		TelephoneNumber: req.TelephoneNumber,
		Address:         req.Address,
		Email:           req.Email,
		IsActive:        true,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	var err error
	if c.FoundationYear, err = parseOptionalDate(req.FoundationYear); err != nil {
		return CompanyResponse{}, err
	}
	if c.ContractStartDate, err = parseOptionalDate(req.ContractStartDate); err != nil {
		return CompanyResponse{}, err
	}
	if c.ContractEndDate, err = parseOptionalDate(req.ContractEndDate); err != nil {
		return CompanyResponse{}, err
	}
	if c.ContractStartDate != nil && c.ContractEndDate != nil && c.ContractStartDate.After(*c.ContractEndDate) {
		return CompanyResponse{}, companyerrors.ErrContractRangeInvalid
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create company persist failed", zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create company success", zap.String("company_id", c.ID.String()))
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}

	if req.Name != "" {
		c.Name = strings.TrimSpace(req.Name)
	}
	if req.Title != nil {
		c.Title = req.Title
	}
	if req.MersisNo != nil {
		c.MersisNo = req.MersisNo
	}
	if req.TaxNumber != nil {
		c.TaxNumber = req.TaxNumber
	}
	if req.Logo != nil {
		c.Logo = req.Logo
	}
	if req.TelephoneNumber != nil {
		c.TelephoneNumber = req.TelephoneNumber
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if req.FoundationYear != nil {
		if c.FoundationYear, err = parseOptionalDate(req.FoundationYear); err != nil {
			return CompanyResponse{}, err
		}
	}
	if req.ContractStartDate != nil {
		if c.ContractStartDate, err = parseOptionalDate(req.ContractStartDate); err != nil {
			return CompanyResponse{}, err
		}
	}
	if req.ContractEndDate != nil {
		if c.ContractEndDate, err = parseOptionalDate(req.ContractEndDate); err != nil {
			return CompanyResponse{}, err
		}
	}
	if c.ContractStartDate != nil && c.ContractEndDate != nil && c.ContractStartDate.After(*c.ContractEndDate) {
		return CompanyResponse{}, companyerrors.ErrContractRangeInvalid
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("update company persist failed", zap.String("company_id", id), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return companyerrors.ErrInvalidCompanyID
	}
	return s.repo.Delete(ctx, id)
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return nil, companyerrors.ErrInvalidDateFormat
	}
	return &t, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format("2006-01-02")
	return &v
}

func mapToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                c.ID.String(),
		Name:              c.Name,
		Title:             c.Title,
		MersisNo:          c.MersisNo,
		TaxNumber:         c.TaxNumber,
		Logo:              c.Logo,
		TelephoneNumber:   c.TelephoneNumber,
		Address:           c.Address,
		Email:             c.Email,
		FoundationYear:    formatOptionalDate(c.FoundationYear),
		ContractStartDate: formatOptionalDate(c.ContractStartDate),
		ContractEndDate:   formatOptionalDate(c.ContractEndDate),
		IsActive:          c.IsActive,
	}
}
