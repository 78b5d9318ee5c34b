package user

import (
	"context"
	"errors"
	"strings"

	usererrors "hrms/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	CreateEmployee(ctx context.Context, companyID string, req CreateEmployeeRequest) (CreatedEmployeeResponse, error)
	ListEmployees(ctx context.Context, companyID string) ([]UserResponse, error)
	GetEmployee(ctx context.Context, id string) (UserResponse, error)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (UserResponse, error)
	DeactivateEmployee(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateEmployee(ctx context.Context, companyID string, req CreateEmployeeRequest) (CreatedEmployeeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CreatedEmployeeResponse{}, usererrors.ErrInvalidUserID
	}

	var managerUUID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		parsed, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return CreatedEmployeeResponse{}, usererrors.ErrInvalidUserID
		}
		manager, err := s.repo.FindByID(ctx, parsed.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return CreatedEmployeeResponse{}, usererrors.ErrUserNotFound
			}
			return CreatedEmployeeResponse{}, err
		}
		// A manager in another company must not be attachable; it would
		// leak requests across company boundaries.
		if manager.CompanyID != companyUUID {
			return CreatedEmployeeResponse{}, usererrors.ErrManagerNotInCompany
		}
		managerUUID = &parsed
	}

	rawPassword, err := GeneratePassword(8)
	if err != nil {
		return CreatedEmployeeResponse{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return CreatedEmployeeResponse{}, err
	}

	u := &User{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		ManagerID: managerUUID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  string(hash),
		Role:      "Employee",
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return CreatedEmployeeResponse{}, mapUserRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("user_id", u.ID.String()),
		zap.String("company_id", companyID),
	)

	return CreatedEmployeeResponse{
		UserResponse:    mapToUserResponse(*u),
		InitialPassword: rawPassword,
	}, nil
}

func (s *service) ListEmployees(ctx context.Context, companyID string) ([]UserResponse, error) {
	users, err := s.repo.ListEmployeesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToUserResponse(u)
	}
	return resp, nil
}

func (s *service) GetEmployee(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	if u.Role != "Employee" {
		return UserResponse{}, usererrors.ErrNotAnEmployee
	}
	return mapToUserResponse(*u), nil
}

func (s *service) UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	if u.Role != "Employee" {
		return UserResponse{}, usererrors.ErrNotAnEmployee
	}

	if req.FirstName != "" {
		u.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		u.LastName = strings.TrimSpace(req.LastName)
	}
	if req.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			u.ManagerID = nil
		} else {
			parsed, err := uuid.Parse(*req.ManagerID)
			if err != nil {
				return UserResponse{}, usererrors.ErrInvalidUserID
			}
			manager, err := s.repo.FindByID(ctx, parsed.String())
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return UserResponse{}, usererrors.ErrUserNotFound
				}
				return UserResponse{}, err
			}
			if manager.CompanyID != u.CompanyID {
				return UserResponse{}, usererrors.ErrManagerNotInCompany
			}
			u.ManagerID = &parsed
		}
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update employee persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapUserRepositoryError(err)
	}

	return mapToUserResponse(*u), nil
}

func (s *service) DeactivateEmployee(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}
	if u.Role != "Employee" {
		return usererrors.ErrNotAnEmployee
	}

	u.IsActive = false
	return s.repo.Update(ctx, u)
}

func mapUserRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_users_email" {
			return usererrors.ErrEmailTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_email") {
		return usererrors.ErrEmailTaken
	}

	return err
}

func mapToUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		CompanyID: u.CompanyID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}
