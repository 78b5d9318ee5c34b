package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "hrms/internal/auth/errors"
	"hrms/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 12 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, userID string) (SessionUser, error)
}

type service struct {
	users  user.Repository
	logger *zap.Logger
}

func NewService(users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer as a bad password; do not reveal which one failed.
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return LoginResponse{}, autherrors.ErrUserInactive
	}

	token, err := issueToken(u)
	if err != nil {
		s.logger.Error("issue token failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return LoginResponse{
		AccessToken: token,
		User:        mapToSessionUser(u),
	}, nil
}

func (s *service) Me(ctx context.Context, userID string) (SessionUser, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionUser{}, autherrors.ErrInvalidToken
		}
		return SessionUser{}, err
	}
	return mapToSessionUser(u), nil
}

func issueToken(u *user.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":    u.ID.String(),
		"company_id": u.CompanyID.String(),
		"role":       u.Role,
		"iat":        now.Unix(),
		"exp":        now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToSessionUser(u *user.User) SessionUser {
	return SessionUser{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CompanyID: u.CompanyID.String(),
	}
}
