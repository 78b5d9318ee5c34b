package usererrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrNotAnEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"user is not an employee",
		http.StatusBadRequest,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"a user with this email already exists",
		http.StatusConflict,
	)
	ErrManagerNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"manager does not belong to this company",
		http.StatusBadRequest,
	)
)
