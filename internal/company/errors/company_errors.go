package companyerrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrCompanyEmailTaken = apperror.New(
		apperror.CodeConflict,
		"a company with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrContractRangeInvalid = apperror.New(
		apperror.CodeInvalidInput,
		"contract_start_date must be before or equal contract_end_date",
		http.StatusBadRequest,
	)
)
