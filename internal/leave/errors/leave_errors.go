package leaveerrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrInvalidLeaveType = apperror.New(
		"INVALID_LEAVE_TYPE",
		"leave type does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		"INVALID_DATE_RANGE",
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrDecisionNoteRequired = apperror.New(
		apperror.CodeInvalidInput,
		"decision_note is required when rejecting",
		http.StatusBadRequest,
	)
)
