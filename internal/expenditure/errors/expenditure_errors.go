package expenditureerrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrInvalidExpenditureType = apperror.New(
		"INVALID_EXPENDITURE_TYPE",
		"expenditure type does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid expenditure request id",
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
	ErrExpenditureNotFound = apperror.New(
		apperror.CodeNotFound,
		"expenditure request not found",
		http.StatusNotFound,
	)
	ErrAmountNotPositive = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be positive",
		http.StatusBadRequest,
	)
	ErrCompanyInactive = apperror.New(
		apperror.CodeForbidden,
		"the employee's company is not active",
		http.StatusForbidden,
	)

	// Below/above are distinguished in the message only; both carry the
	// same CONFLICT code so callers branch on one signal.
	ErrAmountBelowMinimum = apperror.New(
		apperror.CodeConflict,
		"amount is below the minimum for this expenditure type",
		http.StatusConflict,
	)
	ErrAmountAboveMaximum = apperror.New(
		apperror.CodeConflict,
		"amount is above the maximum for this expenditure type",
		http.StatusConflict,
	)
)
