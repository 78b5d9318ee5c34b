package expendituretypeerrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrInvalidExpenditureTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid expenditure type id",
		http.StatusBadRequest,
	)
	ErrExpenditureTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"expenditure type not found",
		http.StatusNotFound,
	)
	ErrExpenditureTypeNameTaken = apperror.New(
		apperror.CodeConflict,
		"an expenditure type with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidPriceRange = apperror.New(
		apperror.CodeInvalidInput,
		"min_price must be less than or equal max_price",
		http.StatusBadRequest,
	)
	ErrNegativePrice = apperror.New(
		apperror.CodeInvalidInput,
		"price bounds must not be negative",
		http.StatusBadRequest,
	)
)
