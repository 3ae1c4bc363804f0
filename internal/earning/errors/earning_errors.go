package earningerrors

import (
	"net/http"

	"zestpay/internal/shared/apperror"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"earning amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrSourceRequired = apperror.New(
		apperror.CodeInvalidInput,
		"an earning source platform is required",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrGigOnly = apperror.New(
		apperror.CodeInvalidInput,
		"instant withdrawals are for gig workers; salaried employees use monthly withdrawal",
		http.StatusBadRequest,
	)
	// ErrDailyLimitExceeded dikirim dengan WithDetails berisi limit harian.
	ErrDailyLimitExceeded = apperror.New(
		apperror.CodeLimitExceeded,
		"requested amount exceeds today's withdrawal limit",
		http.StatusUnprocessableEntity,
	)
)
