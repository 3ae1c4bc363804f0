package withdrawalerrors

import (
	"net/http"

	"zestpay/internal/shared/apperror"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"withdrawal amount must be greater than zero",
		http.StatusBadRequest,
	)
	// ErrLimitExceeded dikirim dengan WithDetails berisi sisa limit.
	ErrLimitExceeded = apperror.New(
		apperror.CodeLimitExceeded,
		"requested amount exceeds the available withdrawal limit",
		http.StatusUnprocessableEntity,
	)
	ErrWithdrawalNotFound = apperror.New(
		apperror.CodeNotFound,
		"withdrawal not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"withdrawal has already been decided",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrSalariedOnly = apperror.New(
		apperror.CodeInvalidInput,
		"monthly withdrawals are for salaried employees; gig workers use instant withdrawal",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a rejection reason is required",
		http.StatusBadRequest,
	)
)
