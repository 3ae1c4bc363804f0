package subscriptionerrors

import (
	"net/http"

	"zestpay/internal/shared/apperror"
)

var (
	ErrSubscriptionRequired = apperror.New(
		apperror.CodeSubscriptionRequired,
		"an active subscription is required for withdrawals",
		http.StatusPaymentRequired,
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
)
