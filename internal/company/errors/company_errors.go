package companyerrors

import (
	"net/http"

	"zestpay/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidDomain = apperror.New(
		apperror.CodeInvalidInput,
		"company domain is required for employee registration",
		http.StatusBadRequest,
	)
	ErrDomainTaken = apperror.New(
		apperror.CodeConflict,
		"a company with this domain is already registered",
		http.StatusConflict,
	)
	ErrDomainNotRegistered = apperror.New(
		apperror.CodeDomainNotRegistered,
		"this email domain is not registered with any company",
		http.StatusForbidden,
	)
)
