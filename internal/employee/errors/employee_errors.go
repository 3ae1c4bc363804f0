package employeeerrors

import (
	"net/http"

	"zestpay/internal/shared/apperror"
)

var (
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
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"monthly_salary must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidCompensationModel = apperror.New(
		apperror.CodeInvalidInput,
		"compensation_model must be SALARIED or GIG",
		http.StatusBadRequest,
	)
	ErrNotInvited = apperror.New(
		apperror.CodeInvalidState,
		"employee is not in invited state",
		http.StatusBadRequest,
	)
)
