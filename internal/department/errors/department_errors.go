package departmenterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrParentDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Parent department not found in this company",
		http.StatusNotFound,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Manager not found in this company",
		http.StatusNotFound,
	)
	ErrDepartmentHasDependents = apperror.New(
		apperror.CodeConflict,
		"Department still has employees or child departments",
		http.StatusConflict,
	)
	ErrSelfParent = apperror.New(
		apperror.CodeInvalidInput,
		"Department cannot be its own parent",
		http.StatusBadRequest,
	)
	ErrCycleDetected = apperror.New(
		apperror.CodeInvalidInput,
		"Parent change would create a cycle in the hierarchy",
		http.StatusBadRequest,
	)
	ErrDepartmentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Department with the same name already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
)
