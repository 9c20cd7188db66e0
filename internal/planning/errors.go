package planning

import (
	"net/http"

	appErrors "github.com/noah-isme/campus-scheduler/pkg/errors"
)

// Category names the payload category a PlanningError carries in its
// Category field. Every failure path in the generator maps to exactly one.
type Category string

const (
	CategoryReferential  Category = "REFERENTIAL"
	CategoryNumeric      Category = "NUMERIC"
	CategoryWindow       Category = "WINDOW"
	CategoryNoCandidates Category = "NO_CANDIDATES"
	CategoryInfeasible   Category = "INFEASIBLE"
	CategoryInternal     Category = "INTERNAL"
)

// HTTPStatus maps a category to the HTTP status the AMBIENT STACK "Errors"
// contract promises: referential/numeric/window input defects are 422,
// no-candidates/infeasible are a 409 conflict between the request and the
// current resources, and internal is a 500.
func (c Category) HTTPStatus() int {
	switch c {
	case CategoryReferential, CategoryNumeric, CategoryWindow:
		return http.StatusUnprocessableEntity
	case CategoryNoCandidates, CategoryInfeasible:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PlanningError is the one error kind the generator ever returns. It
// carries a human-readable message and the category a collaborator can use
// to decide whether retrying with relaxed constraints makes sense.
type PlanningError struct {
	Detail   *appErrors.Error
	Category Category
}

func (e *PlanningError) Error() string {
	if e == nil || e.Detail == nil {
		return "<nil>"
	}
	return e.Detail.Error()
}

// Unwrap exposes the underlying *appErrors.Error so callers can use
// errors.As against the shared envelope type.
func (e *PlanningError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Detail
}

func newPlanningError(category Category, message string) *PlanningError {
	return &PlanningError{
		Detail:   appErrors.New(string(category), category.HTTPStatus(), message),
		Category: category,
	}
}

func referentialError(message string) *PlanningError {
	return newPlanningError(CategoryReferential, message)
}

func numericError(message string) *PlanningError {
	return newPlanningError(CategoryNumeric, message)
}

func windowError(message string) *PlanningError {
	return newPlanningError(CategoryWindow, message)
}

func noCandidatesError(message string) *PlanningError {
	return newPlanningError(CategoryNoCandidates, message)
}

func infeasibleError(message string) *PlanningError {
	return newPlanningError(CategoryInfeasible, message)
}

func internalError(message string) *PlanningError {
	return newPlanningError(CategoryInternal, message)
}
