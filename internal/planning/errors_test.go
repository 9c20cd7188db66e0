package planning

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryHTTPStatus(t *testing.T) {
	cases := []struct {
		category Category
		status   int
	}{
		{CategoryReferential, http.StatusUnprocessableEntity},
		{CategoryNumeric, http.StatusUnprocessableEntity},
		{CategoryWindow, http.StatusUnprocessableEntity},
		{CategoryNoCandidates, http.StatusConflict},
		{CategoryInfeasible, http.StatusConflict},
		{CategoryInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.category.HTTPStatus(), "category %s", tc.category)
	}
}

func TestNewPlanningError_CarriesStatusIntoDetail(t *testing.T) {
	err := infeasibleError("cannot build schedule")
	assert.Equal(t, http.StatusConflict, err.Detail.Status)

	err = referentialError("unknown teacher")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Detail.Status)

	err = internalError("engine error")
	assert.Equal(t, http.StatusInternalServerError, err.Detail.Status)
}
