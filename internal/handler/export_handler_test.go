package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-scheduler/internal/domain"
)

func newTestExportHandler(t *testing.T) (*ExportHandler, *proposalStore) {
	t.Helper()
	store := newProposalStore(time.Minute)
	h, err := NewExportHandler(&ScheduleHandler{store: store}, t.TempDir())
	require.NoError(t, err)
	return h, store
}

func TestExportHandler_Render_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestExportHandler(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedules/proposals/missing/export", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.Render(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportHandler_Render_Pending(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, store := newTestExportHandler(t)
	store.putPending("p1")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedules/proposals/p1/export", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}

	h.Render(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestExportHandler_Render_CSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, store := newTestExportHandler(t)
	store.complete("p1", []domain.ScheduleEntry{{
		AssignmentID: "a1", DisciplineID: "d1", TeacherID: "t1",
		GroupIDs: []string{"g1"}, RoomID: "r1", Day: 0, Slot: 1,
		StartWeek: 1, EndWeek: 1,
	}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedules/proposals/p1/export?format=csv", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}

	h.Render(c)
	require.Equal(t, http.StatusOK, w.Code)
}
