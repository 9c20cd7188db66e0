package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-scheduler/internal/cpsat/fake"
	"github.com/noah-isme/campus-scheduler/internal/domain"
	"github.com/noah-isme/campus-scheduler/internal/dto"
	"github.com/noah-isme/campus-scheduler/internal/planning"
)

func testWorld() domain.World {
	return domain.World{
		Teachers: []domain.Teacher{{
			ID: "t1", Name: "Ada", WorkDays: []int{0, 1, 2, 3, 4},
			MaxClassesPerDay: 4, MaxClassesPerWeek: 20,
			ContractStartWeek: 1, ContractEndWeek: 15,
		}},
		Rooms: []domain.Room{{ID: "r1", Name: "101", Capacity: 30}},
		Groups: []domain.Group{{
			ID: "g1", Name: "CS-101", Size: 20,
			ShiftStartSlot: 1, ShiftEndSlot: 8,
			ProgramStartWeek: 1, ProgramEndWeek: 15,
		}},
		Disciplines: []domain.Discipline{{ID: "d1", Name: "Algorithms", Kind: domain.DisciplineKindLecture}},
		Assignments: []domain.Assignment{{
			ID: "a1", DisciplineID: "d1", TeacherID: "t1", GroupIDs: []string{"g1"},
			StartWeek: 1, EndWeek: 1, SessionsPerWeek: 1,
		}},
	}
}

func newTestHandler() *ScheduleHandler {
	return NewScheduleHandler(fake.New(), planning.Options{TimeLimit: 5 * time.Second, Workers: 1}, nil, nil, time.Minute, nil, nil)
}

func TestScheduleHandler_Generate_BadJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewBufferString("{not json"))

	h.Generate(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandler_Generate_Feasible(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedules/generate", requestBody(t, testWorld()))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Generate(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleHandler_Generate_Infeasible(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	world := testWorld()
	world.Groups[0].Size = 100 // exceeds every room's capacity

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/schedules/generate", requestBody(t, world))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Generate(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestScheduleHandler_Proposal_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/schedules/proposals/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.Proposal(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func requestBody(t *testing.T, world domain.World) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(dto.GenerateScheduleRequest{World: world})
	require.NoError(t, err)
	return bytes.NewReader(body)
}
