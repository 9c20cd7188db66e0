package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-scheduler/internal/cpsat"
	"github.com/noah-isme/campus-scheduler/internal/domain"
	"github.com/noah-isme/campus-scheduler/internal/dto"
	"github.com/noah-isme/campus-scheduler/internal/planning"
	appErrors "github.com/noah-isme/campus-scheduler/pkg/errors"
	"github.com/noah-isme/campus-scheduler/pkg/jobs"
	"github.com/noah-isme/campus-scheduler/pkg/metrics"
	"github.com/noah-isme/campus-scheduler/pkg/response"
)

// ScheduleHandler exposes the generator over HTTP: a synchronous path for
// small worlds and an async path, backed by the job queue, for larger ones.
type ScheduleHandler struct {
	engine   cpsat.Engine
	opts     planning.Options
	queue    *jobs.Queue
	store    *proposalStore
	cache    *redis.Client
	cacheTTL time.Duration
	metrics  *metrics.Registry
	logger   *zap.Logger
	validate *validator.Validate
}

// NewScheduleHandler wires an engine, async queue and optional Redis cache
// into one handler. cache may be nil, in which case proposals are never
// cached across processes.
func NewScheduleHandler(engine cpsat.Engine, opts planning.Options, queue *jobs.Queue, cache *redis.Client, cacheTTL time.Duration, reg *metrics.Registry, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		engine:   engine,
		opts:     opts,
		queue:    queue,
		store:    newProposalStore(30 * time.Minute),
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  reg,
		logger:   logger,
		validate: validator.New(),
	}
}

// Generate godoc
// @Summary Generate a conflict-free weekly schedule
// @Description Validates the supplied world snapshot and runs the CP-SAT solver. Pass ?async=1 to receive a proposal ID instead of blocking on the solve.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "World snapshot"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "world snapshot failed validation"))
		return
	}

	if c.Query("async") == "1" && h.queue != nil {
		h.generateAsync(c, req)
		return
	}
	h.generateSync(c, req)
}

func (h *ScheduleHandler) generateSync(c *gin.Context, req dto.GenerateScheduleRequest) {
	key := h.cacheKey(req)
	if cached, ok := h.readCache(c.Request.Context(), key); ok {
		h.metrics.ObserveCache(true)
		response.JSON(c, http.StatusOK, dto.GenerateScheduleResponse{Mode: "sync", Entries: cached}, nil)
		return
	}
	h.metrics.ObserveCache(false)

	start := time.Now()
	entries, err := planning.Generate(c.Request.Context(), h.engine, req.World, h.opts)
	h.observeSolve(err, start, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.writeCache(c.Request.Context(), key, entries)
	response.JSON(c, http.StatusOK, dto.GenerateScheduleResponse{Mode: "sync", Entries: entries}, nil)
}

func (h *ScheduleHandler) generateAsync(c *gin.Context, req dto.GenerateScheduleRequest) {
	id := uuid.NewString()
	h.store.putPending(id)

	job := jobs.Job{ID: id, Type: "schedule.generate", Payload: req}
	if err := h.queue.Enqueue(job); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusServiceUnavailable, "could not accept generate request"))
		return
	}

	response.JSON(c, http.StatusAccepted, dto.GenerateScheduleAccepted{ProposalID: id, Status: proposalPending}, nil)
}

// Proposal godoc
// @Summary Fetch an async schedule proposal by ID
// @Tags Scheduler
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/proposals/{id} [get]
func (h *ScheduleHandler) Proposal(c *gin.Context) {
	id := c.Param("id")
	entry, ok := h.store.get(id)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired"))
		return
	}
	response.JSON(c, http.StatusOK, dto.ProposalResponse{
		ProposalID: id,
		Status:     entry.status,
		Entries:    entry.entries,
		Error:      entry.errMsg,
	}, nil)
}

// jobHandler is the jobs.Handler run by the worker queue for async generate
// requests. Registered by the caller that builds the queue.
func (h *ScheduleHandler) jobHandler(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(dto.GenerateScheduleRequest)
	if !ok {
		h.store.fail(job.ID, appErrors.ErrInternal)
		return appErrors.ErrInternal
	}

	start := time.Now()
	entries, err := planning.Generate(ctx, h.engine, req.World, h.opts)
	h.observeSolve(err, start, req)
	if err != nil {
		h.store.fail(job.ID, err)
		return err
	}

	h.store.complete(job.ID, entries)
	h.writeCache(ctx, h.cacheKey(req), entries)
	return nil
}

// JobHandler exposes jobHandler so main can register it with the queue
// without this package importing the queue's constructor cycle.
func (h *ScheduleHandler) JobHandler() jobs.Handler {
	return h.jobHandler
}

// SetQueue attaches the worker queue once it has been constructed from
// JobHandler, breaking the construction cycle between handler and queue.
func (h *ScheduleHandler) SetQueue(queue *jobs.Queue) {
	h.queue = queue
}

// StartProposalSweeper periodically drops expired proposal entries so a
// failed or never-polled async job doesn't linger in memory until process
// exit. It blocks until ctx is cancelled; callers run it in a goroutine
// alongside the worker queue.
func (h *ScheduleHandler) StartProposalSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.store.sweep()
		}
	}
}

func (h *ScheduleHandler) observeSolve(err error, start time.Time, req dto.GenerateScheduleRequest) {
	status := "ok"
	if err != nil {
		status = "error"
		var pe *planning.PlanningError
		if errors.As(err, &pe) {
			status = string(pe.Category)
		}
	}
	sessions := 0
	for _, a := range req.World.Assignments {
		sessions += a.SessionsPerWeek
	}
	// planning.Generate does not report its candidate-cell count, so this
	// handler always records 0 for the candidate-cells histogram.
	h.metrics.ObserveSolve(status, time.Since(start), sessions, 0)
}

func (h *ScheduleHandler) cacheKey(req dto.GenerateScheduleRequest) string {
	body, _ := json.Marshal(req)
	sum := sha256.Sum256(body)
	return "schedule:" + hex.EncodeToString(sum[:])
}

func (h *ScheduleHandler) readCache(ctx context.Context, key string) ([]domain.ScheduleEntry, bool) {
	if h.cache == nil {
		return nil, false
	}
	raw, err := h.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []domain.ScheduleEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (h *ScheduleHandler) writeCache(ctx context.Context, key string, entries interface{}) {
	if h.cache == nil {
		return
	}
	body, err := json.Marshal(entries)
	if err != nil {
		return
	}
	h.cache.Set(ctx, key, body, h.cacheTTL) //nolint:errcheck
}
