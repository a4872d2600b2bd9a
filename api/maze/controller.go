package mazeapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/api/identity"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextMazeID       = "mazeID"
	defaultArchiveLimit = 20
	requestTimeout      = 5 * time.Second
)

// MazeController serves maze sessions.
type MazeController struct {
	sessions     i.MazeSessions
	logger       i.Logger
	stepInterval time.Duration
}

// NewMazeController initializes a MazeController. stepInterval is the default
// pace of the watch stream.
func NewMazeController(ms i.MazeSessions, logger i.Logger, stepInterval time.Duration) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("maze sessions are required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if stepInterval <= 0 {
		return nil, errors.New("step interval must be positive")
	}

	return &MazeController{
		sessions:     ms,
		logger:       logger,
		stepInterval: stepInterval,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("", mc.archived)
		mazes.GET("/:ID", mc.withID, mc.snapshot)
		mazes.GET("/:ID/ascii", mc.withID, mc.ascii)
	}
}

// RegisterProtected registers routes that need the maze's own token.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes/:ID", mc.withID, mc.requireOwner)
	{
		mazes.POST("/start", mc.start)
		mazes.POST("/step", mc.step)
		mazes.POST("/run", mc.run)
		mazes.POST("/reset", mc.reset)
		mazes.DELETE("", mc.delete)
		mazes.GET("/watch", mc.watch)
	}
}

// create handles maze creation requests.
func (mc *MazeController) create(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	info, token, err := mc.sessions.Create(reqCtx, request.Size, request.Seed)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	snap, err := mc.sessions.Snapshot(reqCtx, info.ID)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &CreateMazeResponse{
		ID:       info.ID,
		Size:     info.Size,
		Seed:     info.Seed,
		Token:    token,
		Snapshot: snap,
	})
}

// archived lists recently completed mazes.
func (mc *MazeController) archived(ctx *gin.Context) {
	limit := int64(defaultArchiveLimit)
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	records, err := mc.sessions.Archived(reqCtx, limit)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	response := make([]ArchivedMazeResponse, 0, len(records))
	for _, r := range records {
		response = append(response, ArchivedMazeResponse{
			ID:          r.ID,
			Size:        r.Size,
			Seed:        r.Seed,
			Run:         r.Run,
			Steps:       r.Steps,
			CompletedAt: r.CompletedAt.UnixMilli(),
		})
	}
	ctx.JSON(http.StatusOK, response)
}

func (mc *MazeController) snapshot(ctx *gin.Context) {
	snap, err := mc.sessions.Snapshot(ctx.Request.Context(), mazeID(ctx))
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (mc *MazeController) ascii(ctx *gin.Context) {
	snap, err := mc.sessions.Snapshot(ctx.Request.Context(), mazeID(ctx))
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.String(http.StatusOK, snap.String())
}

func (mc *MazeController) start(ctx *gin.Context) {
	mc.mutate(ctx, mc.sessions.Start)
}

func (mc *MazeController) step(ctx *gin.Context) {
	mc.mutate(ctx, mc.sessions.Step)
}

func (mc *MazeController) run(ctx *gin.Context) {
	mc.mutate(ctx, mc.sessions.Run)
}

func (mc *MazeController) reset(ctx *gin.Context) {
	mc.mutate(ctx, mc.sessions.Reset)
}

func (mc *MazeController) delete(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	if err := mc.sessions.Delete(reqCtx, mazeID(ctx)); err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (mc *MazeController) mutate(ctx *gin.Context, op func(context.Context, uuid.UUID) (maze.Snapshot, error)) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	snap, err := op(reqCtx, mazeID(ctx))
	if err != nil {
		mc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// withID parses the :ID path parameter.
func (mc *MazeController) withID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}
	ctx.Set(contextMazeID, id)
	ctx.Next()
}

// requireOwner admits only tokens issued for the maze in the path.
func (mc *MazeController) requireOwner(ctx *gin.Context) {
	claims, ok := identity.Claims(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	owned, _ := claims[service.MazeIDClaim].(string)
	if owned != mazeID(ctx).String() {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not grant access to this maze"})
		return
	}
	ctx.Next()
}

func (mc *MazeController) fail(ctx *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		mc.logger.Error("Maze request failed: " + err.Error())
		ctx.JSON(status, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, maze.ErrNotStarted), errors.Is(err, maze.ErrAlreadyStarted):
		return http.StatusConflict
	case errors.Is(err, maze.ErrInvalidDimension), errors.Is(err, service.ErrMazeTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func mazeID(ctx *gin.Context) uuid.UUID {
	v, _ := ctx.Get(contextMazeID)
	id, _ := v.(uuid.UUID)
	return id
}
