package mazeapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Fastest pace a client may request.
	minStepInterval = time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// watch upgrades to a websocket and drives the maze one step per tick,
// sending every snapshot until the maze completes or the client leaves.
// An idle maze is started first.
func (mc *MazeController) watch(ctx *gin.Context) {
	interval := mc.stepInterval
	if raw := ctx.Query("interval"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "interval must be a positive number of milliseconds"})
			return
		}
		interval = max(time.Duration(ms)*time.Millisecond, minStepInterval)
	}

	id := mazeID(ctx)
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		mc.logger.Warning(fmt.Sprintf("Watch upgrade failed: ID=%s: %s", id, err))
		return
	}
	defer conn.Close()

	// Stepping stops as soon as the client goes away.
	loopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	mc.logger.Info(fmt.Sprintf("Watch started: ID=%s Interval=%s", id, interval))
	if err := mc.drive(loopCtx, conn, id, interval); err != nil {
		mc.logger.Warning(fmt.Sprintf("Watch ended early: ID=%s: %s", id, err))
		_ = send(conn, WatchMessage{Event: EventError, Error: err.Error()})
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (mc *MazeController) drive(ctx context.Context, conn *websocket.Conn, id uuid.UUID, interval time.Duration) error {
	snap, err := mc.sessions.Snapshot(ctx, id)
	if err != nil {
		return err
	}
	if snap.State == maze.Idle {
		if snap, err = mc.sessions.Start(ctx, id); err != nil {
			return err
		}
	}
	if err := send(conn, WatchMessage{Event: EventSnapshot, Snapshot: &snap}); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !snap.Complete() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if snap, err = mc.sessions.Step(ctx, id); err != nil {
			return err
		}
		if err := send(conn, WatchMessage{Event: EventSnapshot, Snapshot: &snap}); err != nil {
			return err
		}
	}

	mc.logger.Info(fmt.Sprintf("Watch completed: ID=%s Steps=%d", id, snap.Steps))
	return send(conn, WatchMessage{Event: EventComplete, Snapshot: &snap})
}

func send(conn *websocket.Conn, msg WatchMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
