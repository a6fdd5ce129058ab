package gameapi

import (
	"net/http"
	"time"

	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// streamInterval is how often snapshots are pushed to a client.
	streamInterval = time.Second / 30

	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API serves the browser build itself, so cross-origin upgrades
	// are expected during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stream upgrades the connection and runs the realtime loop for one session:
// snapshots flow out at the stream rate, input intents flow in and are staged
// for the next tick.
func (gc *GameController) stream(ctx *gin.Context) {
	session, _, ok := gc.sessionFromPath(ctx)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}

	done := make(chan struct{})
	go gc.readIntents(conn, session, done)
	gc.writeSnapshots(conn, session, done)
}

// readIntents forwards client intents to the session until the connection
// drops. Malformed frames end the stream.
func (gc *GameController) readIntents(conn *websocket.Conn, session i.GameSession, done chan struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		var intent i.Intent
		if err := conn.ReadJSON(&intent); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
		session.SetIntent(intent)
	}
}

// writeSnapshots pushes session snapshots until the reader side ends. Only
// fresh snapshots are sent; a stalled simulation produces no traffic beyond
// pings.
func (gc *GameController) writeSnapshots(conn *websocket.Conn, session i.GameSession, done chan struct{}) {
	defer func() { _ = conn.Close() }()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	lastVersion := int64(-1)
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			snapshot := session.Snapshot()
			if snapshot.Version == lastVersion {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
				continue
			}
			lastVersion = snapshot.Version

			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
		}
	}
}
