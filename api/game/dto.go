// Package gameapi provides the HTTP and websocket surface for creating and
// driving maze game sessions.
package gameapi

import (
	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/beka-birhanu/maze3d/world"
	"github.com/google/uuid"
)

// CreateGameRequest represents a request to create a new game session.
// Omitted dimensions fall back to the server defaults; an omitted seed is
// derived from the clock.
type CreateGameRequest struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   *int64 `json:"seed"`
}

// CreateGameResponse carries the ID of a freshly created session.
type CreateGameResponse struct {
	ID    uuid.UUID `json:"id"`
	State string    `json:"state"`
}

// GameInfoResponse is the full payload a rendering client needs to draw a
// session: the immutable world layout plus the latest snapshot.
type GameInfoResponse struct {
	ID       uuid.UUID       `json:"id"`
	Geometry *world.Geometry `json:"geometry"`
	Snapshot i.GameSnapshot  `json:"snapshot"`
}

// ResetRequest represents a request to restart a session. An omitted seed is
// derived from the clock.
type ResetRequest struct {
	Seed *int64 `json:"seed"`
}
