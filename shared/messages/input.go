package messages

import "github.com/brawlworks/skybrawl/shared/netconfig"

// PlayerInput is sent from client to server on every local input change.
// Used for server-side movement processing and client-side prediction
// reconciliation.
type PlayerInput struct {
	Sequence  uint64                      // Incrementing ID for reconciliation
	Actions   map[netconfig.ActionID]bool // Which actions are currently pressed
	Direction int                         // -1 left, 0 none, 1 right
	Timestamp int64                       // Client timestamp (Unix ms)
}

// NewPlayerInput creates a PlayerInput with initialized map
func NewPlayerInput(seq uint64) PlayerInput {
	return PlayerInput{
		Sequence: seq,
		Actions:  make(map[netconfig.ActionID]bool),
	}
}
