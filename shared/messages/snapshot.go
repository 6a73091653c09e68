package messages

import (
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/leap-fish/necs/esync"
)

// AuthoritativeSnapshot is the server's accepted state for the local
// avatar as of a given input sequence. Consumed immediately by the
// reconciliation step, never persisted.
type AuthoritativeSnapshot struct {
	X, Y       float64
	VelX, VelY float64
	Sequence   uint64 // Last input sequence the server had processed
	Timestamp  int64  // Server timestamp (Unix ms)
}

// AvatarFrame is a timestamped position/velocity sample for one avatar.
// Outbound it reports the local avatar to peers; inbound it feeds the
// remote interpolation buffer.
type AvatarFrame struct {
	AvatarID   esync.NetworkId
	X, Y       float64
	VelX, VelY float64
	Facing     netconfig.Facing
	Sequence   uint64
	Timestamp  int64 // Sender timestamp (Unix ms)
}

// HealthUpdate mirrors one avatar's combat state to observers. Only the
// owning client is authoritative for the values it reports.
type HealthUpdate struct {
	AvatarID     esync.NetworkId
	Health       int
	Stocks       int
	Accumulated  int // Accumulated damage driving knockback scaling
	Invulnerable bool
}
