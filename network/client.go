package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/messages"
	"github.com/brawlworks/skybrawl/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"golang.org/x/time/rate"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedArena
	StateError
)

// Client is the transport adapter: it maps the engine's outbound
// intents to messages and inbound messages to bounded queues the arena
// drains at the start of each tick. All shared fields are protected by
// mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state          ClientState
	lastError      error
	avatarID       esync.NetworkId
	reconnectToken string
	serverName     string
	tickRate       int
	arena          string
	conn           *websocket.Conn

	clock      gameclock.Clock
	posLimiter *rate.Limiter

	snapshotCh chan messages.AuthoritativeSnapshot // size-1 buffered; latest wins

	frameCh   chan messages.AvatarFrame
	healthCh  chan messages.HealthUpdate
	attackCh  chan messages.AttackEvent
	spawnCh   chan messages.SpawnEvent
	despawnCh chan messages.DespawnEvent
	defeatCh  chan messages.DefeatEvent
}

func NewClient(clock gameclock.Clock) *Client {
	return &Client{
		state:      StateDisconnected,
		clock:      clock,
		posLimiter: rate.NewLimiter(rate.Limit(cfg.Net.PositionUpdateHz), 1),
		snapshotCh: make(chan messages.AuthoritativeSnapshot, 1),
		frameCh:    make(chan messages.AvatarFrame, 128),
		healthCh:   make(chan messages.HealthUpdate, 16),
		attackCh:   make(chan messages.AttackEvent, 16),
		spawnCh:    make(chan messages.SpawnEvent, 8),
		despawnCh:  make(chan messages.DespawnEvent, 8),
		defeatCh:   make(chan messages.DefeatEvent, 8),
	}
}

// Connect dials the server in a background goroutine and initiates the
// join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		payload, err := router.Serialize(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to serialize join request: %w", err))
			return
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn != nil {
			if err := conn.Write(context.Background(), websocket.MessageBinary, payload); err != nil {
				c.setError(fmt.Errorf("failed to send join request: %w", err))
			}
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: avatarID=%d server=%s tickRate=%d",
			msg.AvatarID, msg.ServerName, msg.TickRate)
		c.mu.Lock()
		c.avatarID = msg.AvatarID
		c.reconnectToken = msg.ReconnectToken
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.arena = msg.Arena
		c.state = StateJoinedArena
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snap messages.AuthoritativeSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snap
	})

	router.On(func(_ *router.NetworkClient, frame messages.AvatarFrame) {
		select {
		case c.frameCh <- frame:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, hu messages.HealthUpdate) {
		select {
		case c.healthCh <- hu:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, ev messages.AttackEvent) {
		select {
		case c.attackCh <- ev:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, ev messages.SpawnEvent) {
		select {
		case c.spawnCh <- ev:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, ev messages.DespawnEvent) {
		select {
		case c.despawnCh <- ev:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, ev messages.DefeatEvent) {
		select {
		case c.defeatCh <- ev:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) AvatarID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.avatarID
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

func (c *Client) Arena() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.arena
}

// LatestSnapshot returns the most recent authoritative snapshot, or
// nil. Non-blocking; intermediate snapshots are deliberately skipped.
func (c *Client) LatestSnapshot() *messages.AuthoritativeSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// SendInput sends the local input state tagged with its sequence.
func (c *Client) SendInput(input messages.PlayerInput) error {
	return c.sendMessage(input)
}

// SendAttack announces an attack start to peers.
func (c *Client) SendAttack(attack netconfig.AttackID, facing netconfig.Facing) error {
	c.mu.RLock()
	id := c.avatarID
	c.mu.RUnlock()
	return c.sendMessage(messages.AttackEvent{
		AvatarID: id,
		Attack:   attack,
		Facing:   facing,
	})
}

// SendPositionUpdate reports the local avatar's motion to peers. Calls
// beyond the configured rate are silently dropped; peers interpolate
// between the frames that do go out.
func (c *Client) SendPositionUpdate(frame messages.AvatarFrame) error {
	if !c.posLimiter.Allow() {
		return nil
	}
	c.mu.RLock()
	frame.AvatarID = c.avatarID
	c.mu.RUnlock()
	frame.Timestamp = c.clock.Now().UnixMilli()
	return c.sendMessage(frame)
}

// SendHealthUpdate mirrors the local avatar's combat state to peers.
func (c *Client) SendHealthUpdate(hu messages.HealthUpdate) error {
	c.mu.RLock()
	hu.AvatarID = c.avatarID
	c.mu.RUnlock()
	return c.sendMessage(hu)
}

// SendDefeat announces the local avatar's elimination to peers.
func (c *Client) SendDefeat(ev messages.DefeatEvent) error {
	c.mu.RLock()
	ev.AvatarID = c.avatarID
	c.mu.RUnlock()
	return c.sendMessage(ev)
}

func (c *Client) sendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainRemoteFrames returns all pending remote avatar frames, non-blocking.
func (c *Client) DrainRemoteFrames() []messages.AvatarFrame {
	return drainChan(c.frameCh)
}

// DrainHealthUpdates returns all pending health updates, non-blocking.
func (c *Client) DrainHealthUpdates() []messages.HealthUpdate {
	return drainChan(c.healthCh)
}

// DrainAttackEvents returns all pending attack events, non-blocking.
func (c *Client) DrainAttackEvents() []messages.AttackEvent {
	return drainChan(c.attackCh)
}

// DrainSpawnEvents returns all pending spawn events, non-blocking.
func (c *Client) DrainSpawnEvents() []messages.SpawnEvent {
	return drainChan(c.spawnCh)
}

// DrainDespawnEvents returns all pending despawn events, non-blocking.
func (c *Client) DrainDespawnEvents() []messages.DespawnEvent {
	return drainChan(c.despawnCh)
}

// DrainDefeatEvents returns all pending defeat events, non-blocking.
func (c *Client) DrainDefeatEvents() []messages.DefeatEvent {
	return drainChan(c.defeatCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
