package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/brawlworks/skybrawl/archetypes"
	"github.com/brawlworks/skybrawl/combat"
	"github.com/brawlworks/skybrawl/components"
	"github.com/brawlworks/skybrawl/network"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/gamemath"
	"github.com/brawlworks/skybrawl/shared/messages"
	"github.com/brawlworks/skybrawl/shared/netcomponents"
	"github.com/brawlworks/skybrawl/systems"
	"github.com/brawlworks/skybrawl/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/brawlworks/skybrawl/config"
)

type SceneChanger interface {
	ChangeScene(scene interface{})
}

// ArenaScene owns the per-tick synchronization pipeline: drain the
// transport queues, reconcile the local avatar, feed remote frame
// buffers, then run the ECS world. A nil client selects offline
// practice mode with a scripted sparring ghost.
type ArenaScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	netClient    *network.Client
	predictor    *network.Predictor
	resolver     *combat.Resolver
	clock        gameclock.Clock
	roster       *network.Roster
	playerName   string
	once         sync.Once

	ghost *practiceGhost
}

func NewArenaScene(sc SceneChanger, client *network.Client, clock gameclock.Clock, playerName string) *ArenaScene {
	predictor := network.NewPredictor(clock)
	predictor.SetEnabled(cfg.Settings.PredictionEnabled)
	return &ArenaScene{
		sceneChanger: sc,
		netClient:    client,
		predictor:    predictor,
		resolver:     combat.NewResolver(clock),
		clock:        clock,
		roster:       network.NewRoster(),
		playerName:   playerName,
	}
}

func (as *ArenaScene) Update() {
	as.once.Do(as.configure)

	if as.netClient != nil {
		state := as.netClient.State()
		if state == network.StateDisconnected || state == network.StateError {
			log.Println("[arena] connection lost, returning to connect screen")
			as.netClient.Disconnect()
			as.sceneChanger.ChangeScene(NewConnectScene(as.sceneChanger, as.clock))
			return
		}
		as.drainNetwork()
	} else {
		as.ghost.tick(as)
	}

	as.reconcileLocal()

	as.ecsWorld.Update()
	systems.UpdateCorrections(as.ecsWorld)
}

func (as *ArenaScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if as.ecsWorld == nil {
		return
	}

	as.ecsWorld.Draw(screen)
}

func (as *ArenaScene) configure() {
	as.ecsWorld = ecs.NewECS(donburi.NewWorld())

	platforms := arenaPlatforms()
	as.predictor.InitCollision(platforms, cfg.Arena.Width, cfg.Arena.Height,
		cfg.Arena.SpawnX, cfg.Arena.SpawnY)

	as.spawnLocal()

	var sender systems.Sender
	var reporter systems.CombatReporter
	if as.netClient != nil {
		sender = as.netClient
		reporter = as.netClient
	} else {
		as.ghost = newPracticeGhost()
		as.spawnRemote(messages.SpawnEvent{
			AvatarID: practiceGhostID,
			Name:     "sparring bot",
			X:        ghostBaseX,
			Y:        cfg.Arena.SpawnY,
			Weight:   1.0,
		})
	}

	as.ecsWorld.AddSystem(systems.NewNetworkInputSystem(as.clock, as.predictor, sender))
	as.ecsWorld.AddSystem(systems.NewNetInterpSystem(as.clock))
	as.ecsWorld.AddSystem(systems.NewCombatSystem(as.clock, as.resolver, reporter))
	as.ecsWorld.AddRenderer(cfg.Default, drawPlatforms)
	as.ecsWorld.AddRenderer(cfg.Default, systems.DrawAvatars)
	as.ecsWorld.AddRenderer(cfg.Default, as.drawHUD)
}

func (as *ArenaScene) spawnLocal() {
	entry := archetypes.Avatar.Spawn(as.ecsWorld, tags.LocalAvatar)

	components.Avatar.SetValue(entry, components.AvatarData{
		Name:   as.playerName,
		Mode:   components.ControlLocal,
		Weight: cfg.Player.Weight,
		SpawnX: cfg.Arena.SpawnX,
		SpawnY: cfg.Arena.SpawnY,
	})
	components.Combat.SetValue(entry, combat.NewState(cfg.Player.Health, cfg.Player.Stocks))
	netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{
		X: cfg.Arena.SpawnX, Y: cfg.Arena.SpawnY,
	})
}

// spawnRemote creates the entity for a newly seen avatar and registers
// it in the roster.
func (as *ArenaScene) spawnRemote(ev messages.SpawnEvent) *donburi.Entry {
	entry := archetypes.Avatar.Spawn(as.ecsWorld, tags.RemoteAvatar)

	weight := ev.Weight
	if weight <= 0 {
		weight = 1.0
	}
	components.Avatar.SetValue(entry, components.AvatarData{
		ID:     uint(ev.AvatarID),
		Name:   ev.Name,
		Mode:   components.ControlRemote,
		Weight: weight,
		SpawnX: ev.X,
		SpawnY: ev.Y,
	})
	components.Combat.SetValue(entry, combat.NewState(cfg.Player.Health, cfg.Player.Stocks))
	components.NetInterp.SetValue(entry, components.NetInterpData{
		Buffer: network.NewFrameBuffer(cfg.Net.InterpBufferSize, cfg.Net.InterpolationDelay),
	})
	netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{X: ev.X, Y: ev.Y})

	as.roster.Add(ev.AvatarID, entry.Entity())
	log.Printf("[arena] avatar %d (%s) spawned", ev.AvatarID, ev.Name)
	return entry
}

func (as *ArenaScene) remoteEntry(id esync.NetworkId) (*donburi.Entry, bool) {
	entity, ok := as.roster.Lookup(id)
	if !ok {
		return nil, false
	}
	if !as.ecsWorld.World.Valid(entity) {
		as.roster.Remove(id)
		return nil, false
	}
	return as.ecsWorld.World.Entry(entity), true
}

// drainNetwork moves everything the transport queued since last tick
// into the world. All world mutation stays on the tick goroutine.
func (as *ArenaScene) drainNetwork() {
	myID := as.netClient.AvatarID()

	for _, ev := range as.netClient.DrainSpawnEvents() {
		if ev.AvatarID == myID {
			continue
		}
		if _, ok := as.remoteEntry(ev.AvatarID); !ok {
			as.spawnRemote(ev)
		}
	}

	for _, ev := range as.netClient.DrainDespawnEvents() {
		if entry, ok := as.remoteEntry(ev.AvatarID); ok {
			log.Printf("[arena] avatar %d despawned", ev.AvatarID)
			entry.Remove()
		}
		as.roster.Remove(ev.AvatarID)
	}

	for _, frame := range as.netClient.DrainRemoteFrames() {
		if frame.AvatarID == myID {
			continue
		}
		entry, ok := as.remoteEntry(frame.AvatarID)
		if !ok {
			// First sight without a spawn event; the frame carries
			// enough to stand the avatar up.
			entry = as.spawnRemote(messages.SpawnEvent{
				AvatarID: frame.AvatarID,
				X:        frame.X,
				Y:        frame.Y,
				Weight:   1.0,
			})
		}
		as.ingestRemoteFrame(entry, frame)
	}

	for _, hu := range as.netClient.DrainHealthUpdates() {
		if hu.AvatarID == myID {
			continue
		}
		if entry, ok := as.remoteEntry(hu.AvatarID); ok {
			as.applyRemoteHealth(entry, hu)
		}
	}

	for _, ev := range as.netClient.DrainAttackEvents() {
		if ev.AvatarID == myID {
			continue
		}
		as.applyRemoteAttack(ev)
	}

	for _, ev := range as.netClient.DrainDefeatEvents() {
		if ev.AvatarID == myID {
			continue
		}
		if entry, ok := as.remoteEntry(ev.AvatarID); ok {
			as.applyRemoteDefeat(entry, ev)
		}
	}
}

// ingestRemoteFrame pushes one motion sample into the avatar's
// interpolation buffer. The single ingest path for live and practice
// traffic.
func (as *ArenaScene) ingestRemoteFrame(entry *donburi.Entry, frame messages.AvatarFrame) {
	interp := components.NetInterp.Get(entry)
	if interp.Buffer == nil {
		return
	}
	interp.Buffer.Push(network.RemoteFrame{
		X: frame.X, Y: frame.Y,
		VelX: frame.VelX, VelY: frame.VelY,
		Facing:    frame.Facing,
		Timestamp: frame.Timestamp,
	})
}

// applyRemoteHealth overwrites a remote avatar's combat state: its
// owner is authoritative for it, there is nothing to reconcile.
func (as *ArenaScene) applyRemoteHealth(entry *donburi.Entry, hu messages.HealthUpdate) {
	cs := components.Combat.Get(entry)
	stocksBefore := cs.Stocks
	cs.Health = hu.Health
	cs.Stocks = hu.Stocks
	cs.Accumulated = hu.Accumulated
	if hu.Invulnerable {
		cs.InvulnerableUntil = as.clock.Now().UnixMilli() + cfg.Combat.InvulnDuration.Milliseconds()
	} else {
		cs.InvulnerableUntil = 0
	}
	if hu.Stocks <= 0 {
		cs.Phase = combat.PhaseDefeated
	}
	if hu.Stocks < stocksBefore {
		log.Printf("[arena] avatar %d lost a stock (%d left)", hu.AvatarID, hu.Stocks)
	}

	st := netcomponents.NetAvatarState.Get(entry)
	st.Health = hu.Health
	st.Stocks = hu.Stocks
	st.Accumulated = hu.Accumulated
	st.Invulnerable = hu.Invulnerable
}

// applyRemoteAttack queues a damage event on the local avatar when a
// remote attack connects. Each client resolves only hits on its own
// avatar.
func (as *ArenaScene) applyRemoteAttack(ev messages.AttackEvent) {
	profile, ok := combat.ProfileFor(ev.Attack, ev.Facing)
	if !ok {
		return
	}
	attacker, ok := as.remoteEntry(ev.AvatarID)
	if !ok {
		return
	}
	local, ok := tags.LocalAvatar.First(as.ecsWorld.World)
	if !ok || local.HasComponent(components.Damage) {
		return
	}

	aPos := netcomponents.NetPosition.Get(attacker)
	lPos := netcomponents.NetPosition.Get(local)
	if gamemath.Dist(aPos.X, aPos.Y, lPos.X, lPos.Y) > profile.Reach {
		return
	}

	kb := profile.Knockback
	donburi.Add(local, components.Damage, &combat.DamageEvent{
		Amount:    profile.Damage,
		Type:      profile.Type,
		Knockback: &kb,
		Critical:  profile.Critical,
		Source:    "remote attack",
		SourceID:  ev.AvatarID,
	})
}

// applyRemoteDefeat marks a remote avatar eliminated. The defeat event
// can outrun or outlive the final health update, so the terminal state
// is forced here regardless of what the combat state currently says.
func (as *ArenaScene) applyRemoteDefeat(entry *donburi.Entry, ev messages.DefeatEvent) {
	cs := components.Combat.Get(entry)
	cs.Health = 0
	cs.Stocks = 0
	cs.Phase = combat.PhaseDefeated

	st := netcomponents.NetAvatarState.Get(entry)
	st.Health = 0
	st.Stocks = 0

	if ev.SourceID != 0 {
		log.Printf("[arena] avatar %d defeated by avatar %d", ev.AvatarID, ev.SourceID)
	} else {
		log.Printf("[arena] avatar %d defeated", ev.AvatarID)
	}
}

// reconcileLocal folds the latest authoritative snapshot into the
// predicted local avatar, smoothing any correction snap.
func (as *ArenaScene) reconcileLocal() {
	if as.netClient == nil {
		return
	}
	snap := as.netClient.LatestSnapshot()
	if snap == nil {
		return
	}

	entry, ok := tags.LocalAvatar.First(as.ecsWorld.World)
	if !ok {
		return
	}
	pos := netcomponents.NetPosition.Get(entry)
	vel := netcomponents.NetVelocity.Get(entry)

	if !as.predictor.Enabled() {
		// Dumb terminal: render server state directly.
		pos.X, pos.Y = snap.X, snap.Y
		vel.VelX, vel.VelY = snap.VelX, snap.VelY
		return
	}

	as.predictor.ApplyAuthoritative(*snap)
	corr := as.predictor.Reconcile(pos, vel)
	if corr.Corrected {
		log.Printf("[arena] correction seq=%d d=(%.1f, %.1f)", snap.Sequence, corr.DX, corr.DY)
		systems.StartCorrection(entry, corr.DX, corr.DY, cfg.Net.CorrectionSmooth)
	}
	netcomponents.NetAvatarState.Get(entry).LastSequence = snap.Sequence
}

func (as *ArenaScene) drawHUD(e *ecs.ECS, screen *ebiten.Image) {
	status := "offline practice"
	if as.netClient != nil {
		switch as.netClient.State() {
		case network.StateJoinedArena:
			status = "arena: " + as.netClient.Arena()
		case network.StateConnected:
			status = "joining..."
		default:
			status = "connecting..."
		}
	}
	systems.DrawHUD(e, screen, status)
}

// --- Stage geometry ---

// arenaPlatforms is the fixed demo stage: a full-width floor and two
// floating platforms.
func arenaPlatforms() []network.Platform {
	w := float64(cfg.Arena.Width)
	floorH := float64(cfg.Arena.Height) - cfg.Arena.GroundY
	return []network.Platform{
		{X: 0, Y: cfg.Arena.GroundY + float64(cfg.Player.CollisionHeight), W: w, H: floorH},
		{X: w*0.2 - 50, Y: cfg.Arena.GroundY - 60, W: 100, H: 10},
		{X: w*0.8 - 50, Y: cfg.Arena.GroundY - 60, W: 100, H: 10},
	}
}

func drawPlatforms(_ *ecs.ECS, screen *ebiten.Image) {
	for _, p := range arenaPlatforms() {
		vector.DrawFilledRect(screen,
			float32(p.X), float32(p.Y), float32(p.W), float32(p.H),
			color.RGBA{70, 70, 80, 255}, false)
	}
}
