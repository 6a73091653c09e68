package main

import (
	"flag"
	"image"
	"log"

	"github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/scenes"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/brawlworks/skybrawl/shared/protocol"
	"github.com/brawlworks/skybrawl/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(practice bool) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}

	clock := gameclock.System{}
	if practice {
		g.scene = scenes.NewArenaScene(g, nil, clock, config.Settings.DefaultPlayerName)
	} else {
		g.scene = scenes.NewConnectScene(g, clock)
	}

	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.Arena.Width, config.Arena.Height)
	return config.Arena.Width, config.Arena.Height
}

func main() {
	addr := flag.String("addr", "", "server address (host:port)")
	name := flag.String("name", "", "player name")
	practice := flag.Bool("practice", false, "offline practice mode, no server")
	flag.Parse()

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettings(saved)
	}

	// Flags win over saved settings
	if *addr != "" {
		config.Settings.DefaultServerAddr = *addr
	}
	if *name != "" {
		config.Settings.DefaultPlayerName = *name
	}

	_ = systems.SaveSettings(&systems.SavedSettings{
		PlayerName:           config.Settings.DefaultPlayerName,
		ServerAddr:           config.Settings.DefaultServerAddr,
		InterpolationDelayMs: int(config.Net.InterpolationDelay.Milliseconds()),
		PredictionEnabled:    config.Settings.PredictionEnabled,
	})

	ebiten.SetWindowSize(config.Arena.Width*2, config.Arena.Height*2)
	ebiten.SetWindowTitle("skybrawl")

	if err := ebiten.RunGame(NewGame(*practice)); err != nil {
		log.Fatal(err)
	}
}
