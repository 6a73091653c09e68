package scenes

import (
	"fmt"
	"image/color"
	"log"

	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/brawlworks/skybrawl/network"
	"github.com/brawlworks/skybrawl/shared/gameclock"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"golang.org/x/image/font/basicfont"
)

const clientVersion = "0.3.0"

// ConnectScene is the entry screen: connect to the configured server,
// or start offline practice.
type ConnectScene struct {
	sceneChanger SceneChanger
	clock        gameclock.Clock
	netClient    *network.Client
	dialing      bool
}

func NewConnectScene(sc SceneChanger, clock gameclock.Clock) *ConnectScene {
	return &ConnectScene{
		sceneChanger: sc,
		clock:        clock,
	}
}

func (cs *ConnectScene) Update() {
	if cs.dialing {
		switch cs.netClient.State() {
		case network.StateJoinedArena:
			log.Printf("[connect] joined arena %q", cs.netClient.Arena())
			cs.sceneChanger.ChangeScene(NewArenaScene(
				cs.sceneChanger, cs.netClient, cs.clock, cfg.Settings.DefaultPlayerName))
			return
		case network.StateError, network.StateDisconnected:
			cs.dialing = false
			cs.netClient.Disconnect()
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		addr := cfg.Settings.DefaultServerAddr
		log.Printf("[connect] dialing %s", addr)
		cs.netClient = network.NewClient(cs.clock)
		cs.netClient.Connect(addr, clientVersion, cfg.Settings.DefaultPlayerName)
		cs.dialing = true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		log.Println("[connect] starting offline practice")
		cs.sceneChanger.ChangeScene(NewArenaScene(
			cs.sceneChanger, nil, cs.clock, cfg.Settings.DefaultPlayerName))
	}
}

func (cs *ConnectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	face := basicfont.Face7x13
	text.Draw(screen, "SKYBRAWL", face, 8, 24, cfg.BrightGreen)
	text.Draw(screen, fmt.Sprintf("server: %s", cfg.Settings.DefaultServerAddr), face, 8, 48, cfg.White)
	text.Draw(screen, fmt.Sprintf("name: %s", cfg.Settings.DefaultPlayerName), face, 8, 64, cfg.White)

	status := "ENTER: connect   P: offline practice"
	if cs.dialing {
		status = "connecting..."
		if cs.netClient != nil {
			if err := cs.netClient.LastError(); err != nil {
				status = fmt.Sprintf("error: %v", err)
			}
		}
	} else if cs.netClient != nil {
		if err := cs.netClient.LastError(); err != nil {
			status = fmt.Sprintf("error: %v  (ENTER to retry)", err)
		}
	}
	text.Draw(screen, status, face, 8, 96, cfg.Yellow)
}
