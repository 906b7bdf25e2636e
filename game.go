package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/mazeball/audio"
	"github.com/milk9111/mazeball/ecs"
	"github.com/milk9111/mazeball/ecs/component"
	"github.com/milk9111/mazeball/ecs/entity"
	"github.com/milk9111/mazeball/ecs/system"
	"github.com/milk9111/mazeball/maze"
	"github.com/milk9111/mazeball/prefabs"
	"github.com/milk9111/mazeball/records"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1400
	baseHeight = 700

	chimeVolume = 0.6
)

// Options are the command-line overrides for the maze prefab.
type Options struct {
	Rows    int
	Columns int
	Seed    uint64
	Debug   bool
}

type Game struct {
	opts Options
	spec *prefabs.MazeSpec

	width  float64
	height float64

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	seed      uint64

	debug bool
	won   bool
	winUI *ebitenui.UI

	records     *records.Store
	audio       *audio.Player
	watcher     *prefabs.Watcher
	clipboardOK bool
}

func NewGame(opts Options) (*Game, error) {
	spec, err := loadSpec(opts)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:    opts,
		spec:    spec,
		debug:   opts.Debug,
		records: records.Open(records.AppName),
		audio:   audio.NewPlayer(chimeVolume),
	}
	g.width, g.height = viewport(spec)

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if info, err := os.Stat(prefabs.Dir); err == nil && info.IsDir() {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := g.regenerate(opts.Seed); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

func loadSpec(opts Options) (*prefabs.MazeSpec, error) {
	spec, err := prefabs.LoadMazeSpec()
	if err != nil {
		return nil, err
	}
	if opts.Rows > 0 {
		spec.Rows = opts.Rows
	}
	if opts.Columns > 0 {
		spec.Columns = opts.Columns
	}
	return spec, nil
}

func viewport(spec *prefabs.MazeSpec) (float64, float64) {
	w, h := spec.Width, spec.Height
	if w <= 0 {
		w = baseWidth
	}
	if h <= 0 {
		h = baseHeight
	}
	return w, h
}

// regenerate builds a fresh maze and world. A zero seed picks one from the
// clock.
func (g *Game) regenerate(seed uint64) error {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	topo, err := maze.Generate(g.spec.Rows, g.spec.Columns, maze.NewRandSource(seed))
	if err != nil {
		return fmt.Errorf("generate maze: %w", err)
	}
	uw, uh, err := maze.UnitScale(g.width, g.height, g.spec.Rows, g.spec.Columns)
	if err != nil {
		return err
	}
	layout, err := maze.Project(topo, uw, uh, g.width, g.height)
	if err != nil {
		return fmt.Errorf("project maze: %w", err)
	}

	world := ecs.NewWorld()
	if err := entity.BuildMaze(world, topo, layout, g.spec, seed); err != nil {
		return fmt.Errorf("build maze: %w", err)
	}

	physics := system.NewPhysicsSystem(g.spec.Ball.Damping)
	win := system.NewWinSystem(physics, g.spec.Win.Script, g.spec.Win.GravityY)
	win.OnWin = g.onWin

	g.world = world
	g.physics = physics
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewBallControlSystem(),
		physics,
		win,
		system.NewRenderSystem(),
	)
	g.seed = seed
	g.won = false
	g.winUI = nil

	if err := g.records.RecordStart(seed); err != nil {
		log.Printf("records: %v", err)
	}
	log.Printf("maze %dx%d seed=%d walls=%d", g.spec.Rows, g.spec.Columns, seed, len(layout.Walls))
	return nil
}

func (g *Game) onWin(state component.WinState) {
	g.won = true
	best, err := g.records.RecordWin(state.Frame)
	if err != nil {
		log.Printf("records: %v", err)
	}
	g.audio.PlayChime()

	r := g.records.Records()
	summary := fmt.Sprintf("%.1fs  wins: %d", float64(state.Frame)/float64(ebiten.TPS()), r.Wins)
	if best {
		summary += "  new best!"
	}
	g.winUI = NewWinUI(g, summary)
}

func (g *Game) nextLevel() {
	if err := g.regenerate(0); err != nil {
		log.Printf("next level: %v", err)
	}
}

func (g *Game) reload(names []string) {
	for _, name := range names {
		if name == prefabs.MazeSpecFile {
			spec, err := loadSpec(g.opts)
			if err != nil {
				log.Printf("reload %s: %v", name, err)
				return
			}
			g.spec = spec
			g.width, g.height = viewport(spec)
		}
	}
	log.Printf("prefabs changed (%v), rebuilding seed %d", names, g.seed)
	if err := g.regenerate(g.seed); err != nil {
		log.Printf("reload: %v", err)
	}
}

func (g *Game) copySeed() {
	if !g.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(strconv.FormatUint(g.seed, 10)))
	log.Printf("seed %d copied", g.seed)
}

func (g *Game) Update() error {
	if names := g.watcher.Poll(); len(names) > 0 {
		g.reload(names)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.nextLevel()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySeed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	g.scheduler.Update(g.world)
	if g.won && g.winUI != nil {
		g.winUI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(prefabs.ColorOr(g.spec.Colors.Background, colornames.Black))
	g.scheduler.Draw(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), screen)
		system.DrawMazeDebug(g.world, screen, prefabs.ColorOr(g.spec.Colors.Path, color.NRGBA{R: 0xff, G: 0xd7, A: 0x80}))
	}
	if g.won && g.winUI != nil {
		g.winUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.width, g.height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if err := g.watcher.Close(); err != nil {
		log.Printf("close watcher: %v", err)
	}
	g.audio.Close()
}
