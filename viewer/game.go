package viewer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/entity"
	"github.com/milk9111/raidercore/ecs/system"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/logging"
	"github.com/milk9111/raidercore/metrics"
	"github.com/milk9111/raidercore/prefabs"
	"github.com/milk9111/raidercore/trigger"
)

// Game runs one level under ebiten. P pauses, N advances one frame while
// paused and F5 rebuilds the level from its loader.
type Game struct {
	Width, Height int

	world     *ecs.World
	scheduler *ecs.Scheduler
	loop      *system.ActorLoop
	render    *RenderSystem
	watcher   *prefabs.Watcher
	load      func() (*level.Level, error)
	metrics   *metrics.Metrics
	log       *logrus.Logger

	paused bool
}

// NewGame builds the world from load. watcher may be nil.
func NewGame(spec *prefabs.ViewerSpec, load func() (*level.Level, error), watcher *prefabs.Watcher, m *metrics.Metrics, log *logrus.Logger) (*Game, error) {
	g := &Game{
		Width:   960,
		Height:  720,
		render:  NewRenderSystem(spec),
		watcher: watcher,
		load:    load,
		metrics: m,
		log:     log,
	}
	if spec != nil && spec.Width > 0 && spec.Height > 0 {
		g.Width, g.Height = spec.Width, spec.Height
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reset() error {
	lvl, err := g.load()
	if err != nil {
		return fmt.Errorf("viewer: load level: %w", err)
	}
	w := ecs.NewWorld()
	reg := system.NewRegistry(w)
	ls, err := entity.LoadLevelToWorld(w, lvl, reg)
	if err != nil {
		return fmt.Errorf("viewer: spawn level: %w", err)
	}
	loop := system.NewActorLoop(reg, trigger.NewDispatcher(reg, ls.Triggers), g.metrics, logging.System(g.log, "actor_loop"))
	audio := system.NewAudioSystem(system.LogAudio{Log: logging.System(g.log, "audio")})

	g.world = w
	g.loop = loop
	g.scheduler = ecs.NewScheduler(NewInputSystem(), loop, audio)
	return nil
}

func (g *Game) World() *ecs.World { return g.world }

func (g *Game) Update() error {
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := g.reset(); err != nil {
			g.log.WithError(err).Error("reset level")
		}
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused && !inpututil.IsKeyJustPressed(ebiten.KeyN) {
		return nil
	}

	g.world.Update(g.scheduler)
	return nil
}

// reload applies hot-reloaded files. Scripts only drop their compiled
// runtimes; tuning and level files rebuild the world.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	rebuild := false
	for _, name := range g.watcher.Pending() {
		if prefabs.IsScriptFile(name) {
			n := g.loop.Scripts.Invalidate(name)
			g.log.WithFields(logrus.Fields{"file": name, "runtimes": n}).Info("script reloaded")
			continue
		}
		g.log.WithField("file", name).Info("tuning reloaded")
		rebuild = true
	}
	if rebuild {
		if err := g.reset(); err != nil {
			g.log.WithError(err).Error("reload level")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Width, g.Height
}
