package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/ecs/entity"
	"github.com/milk9111/raidercore/ecs/system"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/levels"
	"github.com/milk9111/raidercore/logging"
	"github.com/milk9111/raidercore/metrics"
	"github.com/milk9111/raidercore/prefabs"
	"github.com/milk9111/raidercore/trigger"
)

const defaultScript = "*5,F*40,L*12,F*30,*10,A*1,*30,FW*20,*10"

func main() {
	levelName := flag.String("level", "demo.yaml", "level fixture in levels/")
	frames := flag.Int("frames", 300, "frames to simulate")
	input := flag.String("input", defaultScript, "scripted input, BUTTONS*FRAMES separated by commas (F B L R J A O W Q E)")
	logLevel := flag.String("log", "info", "log level")
	every := flag.Int("every", 30, "log a snapshot every N frames (0 disables)")
	metricsAddr := flag.String("metrics", "", "serve Prometheus /metrics on this address, e.g. :2112")
	hold := flag.Bool("hold", false, "keep serving /metrics after the run ends")
	sentryDSN := flag.String("sentry-dsn", "", "report fatal level errors to sentry")
	watch := flag.Bool("watch", false, "hot reload creature scripts from prefabs/scripts")
	realtime := flag.Bool("realtime", false, "pace frames at 30 per second")
	flag.Parse()

	lg := logging.New(*logLevel, os.Stderr)
	log := logging.System(lg, "raidersim")

	if *sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: *sentryDSN}); err != nil {
			log.WithError(err).Warn("sentry disabled")
		} else {
			defer sentry.Flush(5 * time.Second)
		}
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			log.WithField("addr", *metricsAddr).Info("serving metrics")
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.WithError(err).Error("metrics server")
			}
		}()
	}

	steps, err := ParseScript(*input)
	if err != nil {
		log.WithError(err).Fatal("bad input script")
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher("prefabs/scripts")
		if err != nil {
			log.WithError(err).Warn("hot reload disabled")
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	sim, err := newSimulation(*levelName, m, lg)
	if err != nil {
		report(log, err)
		os.Exit(1)
	}

	script := NewScript(steps)
	var tick <-chan time.Time
	if *realtime {
		t := time.NewTicker(time.Second / 30)
		defer t.Stop()
		tick = t.C
	}

	for i := 0; i < *frames; i++ {
		if tick != nil {
			<-tick
		}
		if watcher != nil {
			for _, name := range watcher.Pending() {
				n := sim.loop.Scripts.Invalidate(name)
				log.WithFields(logrus.Fields{"file": name, "runtimes": n}).Info("script reloaded")
			}
		}

		sim.step(script.Next())

		if err := sim.scheduler.Err(); err != nil {
			report(log, err)
			os.Exit(1)
		}
		if sim.state.Ended {
			log.WithField("frame", sim.world.Frame()).Info("level ended")
			break
		}
		if *every > 0 && sim.world.Frame()%uint64(*every) == 0 {
			logSnapshot(log, sim.world)
		}
	}
	logSnapshot(log, sim.world)

	if *hold && *metricsAddr != "" {
		log.Info("run finished, still serving metrics")
		select {}
	}
}

type simulation struct {
	world     *ecs.World
	state     *component.LevelState
	loop      *system.ActorLoop
	scheduler *ecs.Scheduler
}

func newSimulation(name string, m *metrics.Metrics, lg *logrus.Logger) (*simulation, error) {
	lvl, err := levels.LoadAndBuild(name)
	if err != nil {
		return nil, err
	}
	w := ecs.NewWorld()
	reg := system.NewRegistry(w)
	ls, err := entity.LoadLevelToWorld(w, lvl, reg)
	if err != nil {
		return nil, err
	}
	loop := system.NewActorLoop(reg, trigger.NewDispatcher(reg, ls.Triggers), m, logging.System(lg, "actor_loop"))
	audio := system.NewAudioSystem(system.LogAudio{Log: logging.System(lg, "audio")})
	events := &eventLog{log: logging.System(lg, "events")}
	return &simulation{
		world:     w,
		state:     ls,
		loop:      loop,
		scheduler: ecs.NewScheduler(loop, audio, events),
	}, nil
}

// step latches held into the player's input and runs one frame.
func (s *simulation) step(held component.Button) {
	ecs.ForEach(s.world, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.Latch(held)
	})
	s.world.Update(s.scheduler)
}

// eventLog writes effects and level errors as they are drained.
type eventLog struct {
	log *logrus.Entry
}

func (e *eventLog) Update(w *ecs.World) {
	for _, ev := range w.Events().Drain() {
		switch ev.Type {
		case ecs.EventEffect:
			e.log.WithFields(logrus.Fields{"frame": w.Frame(), "effect": ev.Data}).Info("effect")
		case ecs.EventTransition:
			if t, ok := ev.Data.(system.Transition); ok {
				e.log.WithFields(logrus.Fields{"frame": w.Frame(), "kind": t.Kind, "from": t.From, "to": t.To}).Debug("transition")
			}
		}
	}
}

func logSnapshot(log *logrus.Entry, w *ecs.World) {
	for _, s := range system.Snapshot(w) {
		log.WithFields(logrus.Fields{
			"frame": w.Frame(),
			"index": s.Index,
			"kind":  s.Kind,
			"pos":   s.Pos,
			"room":  s.Room,
			"yaw":   s.Yaw.Degrees(),
			"state": s.State,
			"clip":  s.Clip,
			"anim":  s.Frame,
			"hp":    s.Health,
		}).Info("actor")
	}
}

// report logs a fatal level error and sends malformed-data errors to
// sentry when it is configured.
func report(log *logrus.Entry, err error) {
	log.WithError(err).Error("level aborted")
	if !errors.Is(err, level.ErrMalformed) && !errors.Is(err, trigger.ErrUnknownObject) &&
		!errors.Is(err, trigger.ErrBadTarget) && !errors.Is(err, system.ErrUnknownState) &&
		!errors.Is(err, anim.ErrUnknownAnimation) {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("component", "actor_loop")
	})
	hub.CaptureException(err)
	hub.Flush(5 * time.Second)
}
