package system

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
)

// AudioSink plays what the frame asked for. The core never waits on it.
type AudioSink interface {
	PlaySound(id int, at common.Vec3)
	PlayTrack(id int)
}

// LogAudio is a sink that only logs requests.
type LogAudio struct {
	Log *logrus.Entry
}

func (s LogAudio) PlaySound(id int, at common.Vec3) {
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{"sound": id, "at": at}).Debug("play sound")
	}
}

func (s LogAudio) PlayTrack(id int) {
	if s.Log != nil {
		s.Log.WithField("track", id).Info("play track")
	}
}

type AudioSystem struct {
	Sink AudioSink
}

func NewAudioSystem(sink AudioSink) *AudioSystem {
	return &AudioSystem{Sink: sink}
}

// Update hands the queued requests to the sink and clears the queues.
func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		if a.Sink != nil {
			for _, s := range audioComp.Sounds {
				a.Sink.PlaySound(s.ID, s.At)
			}
			for _, t := range audioComp.Tracks {
				a.Sink.PlayTrack(t)
			}
		}
		audioComp.Sounds = audioComp.Sounds[:0]
		audioComp.Tracks = audioComp.Tracks[:0]
	})
}
