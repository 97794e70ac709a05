// Package audio connects simulation cues to a sound back-end. The core never
// names assets; a Sink maps cue kinds and variants to whatever it plays.
package audio

import (
	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/core/event"
)

// Sink plays cues and level music.
type Sink interface {
	Play(cue event.Cue) error
	LevelChanged(depth int) error
}

// Attach subscribes sink to the bus. Sink errors are logged and dropped; a
// missing sound never stops a turn.
func Attach(bus *event.Bus, sink Sink, log *zap.Logger) {
	event.Subscribe(bus, func(c event.Cue) {
		if err := sink.Play(c); err != nil {
			log.Warn("play cue",
				zap.Stringer("cue", c.Kind),
				zap.String("variant", c.Variant),
				zap.Error(err))
		}
	})
	event.Subscribe(bus, func(e event.LevelChanged) {
		if err := sink.LevelChanged(e.Depth); err != nil {
			log.Warn("level music", zap.Int("depth", e.Depth), zap.Error(err))
		}
	})
}

// LogSink writes every cue to a logger. Used when no audio device is wired.
type LogSink struct {
	Log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{Log: log.Named("audio")}
}

func (s *LogSink) Play(c event.Cue) error {
	s.Log.Debug("cue",
		zap.Stringer("kind", c.Kind),
		zap.Uint64("entity", uint64(c.Entity)),
		zap.String("variant", c.Variant))
	return nil
}

func (s *LogSink) LevelChanged(depth int) error {
	s.Log.Debug("music", zap.Int("depth", depth))
	return nil
}
