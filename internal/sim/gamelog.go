package sim

import (
	"fmt"

	"go.uber.org/zap"
)

// GameLog is the player-facing message list. Every line is mirrored to the
// debug log.
type GameLog struct {
	Entries []string
	log     *zap.Logger
}

func NewGameLog(log *zap.Logger) *GameLog {
	return &GameLog{log: log}
}

func (g *GameLog) Add(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	g.Entries = append(g.Entries, msg)
	g.log.Debug("game log", zap.String("msg", msg))
}

// Last returns up to n most recent entries, oldest first.
func (g *GameLog) Last(n int) []string {
	if n >= len(g.Entries) {
		return g.Entries
	}
	return g.Entries[len(g.Entries)-n:]
}

// Reset replaces the log with the given lines.
func (g *GameLog) Reset(lines ...string) {
	g.Entries = append(g.Entries[:0], lines...)
}
