package game

import (
	"time"

	"go.uber.org/zap"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	Started      time.Time
	Ticks        uint64
	KeysRead     int
	DeviceEvents int
	Moves        int
}

// Fields renders the run log as structured log fields.
func (r RunLog) Fields() []zap.Field {
	var elapsed time.Duration
	if !r.Started.IsZero() {
		elapsed = time.Since(r.Started)
	}
	return []zap.Field{
		zap.Uint64("ticks", r.Ticks),
		zap.Int("keys", r.KeysRead),
		zap.Int("device_events", r.DeviceEvents),
		zap.Int("moves", r.Moves),
		zap.Duration("elapsed", elapsed.Round(time.Millisecond)),
	}
}

// RunLog returns the statistics gathered so far.
func (g *Game) RunLog() RunLog {
	r := g.runLog
	r.Ticks = g.sched.Ticks()
	return r
}
