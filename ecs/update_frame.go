package ecs

import "time"

// UpdateFrame is handed to every system during one scheduler tick.
//
// DeltaTime is the simulation step in seconds. RealDelta is the wall-clock time
// the host measured for this frame; the two are distinct clocks and only systems
// that are explicitly driven by real time should read RealDelta.
type UpdateFrame struct {
	DeltaTime float64
	RealDelta time.Duration
	Commands  *Commands
	Storage   *Storage

	err error
}

func newUpdateFrame(dt float64, realDelta time.Duration, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		RealDelta: realDelta,
		Commands:  commands,
		Storage:   storage,
	}
}

// Fail aborts the current tick. The scheduler stops after the failing system,
// discards all buffered commands and returns err from Once.
// Only the first failure of a tick is kept.
func (f *UpdateFrame) Fail(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

// Err returns the failure recorded for this tick, if any.
func (f *UpdateFrame) Err() error {
	return f.err
}
