package timer

// State is the lifecycle state of a Controller.
type State int

const (
	// StateIdle means the controller was never started or has been reset.
	StateIdle State = iota
	// StateRunning means ticks are being delivered.
	StateRunning
	// StatePaused means the run is suspended and can be resumed.
	StatePaused
	// StateStopped means the run was stopped or completed.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
