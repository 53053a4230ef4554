package engine

// State represents the lifecycle state of the render loop.
type State string

// Engine states.
const (
	StateIdle     State = "idle"     // Created, loop not scheduled yet
	StateRunning  State = "running"  // Rendering every tick
	StateStopping State = "stopping" // Clearing the strip
	StateStopped  State = "stopped"  // Terminal
)
