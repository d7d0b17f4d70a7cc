package client

// Scheduler splits work between the UI loop and the background. Go runs
// blocking work away from the UI loop; Update hands a result back to it.
// Handlers passed to Update never run concurrently with each other or with
// click handling.
type Scheduler interface {
	Go(func())
	Update(func())
}

// Inline runs everything on the calling goroutine.
type Inline struct{}

func (Inline) Go(f func())     { f() }
func (Inline) Update(f func()) { f() }
