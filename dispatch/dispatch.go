// Package dispatch provides a connectivity change dispatcher. Registration
// and notification both funnel through a single owner goroutine, so
// subscribers can be added from any goroutine while notifications are in
// flight, without shared mutable state.
package dispatch

// State is the connectivity state communicated to subscribers.
type State int

const (
	Unknown State = iota
	NotReachable
	ReachableWiFi
	ReachableCellular
)

func (s State) String() string {
	switch s {
	case NotReachable:
		return "not reachable"
	case ReachableWiFi:
		return "reachable via wifi"
	case ReachableCellular:
		return "reachable via cellular"
	default:
		return "unknown"
	}
}

type fan struct {
	in  chan State
	out chan<- State
}

// Dispatcher fans connectivity changes out to subscribers. Subscribers always
// receive the latest known state and never block the notifier.
type Dispatcher struct {
	push          chan State
	addSubscriber chan chan<- State
	quit          chan struct{}
}

// constantly feeds the 'out' channel with the current state
func makeFan(s State, out chan<- State, quit chan struct{}) *fan {
	f := &fan{make(chan State), out}
	go func() {
		for {
			select {
			case s = <-f.in:
			case f.out <- s:
			case <-quit:
				return
			}
		}
	}()

	return f
}

// New creates a dispatcher and starts its owner goroutine. Push and Subscribe
// are safe to call from any goroutine.
func New() *Dispatcher {
	d := &Dispatcher{
		push:          make(chan State),
		addSubscriber: make(chan chan<- State),
		quit:          make(chan struct{}),
	}
	go func() {
		state := Unknown
		var fans []*fan

		for {
			select {
			case s := <-d.push:
				state = s
				for _, f := range fans {
					f.in <- state
				}
			case c := <-d.addSubscriber:
				fans = append(fans, makeFan(state, c, d.quit))
			case <-d.quit:
				return
			}
		}
	}()

	return d
}

// Push propagates a connectivity change to all subscribers.
func (d *Dispatcher) Push(s State) {
	select {
	case d.push <- s:
	case <-d.quit:
	}
}

// Subscribe registers a channel on which the caller receives the current
// state. It can be a good idea to use buffered channels in production
// environment.
func (d *Dispatcher) Subscribe(c chan<- State) {
	select {
	case d.addSubscriber <- c:
	case <-d.quit:
	}
}

// Close stops the dispatcher and all its fan goroutines.
func (d *Dispatcher) Close() {
	close(d.quit)
}
