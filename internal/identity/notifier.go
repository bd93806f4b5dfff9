package identity

import "sync"

// Event describes a sign-in state transition. A nil user means signed out.
type Event struct {
	Previous *User
	Current  *User
}

// SignedIn reports an absent → present transition.
func (e Event) SignedIn() bool {
	return e.Previous == nil && e.Current != nil
}

// SignedOut reports a present → absent transition.
func (e Event) SignedOut() bool {
	return e.Previous != nil && e.Current == nil
}

// Notifier pushes identity changes to subscribed handlers.
type Notifier struct {
	mu       sync.Mutex
	current  *User
	nextID   int
	handlers map[int]func(Event)
}

func NewNotifier() *Notifier {
	return &Notifier{handlers: make(map[int]func(Event))}
}

// Subscribe registers h and returns the function that deregisters it.
// Calling the returned function more than once is safe.
func (n *Notifier) Subscribe(h func(Event)) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.handlers[id] = h
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.handlers, id)
			n.mu.Unlock()
		})
	}
}

// Publish records u as the current identity and notifies subscribers.
// Handlers run synchronously, outside the notifier lock.
func (n *Notifier) Publish(u *User) {
	n.mu.Lock()
	ev := Event{Previous: n.current, Current: u}
	n.current = u
	handlers := make([]func(Event), 0, len(n.handlers))
	for _, h := range n.handlers {
		handlers = append(handlers, h)
	}
	n.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

func (n *Notifier) Current() *User {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Subscribers returns the number of registered handlers.
func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.handlers)
}
