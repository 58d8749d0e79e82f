package geobooks

import (
	"context"
	"sync"
)

// SessionState is the provider's published state. Loading is true from
// construction until the first session resolution; consumers that branch on
// User being nil must wait for Loading to clear first, otherwise an
// authenticated visitor is misclassified as a guest during startup.
type SessionState struct {
	User    *Identity
	Loading bool
}

// Listener receives session-change notifications.
type Listener func(SessionState)

type sessionUpdate struct {
	user    *Identity
	loading bool
	// restore marks the startup ambient-restore result. It is discarded when
	// an explicit sign-in/out has already been published, so a slow restore
	// can never clobber a fresher session change.
	restore bool
}

// SessionProvider owns the process-wide authentication state. It wraps the
// identity endpoints and publishes every session change — sign-in, sign-out,
// restore on startup — through a single writer goroutine, so listeners
// observe updates in order and no reader ever races the writer.
type SessionProvider struct {
	client *Client

	mu        sync.Mutex
	state     SessionState
	listeners map[int]Listener
	nextID    int

	updates chan sessionUpdate
	done    chan struct{}
	closed  sync.Once
}

// NewSessionProvider starts a provider in the loading state and kicks off
// ambient-session restore: the first notification carries the restored
// identity, or nil when no session exists.
func NewSessionProvider(ctx context.Context, client *Client) *SessionProvider {
	p := &SessionProvider{
		client:    client,
		state:     SessionState{User: nil, Loading: true},
		listeners: make(map[int]Listener),
		updates:   make(chan sessionUpdate, 8),
		done:      make(chan struct{}),
	}

	go p.loop()
	go p.restore(ctx)

	return p
}

// State returns a snapshot of the current session state.
func (p *SessionProvider) State() SessionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers a listener fired on every session change. The current
// state is delivered immediately. The returned func deregisters the
// listener; providers hand it to deferred teardown.
func (p *SessionProvider) Subscribe(fn Listener) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	current := p.state
	p.mu.Unlock()

	fn(current)

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// SignUp delegates to the account-creation endpoint. Local validation
// failures (e.g. a password under six characters) surface before any network
// call. On success the session change is published asynchronously: callers
// must not assume State().User is populated when SignUp returns.
func (p *SessionProvider) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	if err := validateForm(SignUpForm{Email: email, Password: password}); err != nil {
		return nil, err
	}

	p.send(sessionUpdate{user: p.State().User, loading: true})

	identity, err := p.client.Register(ctx, email, password)
	if err != nil {
		p.send(sessionUpdate{user: nil, loading: false})
		return nil, err
	}

	p.send(sessionUpdate{user: identity, loading: false})
	return identity, nil
}

// SignIn delegates to the credential-verification endpoint. The same
// loading and asynchronous-population contract as SignUp applies.
func (p *SessionProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	if err := validateForm(SignInForm{Email: email, Password: password}); err != nil {
		return nil, err
	}

	p.send(sessionUpdate{user: p.State().User, loading: true})

	identity, err := p.client.Login(ctx, email, password)
	if err != nil {
		p.send(sessionUpdate{user: nil, loading: false})
		return nil, err
	}

	p.send(sessionUpdate{user: identity, loading: false})
	return identity, nil
}

// SignOut terminates the session. The cleared state is published through the
// same subscription path as every other change.
func (p *SessionProvider) SignOut(ctx context.Context) error {
	if err := p.client.Logout(ctx); err != nil {
		return err
	}
	p.send(sessionUpdate{user: nil, loading: false})
	return nil
}

// Close stops the writer goroutine. Pending notifications are dropped.
func (p *SessionProvider) Close() {
	p.closed.Do(func() {
		close(p.done)
	})
}

// restore resolves the ambient session once at startup, mirroring a page
// load with an existing cookie.
func (p *SessionProvider) restore(ctx context.Context) {
	identity, err := p.client.Me(ctx)
	if err != nil {
		identity = nil
	}
	p.send(sessionUpdate{user: identity, loading: false, restore: true})
}

func (p *SessionProvider) send(u sessionUpdate) {
	select {
	case p.updates <- u:
	case <-p.done:
	}
}

// loop is the single writer: it applies updates to the state cell and fans
// them out to subscribers in arrival order. A restore result that arrives
// after any explicit session change is stale and dropped.
func (p *SessionProvider) loop() {
	explicitSeen := false
	for {
		select {
		case <-p.done:
			return
		case u := <-p.updates:
			if u.restore && explicitSeen {
				continue
			}
			if !u.restore {
				explicitSeen = true
			}

			p.mu.Lock()
			p.state = SessionState{User: u.user, Loading: u.loading}
			snapshot := p.state
			fns := make([]Listener, 0, len(p.listeners))
			for _, fn := range p.listeners {
				fns = append(fns, fn)
			}
			p.mu.Unlock()

			for _, fn := range fns {
				fn(snapshot)
			}
		}
	}
}
