// Package session owns the console's auth lifecycle: the current token and
// profile, the durable token storage and the default credential on the HTTP
// adapter. The adapter header is only ever written together with a session
// state transition, under the same lock, so the two cannot drift.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/ranieriiuri/eclesial-arrecadacoes/client"
	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

// State of the session lifecycle.
type State int

const (
	// Unauthenticated: no token; the login screen is the only way forward.
	Unauthenticated State = iota
	// Initializing: a stored token exists and the who-am-I check is pending.
	Initializing
	// Authenticated: token valid, profile cached.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// profileFetchRetries bounds the automatic retries of the who-am-I check.
const profileFetchRetries = 1

const (
	loginErrFallback    = "Erro ao fazer login. Verifique suas credenciais."
	registerErrFallback = "Erro ao registrar"
)

// Store is the session store.
type Store struct {
	api    *client.Client
	tokens TokenStore

	mu      sync.Mutex
	state   State
	user    *models.User
	loading bool
	errMsg  string
}

// New builds a store over the HTTP adapter and the durable token storage.
// A stored token puts the session in Initializing; Initialize must then be
// called to resolve it.
func New(api *client.Client, tokens TokenStore) (*Store, error) {
	token, err := tokens.Load()
	if err != nil {
		return nil, err
	}

	s := &Store{api: api, tokens: tokens}
	if token != "" {
		s.api.SetToken(token)
		s.state = Initializing
	}
	return s, nil
}

// Initialize resolves a pending stored token with a who-am-I request. Any
// failure — network, 401, garbage response — is treated as "token no longer
// valid": storage and header are purged, the state ends Unauthenticated, and
// no error is surfaced.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.state != Initializing {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	var user *models.User
	var err error
	for attempt := 0; attempt <= profileFetchRetries; attempt++ {
		user, err = s.api.Me(ctx)
		if err == nil {
			break
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		_ = s.tokens.Clear()
		s.api.ClearToken()
		s.state = Unauthenticated
		s.user = nil
		return
	}
	s.user = user
	s.state = Authenticated
}

// Login authenticates with e-mail and password. On success the token is
// persisted and installed on the adapter before anything else uses it; on
// failure the state stays Unauthenticated with a user-facing message.
func (s *Store) Login(ctx context.Context, email, senha string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, user, err := s.api.Login(ctx, email, senha)
	if err != nil {
		return s.fail(err, loginErrFallback)
	}

	return s.commit(token, user)
}

// Register posts the full registration record; the returned token opens an
// authenticated session immediately.
func (s *Store) Register(ctx context.Context, form models.RegistroRequest) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, user, err := s.api.Register(ctx, form)
	if err != nil {
		return s.fail(err, registerErrFallback)
	}

	return s.commit(token, user)
}

// Logout always succeeds: storage purge is best effort, header and state are
// cleared synchronously regardless of in-flight requests.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.tokens.Clear()
	s.api.ClearToken()
	s.state = Unauthenticated
	s.user = nil
	s.errMsg = ""
}

// commit persists and installs the token and flips to Authenticated in one
// critical section.
func (s *Store) commit(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tokens.Save(token); err != nil {
		_ = s.tokens.Clear()
		s.api.ClearToken()
		s.state = Unauthenticated
		s.errMsg = "não foi possível salvar a sessão"
		return errors.New(s.errMsg)
	}

	s.api.SetToken(token)
	s.user = user
	s.state = Authenticated
	s.errMsg = ""
	return nil
}

func (s *Store) fail(err error, fallback string) error {
	msg := fallback
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}

	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	return errors.New(msg)
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the cached profile, nil unless Authenticated.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Loading reports whether an auth operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last user-facing auth error message ("" when none).
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// HasToken reports whether a bearer credential is currently installed. This
// is the input the route guards consume.
func (s *Store) HasToken() bool {
	return s.api.Token() != ""
}
