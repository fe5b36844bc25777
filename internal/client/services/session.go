package services

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/skilllink/skilllink/internal/client/backend"
	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/common"
	"github.com/skilllink/skilllink/internal/logging"
)

// loginAttempts caps the total sign-in tries for transient failures. An
// authentication rejection is terminal and is never retried.
const loginAttempts = 3

// SessionService is a process-wide cache of the current session and user
// identity. It is an explicit, injectable object: every collaborator that
// reads or invalidates auth state holds a reference to the same instance.
//
// Reads (GetSession, GetCurrentUser) serve the most recent successful fetch;
// a session read older than the staleness window is transparently
// re-fetched, and the cached user stays valid until the next mutation.
// Mutations (Login, Signup, Logout, UpdateUser) are never cached and, on
// success, invalidate every cached auth entry.
type SessionService struct {
	auth backend.AuthAPI
	log  logging.Logger

	staleAfter time.Duration
	now        func() time.Time

	mu            sync.Mutex
	generation    uint64
	session       *models.Session
	sessionAt     time.Time
	sessionCached bool
	user          *models.User
	userCached    bool
}

// NewSessionService builds a session cache over the given auth surface.
// staleAfter bounds how long a cached session read stays fresh.
func NewSessionService(auth backend.AuthAPI, staleAfter time.Duration, log logging.Logger) *SessionService {
	return &SessionService{
		auth:       auth,
		log:        log,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// invalidate drops every cached auth entry and advances the generation, so
// reads in flight cannot write a pre-mutation result back into the cache.
func (s *SessionService) invalidate() {
	s.mu.Lock()
	s.generation++
	s.session = nil
	s.sessionCached = false
	s.user = nil
	s.userCached = false
	s.mu.Unlock()
}

// GetSession returns the current session, nil when anonymous. Served from
// cache within the staleness window, otherwise re-fetched.
func (s *SessionService) GetSession(ctx context.Context) (*models.Session, error) {
	for {
		s.mu.Lock()
		if s.sessionCached && s.now().Sub(s.sessionAt) < s.staleAfter {
			sess := s.session
			s.mu.Unlock()
			return sess, nil
		}
		gen := s.generation
		s.mu.Unlock()

		sess, err := s.auth.GetSession(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generation == gen {
			s.session = sess
			s.sessionAt = s.now()
			s.sessionCached = true
			s.mu.Unlock()
			return sess, nil
		}
		// a mutation completed mid-fetch; this result may predate it
		s.mu.Unlock()
	}
}

// GetCurrentUser returns the authenticated user's identity. The cached
// value may be stale but is always dropped by the next auth mutation.
func (s *SessionService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	for {
		s.mu.Lock()
		if s.userCached {
			u := s.user
			s.mu.Unlock()
			return u, nil
		}
		gen := s.generation
		s.mu.Unlock()

		u, err := s.auth.GetUser(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generation == gen {
			s.user = u
			s.userCached = true
			s.mu.Unlock()
			return u, nil
		}
		s.mu.Unlock()
	}
}

// Login authenticates with email and password. Transient failures are
// retried up to loginAttempts total tries; a rejected credential is
// surfaced immediately. The cache is untouched on failure and fully
// invalidated on success.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var sess *models.Session

	backoff := retry.WithMaxRetries(loginAttempts-1, retry.NewConstant(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		sess, err = s.auth.SignIn(ctx, email, password)
		if err != nil && common.IsTransient(err) {
			s.log.Warn(ctx, "login attempt failed, retrying", "err", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate()
	s.log.Info(ctx, "logged in", "email", email)
	return sess, nil
}

// Signup creates an account, forwarding optional profile metadata to the
// auth backend. The returned session is nil when the project requires
// email confirmation first.
func (s *SessionService) Signup(ctx context.Context, email, password string, metadata map[string]any) (*models.Session, *models.User, error) {
	sess, user, err := s.auth.SignUp(ctx, email, password, metadata)
	if err != nil {
		return nil, nil, err
	}

	s.invalidate()
	s.log.Info(ctx, "signed up", "email", email)
	return sess, user, nil
}

// Logout ends the session. The cache is untouched when the backend call
// fails, so a failed logout does not fake an anonymous state.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.auth.SignOut(ctx); err != nil {
		return err
	}
	s.invalidate()
	s.log.Info(ctx, "logged out")
	return nil
}

// UpdateUser applies a partial update to the authenticated user. Only valid
// while a session exists; when anonymous it fails fast without a network
// call.
func (s *SessionService) UpdateUser(ctx context.Context, update models.UserUpdate) (*models.User, error) {
	sess, err := s.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, common.ErrNotAuthenticated
	}

	user, err := s.auth.UpdateUser(ctx, update)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	return user, nil
}

// RequestPasswordReset asks the backend to send a recovery email. No cache
// effect: the session, if any, stays as it was.
func (s *SessionService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return &common.ValidationError{Field: "email", Message: "email is required"}
	}
	return s.auth.ResetPassword(ctx, email)
}
