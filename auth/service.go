package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"journeatz-api/models"
	"journeatz-api/storage"
)

// Provider failures are distinct, user-visible error kinds. They are never
// papered over with a fabricated session.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrEmailUnconfirmed   = errors.New("email address has not been confirmed")
	ErrRateLimited        = errors.New("too many attempts, try again later")
)

// Event mirrors the auth-state-change notifications consumers subscribe to.
type Event string

const (
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// Listener receives auth-state-change events. The user is nil for SIGNED_OUT.
type Listener func(Event, *models.User)

// Service owns credential verification and account registration.
type Service struct {
	store          storage.Store
	requireConfirm bool
	limiter        *loginLimiter

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func NewService(store storage.Store, requireConfirm bool) *Service {
	return &Service{
		store:          store,
		requireConfirm: requireConfirm,
		limiter:        newLoginLimiter(),
		listeners:      make(map[int]Listener),
	}
}

// Subscribe registers a listener for auth events and returns its teardown.
func (s *Service) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Service) emit(e Event, u *models.User) {
	s.mu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()
	for _, l := range ls {
		l(e, u)
	}
}

// Register creates a user plus its role-specific profile row. An empty role
// defaults to customer; an unrecognized role is rejected.
func (s *Service) Register(email, password, roleStr, name string) (*models.User, error) {
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetUserByEmail(email); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if name == "" {
		name = localPart(email)
	}
	user := &models.User{
		Email:          email,
		PasswordHash:   string(hash),
		Role:           role,
		Name:           name,
		EmailConfirmed: !s.requireConfirm,
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	if err := s.createProfile(user); err != nil {
		return nil, err
	}

	s.emit(EventSignedIn, user)
	return user, nil
}

// createProfile inserts the role-specific extension row at signup.
func (s *Service) createProfile(u *models.User) error {
	switch u.Role {
	case models.RoleKitchen:
		return s.store.CreateKitchen(&models.Kitchen{
			UserID: u.ID,
			Name:   u.Name + "'s Kitchen",
			IsOpen: true,
		})
	case models.RoleCustomer:
		return s.store.CreateCustomer(&models.Customer{UserID: u.ID, Name: u.Name})
	case models.RoleDriver:
		return s.store.CreateDriver(&models.Driver{
			UserID: u.ID,
			Name:   u.Name,
			Status: models.DriverActive,
		})
	default:
		return nil // admin has no extension row
	}
}

// Authenticate verifies a password login and reports failures as typed
// errors rather than a blanket rejection.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	if s.limiter.blocked(email) {
		return nil, ErrRateLimited
	}
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.limiter.fail(email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.limiter.fail(email)
		return nil, ErrInvalidCredentials
	}
	if s.requireConfirm && !user.EmailConfirmed {
		return nil, ErrEmailUnconfirmed
	}
	s.limiter.reset(email)
	s.emit(EventSignedIn, user)
	return user, nil
}

// SignOut only broadcasts: tokens are stateless, consumers clear their own
// session state unconditionally.
func (s *Service) SignOut() {
	s.emit(EventSignedOut, nil)
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
