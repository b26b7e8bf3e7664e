package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aryasetia/playgate/internal/domain/entity"
	"github.com/aryasetia/playgate/internal/domain/repository"
	"github.com/aryasetia/playgate/pkg/helpers"
)

var (
	// ErrValidation is returned when a required field is missing.
	ErrValidation = errors.New("all fields are required")
	// ErrEmailTaken is returned when registering an email that already has a record.
	ErrEmailTaken = errors.New("user already exists")
	// ErrUserNotFound is returned when no record exists for an email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service orchestrates the store, hasher, and token manager for the
// register, login, profile-update, and authenticate flows. It holds no
// state of its own; every flow loads the collection, mutates it in
// memory, and saves it back whole.
type Service struct {
	Store  repository.UserStore
	Hasher *helpers.PasswordHasher
	Tokens *helpers.TokenManager
	Logger *logrus.Logger
}

func NewService(store repository.UserStore, hasher *helpers.PasswordHasher, tokens *helpers.TokenManager, logger *logrus.Logger) *Service {
	return &Service{Store: store, Hasher: hasher, Tokens: tokens, Logger: logger}
}

// Session is a freshly issued token with its expiry, for the caller to
// attach to a response cookie.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Register creates a user record and logs the new user straight in.
func (s *Service) Register(ctx context.Context, username, email, password string) (*entity.User, *Session, error) {
	if username == "" || email == "" || password == "" {
		return nil, nil, ErrValidation
	}

	users := s.Store.LoadAll()
	if repository.FindByEmail(users, email) >= 0 {
		return nil, nil, ErrEmailTaken
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}

	user := entity.User{Username: username, Email: email, Password: hash}
	users = append(users, user)
	s.persist(users)

	sess, err := s.issue(email)
	if err != nil {
		return nil, nil, err
	}
	s.info("user registered", email)
	return sanitize(&user), sess, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}

	users := s.Store.LoadAll()
	i := repository.FindByEmail(users, email)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	if !s.Hasher.Verify(password, users[i].Password) {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.issue(email)
	if err != nil {
		return nil, err
	}
	s.info("user logged in", email)
	return sess, nil
}

// GetProfile returns the record backing subject, without the hash.
func (s *Service) GetProfile(ctx context.Context, subject string) (*entity.User, error) {
	users := s.Store.LoadAll()
	i := repository.FindByEmail(users, subject)
	if i < 0 {
		return nil, ErrUserNotFound
	}
	return sanitize(&users[i]), nil
}

// UpdateProfileInput carries the replacement fields for a profile edit.
// Password is optional; when empty the stored hash is kept.
type UpdateProfileInput struct {
	Username string
	Email    string
	Password string
}

// UpdateProfile replaces the record backing subject. Username and email
// are replaced unconditionally; email is the record key, so this can
// re-key the record. Uniqueness of the new email is not re-checked here,
// only at registration.
func (s *Service) UpdateProfile(ctx context.Context, subject string, in UpdateProfileInput) (*entity.User, error) {
	if in.Username == "" || in.Email == "" {
		return nil, ErrValidation
	}

	users := s.Store.LoadAll()
	i := repository.FindByEmail(users, subject)
	if i < 0 {
		return nil, ErrUserNotFound
	}

	users[i].Username = in.Username
	users[i].Email = in.Email
	if in.Password != "" {
		hash, err := s.Hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		users[i].Password = hash
	}
	s.persist(users)

	s.info("profile updated", users[i].Email)
	return sanitize(&users[i]), nil
}

// Authenticate validates a presented session token and returns its
// subject. Any failure means the request is unauthenticated; the two
// failure kinds are not distinguished here.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	return s.Tokens.Verify(token)
}

func (s *Service) issue(subject string) (*Session, error) {
	token, exp, err := s.Tokens.Issue(subject)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", subject).Error("issue session token failed")
		}
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp}, nil
}

// persist saves the whole collection. A write failure is logged and
// swallowed: the flow succeeds, the change is just not durable.
func (s *Service) persist(users []entity.User) {
	if err := s.Store.SaveAll(users); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("user store write failed, change not persisted")
	}
}

func (s *Service) info(msg, email string) {
	if s.Logger != nil {
		s.Logger.WithField("email", email).Info(msg)
	}
}

func sanitize(u *entity.User) *entity.User {
	return &entity.User{Username: u.Username, Email: u.Email}
}
