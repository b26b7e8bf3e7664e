package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aryasetia/playgate/internal/domain/entity"
	"github.com/aryasetia/playgate/internal/infrastructure/filestore"
	"github.com/aryasetia/playgate/pkg/helpers"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := filestore.NewUserStore(filepath.Join(t.TempDir(), "users.json"), logger)
	return NewService(
		store,
		helpers.NewPasswordHasher(bcrypt.MinCost),
		helpers.NewTokenManager("test-secret", time.Hour),
		logger,
	)
}

func TestRegisterThenLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	user, sess, err := s.Register(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, user.Password, "hash must not leave the service")

	subject, err := s.Tokens.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)

	login, err := s.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	subject, err = s.Tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestRegister_MissingFields(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name                      string
		username, email, password string
	}{
		{"no username", "", "a@x.com", "pw"},
		{"no email", "alice", "", "pw"},
		{"no password", "alice", "a@x.com", ""},
		{"nothing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Register(ctx, tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, s.Store.LoadAll())
}

func TestRegister_DuplicateEmailLeavesStoreUnchanged(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Register(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, _, err = s.Register(ctx, "bob", "a@x.com", "pw2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	users := s.Store.LoadAll()
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestLogin_Failures(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Register(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = s.Login(ctx, "", "pw1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Login(ctx, "nobody@x.com", "pw1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_WithoutPasswordKeepsHash(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Register(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)
	before := s.Store.LoadAll()[0].Password

	u, err := s.UpdateProfile(ctx, "a@x.com", UpdateProfileInput{Username: "alice2", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice2", u.Username)

	after := s.Store.LoadAll()[0].Password
	assert.Equal(t, before, after)

	_, err = s.Login(ctx, "a@x.com", "pw1")
	assert.NoError(t, err)
}

func TestUpdateProfile_WithPasswordReplacesHash(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Register(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = s.UpdateProfile(ctx, "a@x.com", UpdateProfileInput{Username: "alice", Email: "a@x.com", Password: "pw2"})
	require.NoError(t, err)

	_, err = s.Login(ctx, "a@x.com", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "a@x.com", "pw2")
	assert.NoError(t, err)
}

func TestUpdateProfile_Failures(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.UpdateProfile(ctx, "ghost@x.com", UpdateProfileInput{Username: "x", Email: "x@x.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = s.Register(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = s.UpdateProfile(ctx, "a@x.com", UpdateProfileInput{Username: "", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.UpdateProfile(ctx, "a@x.com", UpdateProfileInput{Username: "alice", Email: ""})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfile_RekeysEmail(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Register(ctx, "alice", "old@x.com", "pw1")
	require.NoError(t, err)

	u, err := s.UpdateProfile(ctx, "old@x.com", UpdateProfileInput{Username: "alice", Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", u.Email)

	_, err = s.GetProfile(ctx, "old@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	got, err := s.GetProfile(ctx, "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestAuthenticate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, sess, err := s.Register(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	subject, err := s.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)

	_, err = s.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, helpers.ErrTokenInvalid)

	expired := helpers.NewTokenManager("test-secret", -time.Minute)
	tok, _, err := expired.Issue("a@x.com")
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, helpers.ErrTokenExpired)
}

// failingStore accepts reads but refuses every write.
type failingStore struct {
	users []entity.User
}

func (f *failingStore) LoadAll() []entity.User { return f.users }
func (f *failingStore) SaveAll([]entity.User) error {
	return errors.New("disk full")
}

func TestRegister_StoreWriteFailureStillIssuesToken(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s := NewService(
		&failingStore{},
		helpers.NewPasswordHasher(bcrypt.MinCost),
		helpers.NewTokenManager("test-secret", time.Hour),
		logger,
	)

	// The change is not durable, but the flow itself succeeds.
	_, sess, err := s.Register(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotNil(t, sess)
}

func TestEndToEndScenario(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Register(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	sess, err := s.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	subject, err := s.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", subject)

	_, _, err = s.Register(ctx, "bob", "a@x.com", "pw2")
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.UpdateProfile(ctx, "a@x.com", UpdateProfileInput{Username: "alice2", Email: "a@x.com", Password: "pw3"})
	require.NoError(t, err)

	_, err = s.Login(ctx, "a@x.com", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "a@x.com", "pw3")
	require.NoError(t, err)
}
