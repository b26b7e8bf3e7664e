package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/aryasetia/playgate/internal/domain/entity"
	"github.com/aryasetia/playgate/internal/domain/repository"
)

// UserStore persists the user collection as a single JSON file.
// Every mutation rewrites the file in full; readers always see either
// the previous or the new complete collection.
type UserStore struct {
	path   string
	logger *logrus.Logger
}

func NewUserStore(path string, logger *logrus.Logger) *UserStore {
	return &UserStore{path: path, logger: logger}
}

func (s *UserStore) LoadAll() []entity.User {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.warn("read users file failed", err)
		return []entity.User{}
	}

	var users []entity.User
	if err := json.Unmarshal(data, &users); err != nil {
		s.warn("parse users file failed", err)
		return []entity.User{}
	}
	if users == nil {
		users = []entity.User{}
	}
	return users
}

func (s *UserStore) SaveAll(users []entity.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		s.warn("encode users failed", err)
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.warn("create users dir failed", err)
			return err
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.warn("write users file failed", err)
		return err
	}
	return nil
}

func (s *UserStore) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn(msg)
	}
}

var _ repository.UserStore = (*UserStore)(nil)
