package container

import (
	"github.com/sirupsen/logrus"

	"github.com/aryasetia/playgate/config"
	"github.com/aryasetia/playgate/internal/domain/repository"
	"github.com/aryasetia/playgate/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg    *config.Config
	logger *logrus.Logger
	store  repository.UserStore
	hasher *helpers.PasswordHasher
	tokens *helpers.TokenManager
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetStore(s repository.UserStore) { store = s }
func GetStore() repository.UserStore  { return store }

func SetHasher(h *helpers.PasswordHasher) { hasher = h }
func GetHasher() *helpers.PasswordHasher  { return hasher }

func SetTokens(t *helpers.TokenManager) { tokens = t }
func GetTokens() *helpers.TokenManager  { return tokens }
