package main

import (
	"github.com/joho/godotenv"

	"github.com/aryasetia/playgate/config"
	"github.com/aryasetia/playgate/internal/domain/entity"
	"github.com/aryasetia/playgate/internal/domain/repository"
	"github.com/aryasetia/playgate/internal/infrastructure/filestore"
	"github.com/aryasetia/playgate/pkg/helpers"
)

// Seeds the users file with a demo account for local development.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	store := filestore.NewUserStore(cfg.UsersFile, logger)
	hasher := helpers.NewPasswordHasher(cfg.BcryptCost)

	const demoEmail = "demo@playgate.local"

	users := store.LoadAll()
	if repository.FindByEmail(users, demoEmail) >= 0 {
		logger.WithField("email", demoEmail).Info("demo user already present, nothing to do")
		return
	}

	hash, err := hasher.Hash("demo1234")
	if err != nil {
		logger.WithError(err).Fatal("hash demo password failed")
	}

	users = append(users, entity.User{Username: "demo", Email: demoEmail, Password: hash})
	if err := store.SaveAll(users); err != nil {
		logger.WithError(err).Fatal("write users file failed")
	}
	logger.WithField("email", demoEmail).Info("demo user seeded")
}
