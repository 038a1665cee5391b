package main

import (
	"context"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/acolin/asso-ledger/internal/config"
	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/internal/repository"
	"github.com/acolin/asso-ledger/pkg/logger"
	"github.com/acolin/asso-ledger/pkg/pg"
)

// Admin CLI: runs migrations, and optionally seeds the first admin profile
// so the invitation chain has somewhere to start.
//
//	cli --env=.env --dir=./migrations
//	cli --env=.env --seed-admin --email=tresorier@asso.fr --password=...
func main() {
	err := config.Load(getEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
	}

	pgConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	if hasArg("--seed-admin") {
		seedAdmin(pgConf)
		return
	}

	err = pg.Migrate(pgConf, getMigrationPath())
	if err != nil {
		logger.Error("migration: error running migrations", "error", err)
	}
}

func seedAdmin(pgConf pg.Config) {
	email := argValue("--email=")
	password := argValue("--password=")
	if email == "" || password == "" {
		logger.Error("seed-admin requires --email= and --password=")
		return
	}

	db, err := pg.CreateReadWrite(pgConf, pgConf, false)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.Get().BcryptCost)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		return
	}

	profiles := repository.NewProfileRepository(db)
	created, err := profiles.Create(context.Background(), &model.Profile{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		DisplayName:  "Administrateur",
		Role:         model.RoleAdmin,
		PasswordHash: string(hash),
	})
	if err != nil {
		logger.Error("failed to create admin profile", "error", err)
		return
	}
	logger.Info("admin profile created", "id", created.ID, "email", created.Email)
}

func hasArg(flag string) bool {
	for _, v := range os.Args {
		if v == flag {
			return true
		}
	}
	return false
}

func argValue(prefix string) string {
	for _, v := range os.Args {
		if strings.HasPrefix(v, prefix) {
			return strings.TrimPrefix(v, prefix)
		}
	}
	return ""
}

func getEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	if _, err := os.Open(".env"); err != nil {
		logger.Error("failed to open the passed env file, got error" + err.Error())
		return ""
	}
	return ".env"
}

func getMigrationPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--dir=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the migrations dir, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	if _, err := os.Open("./migrations"); err != nil {
		logger.Error("failed to open the migrations dir, got error" + err.Error())
		return ""
	}
	return "./migrations"
}
