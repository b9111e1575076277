package createuser

import (
	"context"
	"os"

	"playlist-backend/internal/database"
	"playlist-backend/internal/env"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func fatal(env *env.Env, msg string, args ...any) {
	env.Logger.Error(msg, args...)
	os.Exit(1)
}

func Run(cmd *cobra.Command, _ []string, env *env.Env) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	env.Logger.Info("Connecting to database")
	db, err := database.NewDatabase(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fatal(env, "Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		fatal(env, "Failed to apply schema", "error", err)
	}

	env.Logger.Info("Hashing password")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fatal(env, "Failed to hash password", "error", err)
	}

	env.Logger.Info("Creating user")
	user, err := db.CreateUser(context.Background(), database.CreateUserParams{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		fatal(env, "Failed to create user", "error", err)
	}

	env.Logger.Info("User created", "id", user.ID.String(), "email", user.Email)
}
