package rotatekey

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"playlist-backend/internal/database"
	"playlist-backend/internal/env"
	playlistJWT "playlist-backend/internal/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func fatal(env *env.Env, msg string, args ...any) {
	env.Logger.Error(msg, args...)
	os.Exit(1)
}

// Generates a fresh RSA keypair, stores the private half in the database
// and writes the public half to the JWKS file the server validates against.
func Run(_ *cobra.Command, _ []string, env *env.Env) {
	jwksPath := os.Getenv("JWKS_PATH")
	if jwksPath == "" {
		fatal(env, "JWKS_PATH environment variable is not set")
	}

	env.Logger.Info("Generating RSA keypair")
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		fatal(env, "Failed to generate keypair", "error", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	env.Logger.Info("Connecting to database")
	db, err := database.NewDatabase(context.Background(), os.Getenv("DB_URL"))
	if err != nil {
		fatal(env, "Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		fatal(env, "Failed to apply schema", "error", err)
	}

	env.Logger.Info("Storing private key")
	if _, err := db.InsertPrivateKey(context.Background(), string(pemBytes)); err != nil {
		fatal(env, "Failed to store private key", "error", err)
	}

	kid := uuid.NewString()
	env.Logger.Info("Writing JWKS", "path", jwksPath, "kid", kid)
	if err := playlistJWT.WriteJWKS(jwksPath, &key.PublicKey, kid); err != nil {
		fatal(env, "Failed to write JWKS", "error", err)
	}

	env.Logger.Info("Signing key rotated")
}
