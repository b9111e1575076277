package cli

import (
	"log"
	"os"

	"playlist-backend/internal/cli/createuser"
	"playlist-backend/internal/cli/health"
	"playlist-backend/internal/cli/rotatekey"
	"playlist-backend/internal/env"
	"playlist-backend/internal/http"
	"playlist-backend/internal/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "playlistctl",
	Short: "Playlist backend admin CLI",
	Args:  cobra.OnlyValidArgs,
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New()
		env := env.New(logger, nil, nil, nil)
		createuser.Run(cmd, args, env)
	},
}

var rotateKeyCmd = &cobra.Command{
	Use:   "rotate-key",
	Short: "Generate a new token signing key and refresh the JWKS",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New()
		env := env.New(logger, nil, nil, nil)
		rotatekey.Run(cmd, args, env)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe a running server",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New()
		httpclient := http.New()
		httpclient.RetryMax = 5
		env := env.New(logger, nil, nil, httpclient)
		health.Run(cmd, args, env)
	},
}

func init() {
	createUserCmd.Flags().String("email", "", "email address for the new account")
	createUserCmd.Flags().String("password", "", "password for the new account")
	createUserCmd.MarkFlagRequired("email")
	createUserCmd.MarkFlagRequired("password")
	healthCmd.Flags().String("addr", "http://localhost:8080", "base URL of the server")
	rootCmd.AddCommand(createUserCmd, rotateKeyCmd, healthCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
		os.Exit(1)
	}
}
