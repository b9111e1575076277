package health

import (
	"io"
	"os"

	"playlist-backend/internal/env"
	playlistHttp "playlist-backend/internal/http"

	"github.com/spf13/cobra"
)

func fatal(env *env.Env, msg string, args ...any) {
	env.Logger.Error(msg, args...)
	os.Exit(1)
}

func Run(cmd *cobra.Command, _ []string, env *env.Env) {
	addr, _ := cmd.Flags().GetString("addr")

	env.Logger.Info("Probing server", "addr", addr)
	res, err := env.Client.Get(addr + "/health")
	if err != nil {
		fatal(env, "Health probe failed", "error", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		fatal(env, "Failed to read response", "error", err)
	}
	if res.StatusCode != 200 {
		fatal(env, "Server unhealthy", "error", playlistHttp.NewHTTPError(res.StatusCode, res.Status, string(body)))
	}

	env.Logger.Info("Server healthy", "status", res.Status)
}
