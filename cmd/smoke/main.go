// Command smoke probes a deployed booking platform before a suite run: it
// pings the API and checks that admin credentials still authenticate. A
// non-zero exit means the environment is not worth starting the suites on.
package main

import (
	"context"
	"os"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/booker"
	"github.com/almoelda/restful-booker-automation/internal/config"
	"github.com/almoelda/restful-booker-automation/internal/logging"
	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func smoke(client *booker.Client, credentials schema.AuthCredentials, log *zerolog.Logger) int {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body, err := client.HealthCheck(ctx)
	if err != nil {
		log.Error().Err(err).Msg("health check failed")
		return 1
	}

	log.Info().Str("body", body).Msg("platform is up")

	result, err := client.Authenticate(ctx, credentials)
	if err != nil {
		log.Error().Err(err).Msg("auth endpoint failed")
		return 1
	}

	if !result.Authenticated() {
		log.Error().Str("reason", result.Reason).Msg("admin credentials rejected")
		return 1
	}

	log.Info().Msg("admin credentials accepted")

	return 0
}

func main() {
	_ = godotenv.Load(".env")

	cfg := config.FromEnv()
	log := logging.New(cfg.LogLevel)

	client := booker.New(log, booker.WithBaseURL(cfg.APIBaseURL))

	credentials := schema.AuthCredentials{
		Username: envOr("ADMIN_USERNAME", "admin"),
		Password: envOr("ADMIN_PASSWORD", "password"),
	}

	os.Exit(smoke(client, credentials, log))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
