package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/tripplan/internal/config"
	"github.com/ja-he/tripplan/internal/server"
)

// ServeCommand contains flags for the `serve` command line command, for
// `go-flags` to parse command line args into.
type ServeCommand struct {
	Address         string        `short:"a" long:"address" default:":8080" description:"the address to listen on" value-name:"<host:port>"`
	Authorization   string        `long:"authorization" description:"the Authorization header value clients must send (overrides config and env)" value-name:"<value>"`
	Origins         []string      `long:"origin" description:"an allowed CORS origin (repeatable; all if omitted)" value-name:"<origin>"`
	ShutdownTimeout time.Duration `long:"shutdown-timeout" default:"5s" description:"how long to wait for open requests on shutdown"`

	Backend BackendFlags `group:"Backend Options"`
}

// Execute executes the serve command.
// (This gets called by `go-flags` when `serve` is provided on the command line)
func (command *ServeCommand) Execute(args []string) error {
	home := tripplanHome()
	configData, err := loadConfig(home, config.Dark)
	if err != nil {
		return err
	}
	backendConfig := command.Backend.apply(configData.Backend)
	if backendConfig.Kind == "rest" {
		log.Warn().Str("endpoint", backendConfig.Endpoint).Msg("serving a REST backend, requests will be proxied")
	}

	authorization := backendConfig.Authorization
	if command.Authorization != "" {
		authorization = command.Authorization
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, home, backendConfig)
	if err != nil {
		return err
	}
	defer backend.Close()

	log.Info().Str("address", command.Address).Str("backend", backendConfig.Kind).Msg("serving trip API")
	return server.New(backend, authorization, command.Origins).ListenAndServe(ctx, command.Address, command.ShutdownTimeout)
}
