package cli

import (
	"context"
	"fmt"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"taskboard/internal/api"
)

// ServeCommand runs the REST API until SIGINT or SIGTERM.
type ServeCommand struct {
	app *App
	eh  *ErrorHandler
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app, eh: NewErrorHandler()}
}

// Server builds the HTTP server over the configured store without
// starting it.
func (c *ServeCommand) Server(ctx context.Context) (*api.Server, error) {
	container, err := c.app.Services(ctx)
	if err != nil {
		return nil, c.eh.Handle("open task store", err)
	}

	cfg := c.app.config.Server
	router := api.NewRouter(container.TaskService, api.RouterOptions{
		AllowedOrigin: cfg.FrontendOrigin,
		BodyLimit:     cfg.BodyLimit,
		Logger:        c.app.logger,
	})
	return api.NewServer(c.app.config.Address(), router, c.app.logger), nil
}

// Execute starts the server and blocks until it has shut down.
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	srv, err := c.Server(ctx)
	if err != nil {
		return err
	}
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.app.config.Address(), err)
	}

	c.app.logger.Info("store ready", "driver", c.app.config.Database.Driver)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	wait := gfshutdown.GracefulShutdown(ctx, c.app.config.Server.ShutdownTimeout, map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	// Serve returns nil as soon as Shutdown begins. In-flight requests are
	// drained only once wait reports.
	var code int
	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
		code = <-wait
	case code = <-wait:
	}

	if code != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", code)
	}
	c.app.logger.Info("server stopped")
	return nil
}
