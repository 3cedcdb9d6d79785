package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"taskboard/internal/board"
	"taskboard/internal/client"
	"taskboard/internal/config"
	"taskboard/internal/repository"
	"taskboard/internal/services"
	"taskboard/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds the dependencies shared by every command. The REST client and
// the store are opened lazily so that commands only touch what they use.
type App struct {
	config   *config.Config
	logger   *log.Logger
	out      io.Writer
	in       *bufio.Reader
	registry *CommandRegistry

	// customLogger is set when WithLogger was given; the root command then
	// keeps it instead of building one from config.
	customLogger bool

	mu       sync.Mutex
	taskAPI  board.TaskAPI
	store    repository.Store
	ownStore bool
}

// Option configures an App.
type Option func(*App)

// WithOutput redirects command output.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// WithInput sets where interactive answers are read from.
func WithInput(r io.Reader) Option {
	return func(a *App) {
		a.in = bufio.NewReader(r)
	}
}

// WithLogger sets the application logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *App) {
		a.logger = logger
		a.customLogger = true
	}
}

// WithTaskAPI injects the REST client used by the board-backed commands.
func WithTaskAPI(api board.TaskAPI) Option {
	return func(a *App) {
		a.taskAPI = api
	}
}

// WithStore injects the store used by serve, search and summary. The App
// does not close an injected store.
func WithStore(store repository.Store) Option {
	return func(a *App) {
		a.store = store
	}
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		config: cfg,
		logger: log.Default(),
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Registry returns the command registry.
func (a *App) Registry() *CommandRegistry {
	return a.registry
}

// Run executes the named command with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// Close releases the store if the App opened it.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil && a.ownStore {
		err := a.store.Close()
		a.store = nil
		return err
	}
	return nil
}

// TaskAPI returns the REST client, creating it from the client config on
// first use.
func (a *App) TaskAPI() (board.TaskAPI, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.taskAPI != nil {
		return a.taskAPI, nil
	}
	c, err := client.New(a.config.Client.BaseURL, client.WithTimeout(a.config.Client.Timeout))
	if err != nil {
		return nil, err
	}
	a.taskAPI = c
	return c, nil
}

// Store returns the task store, opening the configured one on first use.
func (a *App) Store(ctx context.Context) (repository.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}
	store, err := config.CreateStore(ctx, a.config)
	if err != nil {
		return nil, err
	}
	a.store = store
	a.ownStore = true
	return store, nil
}

// Services builds the service layer over the store.
func (a *App) Services(ctx context.Context) (*services.ServiceContainer, error) {
	store, err := a.Store(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewServiceContainer(store, validation.NewTaskValidatorWithConfig(a.config), nil), nil
}

// NewBoard creates a board over the REST client. Success notifications are
// printed; failures are returned by the board and reported by the caller.
func (a *App) NewBoard() (*board.Board, error) {
	api, err := a.TaskAPI()
	if err != nil {
		return nil, err
	}
	notifier := board.NotifierFunc(func(n board.Notification) {
		if n.Kind == board.Success {
			fmt.Fprintln(a.out, n.Message)
		}
	})
	return board.New(api, notifier, board.WithLogger(a.logger), board.WithClock(timeNow)), nil
}

// Confirm asks a yes/no question on the configured input.
func (a *App) Confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	answer, err := a.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
