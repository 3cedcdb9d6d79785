package cli

import (
	"context"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
	"taskboard/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "taskboard",
		Short: "A task board with a REST API, a terminal client and a CLI",
		Long: `Taskboard tracks to-do items with a title, description, status and due date.

The serve command exposes the tasks over a JSON REST API under /api/tasks.
The tui, list, add, edit, complete and delete commands talk to that API.
The search and summary commands read the task store directly.

EXAMPLES:
  taskboard serve                                   # Start the API on :5000
  taskboard tui                                     # Interactive board
  taskboard add "Buy milk" --due 2025-01-15         # Create a task
  taskboard list --search milk --status pending     # Filter the board
  taskboard complete 3                              # Mark task 3 completed
  taskboard delete 3 --yes                          # Delete without asking
  taskboard search "oat milk" --sort due            # Full-text search

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    PORT, TASKBOARD_HOST                 Listen address (default :5000)
    FRONTEND_ORIGIN                      CORS allow-origin (default *)
    TASKBOARD_SHUTDOWN_TIMEOUT           Graceful shutdown budget (default 15s)
    TASKBOARD_DB_DRIVER                  sqlite or mongo (default sqlite)
    TASKBOARD_DB_DIR                     SQLite directory (default ~/.taskboard)
    TASKBOARD_DB_FILENAME                SQLite file (default taskboard.db)
    TASKBOARD_DB_QUERY_TIMEOUT           Per-operation store timeout (default 10s)
    MONGO_URI                            Mongo connection (default mongodb://localhost:27017)
    TASKBOARD_MONGO_DATABASE             Mongo database (default taskboard)
    NEXT_PUBLIC_API_BASE_URL             API used by clients (default http://localhost:5000/api/tasks)
    TASKBOARD_CLIENT_TIMEOUT             Client request timeout (default 10s)
    TASKBOARD_LOG_LEVEL                  debug, info, warn, error (default info)
    TASKBOARD_LOG_FORMAT                 text, json, logfmt (default text)
    TASKBOARD_DEBUG                      Force debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests.
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Server configuration
	flags.String("host", "", "Listen host (overrides TASKBOARD_HOST)")
	flags.Int("port", 0, "Listen port (overrides PORT)")
	flags.String("frontend-origin", "", "CORS allow-origin (overrides FRONTEND_ORIGIN)")

	// Store configuration
	flags.String("db-driver", "", "Store driver, sqlite or mongo (overrides TASKBOARD_DB_DRIVER)")
	flags.String("db-dir", "", "SQLite directory (overrides TASKBOARD_DB_DIR)")
	flags.String("db-filename", "", "SQLite filename (overrides TASKBOARD_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Store operation timeout (overrides TASKBOARD_DB_QUERY_TIMEOUT)")
	flags.String("mongo-uri", "", "Mongo connection URI (overrides MONGO_URI)")
	flags.String("mongo-database", "", "Mongo database (overrides TASKBOARD_MONGO_DATABASE)")

	// Client configuration
	flags.String("api-url", "", "Tasks collection URL (overrides NEXT_PUBLIC_API_BASE_URL)")
	flags.Duration("client-timeout", 0, "Client request timeout (overrides TASKBOARD_CLIENT_TIMEOUT)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides TASKBOARD_LOG_LEVEL)")
	flags.String("log-format", "", "Log format (overrides TASKBOARD_LOG_FORMAT)")
	flags.Bool("debug", false, "Enable debug logging (overrides TASKBOARD_DEBUG)")
}

// overridesFromFlags collects the flags the user actually set.
func (r *RootCommand) overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	o := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	o.Host = str("host")
	o.FrontendOrigin = str("frontend-origin")
	o.DBDriver = str("db-driver")
	o.DBDir = str("db-dir")
	o.DBFilename = str("db-filename")
	o.MongoURI = str("mongo-uri")
	o.MongoDatabase = str("mongo-database")
	o.BaseURL = str("api-url")
	o.LogLevel = str("log-level")
	o.LogFormat = str("log-format")

	if flags.Changed("port") {
		v, _ := flags.GetInt("port")
		o.Port = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		o.DBQueryTimeout = &v
	}
	if flags.Changed("client-timeout") {
		v, _ := flags.GetDuration("client-timeout")
		o.ClientTimeout = &v
	}
	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		o.Debug = &v
	}
	return o
}

// loadConfig resolves defaults, environment and flags into the app config.
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.overridesFromFlags(cmd))
	if err != nil {
		return err
	}
	*r.app.config = *cfg

	if !r.app.customLogger {
		r.app.logger = logging.NewFromConfig(cfg.Logging)
		logging.SetDefault(r.app.logger)
	}
	logging.Debugf("config loaded: driver=%s api=%s", cfg.Database.Driver, cfg.Client.BaseURL)
	return nil
}

func lookup[T Command](r *CommandRegistry, name string) T {
	c, _ := r.Get(name)
	return c.(T)
}

// run returns a RunE that executes the registered command.
func (r *RootCommand) run(name string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return r.app.registry.Execute(cmd.Context(), name, args)
	}
}

// runWithTimeout bounds one-shot client commands by the client timeout.
func (r *RootCommand) runWithTimeout(name string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*r.app.config.Client.Timeout)
		defer cancel()
		return r.app.registry.Execute(ctx, name, args)
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	reg := r.app.registry

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task REST API",
		Long:  "Serve the task REST API under /api/tasks until interrupted. SIGINT and SIGTERM trigger a graceful shutdown.",
		Args:  cobra.NoArgs,
		RunE:  r.run("serve"),
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task board",
		Args:  cobra.NoArgs,
		RunE:  r.run("tui"),
	}

	list := lookup[*ListCommand](reg, "list")
	listCmd := &cobra.Command{
		Use:   "list [text]",
		Short: "List tasks",
		Long: `List tasks, optionally filtered by text and status.

Text matches the title or description, case-insensitively.

Examples:
  taskboard list
  taskboard list milk
  taskboard list --status completed --format csv`,
		RunE: r.runWithTimeout("list"),
	}
	listCmd.Flags().StringVar(&list.Search, "search", "", "Text to match in title or description")
	listCmd.Flags().StringVar(&list.Status, "status", "", "Only show pending, in-progress or completed tasks")
	listCmd.Flags().StringVar(&list.Format, "format", FormatTable, "Output format: table, csv or json")

	add := lookup[*AddCommand](reg, "add")
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long:  "Add a task. A task due today starts in progress, any other task starts pending.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.runWithTimeout("add"),
	}
	addCmd.Flags().StringVarP(&add.Description, "description", "d", "", "Task description")
	addCmd.Flags().StringVar(&add.Due, "due", "", "Due date, YYYY-MM-DD")

	edit := lookup[*EditCommand](reg, "edit")
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task's title, description or due date",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runWithTimeout("edit"),
	}
	editCmd.Flags().StringVar(&edit.Title, "title", "", "New title")
	editCmd.Flags().StringVarP(&edit.Description, "description", "d", "", "New description")
	editCmd.Flags().StringVar(&edit.Due, "due", "", "New due date, YYYY-MM-DD")
	editCmd.Flags().BoolVar(&edit.ClearDue, "clear-due", false, "Remove the due date")
	editCmd.Flags().BoolVar(&edit.InProgress, "in-progress", false, "Also move the task to in-progress")
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")

	completeCmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runWithTimeout("complete"),
	}

	del := lookup[*DeleteCommand](reg, "delete")
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task. You are asked to confirm unless --yes is given. This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("delete"),
	}
	deleteCmd.Flags().BoolVarP(&del.Yes, "yes", "y", false, "Do not ask for confirmation")

	search := lookup[*SearchCommand](reg, "search")
	searchCmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Full-text search over the task store",
		Long: `Search task titles and descriptions with the store's full-text index.
Words match by prefix, so "mil" finds "milk".`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run("search"),
	}
	searchCmd.Flags().StringVar(&search.Status, "status", "", "Only show tasks with this status")
	searchCmd.Flags().StringVar(&search.Sort, "sort", "", "Sort by created, title, due or status (default relevance)")
	searchCmd.Flags().StringVar(&search.Format, "format", FormatTable, "Output format: table, csv or json")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Count tasks by status and due date",
		Args:  cobra.NoArgs,
		RunE:  r.run("summary"),
	}

	r.cmd.AddCommand(
		serveCmd,
		tuiCmd,
		listCmd,
		addCmd,
		editCmd,
		completeCmd,
		deleteCmd,
		searchCmd,
		summaryCmd,
	)
}
