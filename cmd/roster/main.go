package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/asakaida/edurecords/internal/entities"
	"github.com/asakaida/edurecords/internal/infrastructure/config"
	"github.com/asakaida/edurecords/internal/infrastructure/database"
	"github.com/asakaida/edurecords/internal/infrastructure/logging"
	"github.com/spf13/cobra"
)

var (
	envFlag     string
	migrateFlag bool
	logger      = logging.Default()
	store       database.Store
	roster      *app
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage students and teachers in the configured database",
	Long: `Manage students and teachers in the configured database.
The backend (PostgreSQL or SQLite) is selected by DB_DRIVER in .env.<env>.`,
	SilenceUsage:       true,
	PersistentPreRunE:  openStore,
	PersistentPostRunE: closeStore,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the sample scenario",
	Long: `Save Alice (student) and Dr. Smith (teacher), list everyone,
set Alice's age to 21, delete Dr. Smith and list again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return roster.demo(cmd.Context())
	},
}

var addCmd = &cobra.Command{
	Use:   "add <student|teacher> <name> <age> <major|subject>",
	Short: "Save a student or a teacher",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return roster.add(cmd.Context(), kindFromArg(args[0]), args[1], args[2], args[3])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored person",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return roster.list(cmd.Context(), "Persons in database:")
	},
}

var updateAgeCmd = &cobra.Command{
	Use:   "update-age <name> <age>",
	Short: "Set the age of every person with the given name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return roster.updateAge(cmd.Context(), args[0], args[1])
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete every person with the given name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return roster.delete(cmd.Context(), args[0])
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export every stored person to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return roster.export(cmd.Context(), args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Save every person listed in an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return roster.importRoster(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFlag, "env", "e", "dev", "Environment to use (dev, test, prod)")
	rootCmd.PersistentFlags().BoolVar(&migrateFlag, "migrate", false, "Apply pending migrations before running the command")

	addCmd.Long = fmt.Sprintf("Save a person of one of the kinds: %s.\nThe last argument is the major of a student or the subject of a teacher.", kindNames())

	rootCmd.AddCommand(demoCmd, addCmd, listCmd, updateAgeCmd, deleteCmd, exportCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("roster command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// kindFromArg matches a command-line kind name case-insensitively against the known kinds
// Unknown names are returned unchanged so the factory reports them.
func kindFromArg(arg string) string {
	for _, k := range entities.Kinds {
		if strings.EqualFold(arg, string(k)) {
			return string(k)
		}
	}
	return arg
}

func kindNames() string {
	names := make([]string, 0, len(entities.Kinds))
	for _, k := range entities.Kinds {
		names = append(names, strings.ToLower(string(k)))
	}
	return strings.Join(names, ", ")
}

func openStore(cmd *cobra.Command, args []string) error {
	if err := config.InitConfig(envFlag); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = logging.New(cfg.Log).With(slog.String("env", envFlag))

	store, err = database.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if migrateFlag {
		if err := store.RunMigrations(); err != nil {
			return err
		}
		logger.Debug("migrations applied", slog.String("driver", store.Driver()))
	}

	repo, err := database.NewPersonRepository(store)
	if err != nil {
		return err
	}

	roster = &app{repo: repo, out: cmd.OutOrStdout()}
	return nil
}

func closeStore(cmd *cobra.Command, args []string) error {
	if store == nil {
		return nil
	}
	return store.Close()
}
