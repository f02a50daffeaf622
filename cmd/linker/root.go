package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/siherrmann/linker"
	"github.com/siherrmann/linker/helper"
	"github.com/siherrmann/linker/model"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile         string
	sourceFolder    string
	connectionsFile string
	messagesFile    string
	timeZone        string
	store           bool
	verbose         bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "linker",
		Short:         "Import a LinkedIn data export into people and messages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file to load if it exists")
	flags.StringVar(&opts.sourceFolder, "source", "", "Folder of the export (default: $LINKER_SOURCE_FOLDER or .)")
	flags.StringVar(&opts.connectionsFile, "connections", "", "Connections file name inside the source folder")
	flags.StringVar(&opts.messagesFile, "messages", "", "Messages file name inside the source folder")
	flags.StringVar(&opts.timeZone, "timezone", "", "IANA time zone for message times (default: local)")
	flags.BoolVar(&opts.store, "store", false, "Store the result in Postgres configured by DB_* variables")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log rejected rows")

	cmd.AddCommand(newImportCmd(&opts))
	cmd.AddCommand(newConnectionsCmd(&opts))
	cmd.AddCommand(newMessagesCmd(&opts))
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}

// loadConfig reads the environment file and applies flags over the environment
func loadConfig(opts *rootOptions) (*model.Config, error) {
	if opts.envFile != "" {
		err := godotenv.Load(opts.envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, withCode(exitConfig, fmt.Errorf("load %s: %w", opts.envFile, err))
		}
	}

	config, err := model.NewConfig()
	if err != nil {
		return nil, withCode(exitConfig, err)
	}

	if opts.sourceFolder != "" {
		config.SourceFolder = opts.sourceFolder
	}
	if opts.connectionsFile != "" {
		config.ConnectionsFile = opts.connectionsFile
	}
	if opts.messagesFile != "" {
		config.MessagesFile = opts.messagesFile
	}
	if opts.timeZone != "" {
		config.TimeZone = opts.timeZone
		if _, err := config.Location(); err != nil {
			return nil, withCode(exitUsage, fmt.Errorf("invalid --timezone: %w", err))
		}
	}

	return config, nil
}

func newLinker(cmd *cobra.Command, opts *rootOptions) (*linker.Linker, error) {
	config, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	var dbConfig *helper.DatabaseConfiguration
	if opts.store {
		dbConfig, err = helper.NewDatabaseConfiguration()
		if err != nil {
			return nil, withCode(exitConfig, err)
		}
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := helper.NewLogger(cmd.ErrOrStderr(), level)

	l, err := linker.NewLinkerWithLogger(config, dbConfig, logger)
	if err != nil {
		if dbConfig != nil {
			return nil, withCode(exitDB, err)
		}
		return nil, withCode(exitConfig, err)
	}

	return l, nil
}
