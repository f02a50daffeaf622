package main

import (
	"fmt"
	"io"

	"github.com/siherrmann/linker/core/ingest"
	"github.com/siherrmann/linker/model"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import connections and then messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLinker(cmd, opts)
			if err != nil {
				return err
			}
			defer l.Close()

			summary, err := l.Import()
			if err != nil {
				return withCode(exitImport, err)
			}

			out := cmd.OutOrStdout()
			printResult(out, "connections", summary.People)
			printResult(out, "messages", summary.Messages)
			printNotFound(out, summary.NotFound)
			return nil
		},
	}
}

func newConnectionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "connections",
		Short: "Import the connections export only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLinker(cmd, opts)
			if err != nil {
				return err
			}
			defer l.Close()

			result, err := l.ImportConnections()
			if err != nil {
				return withCode(exitImport, err)
			}

			printResult(cmd.OutOrStdout(), "connections", result)
			return nil
		},
	}
}

func newMessagesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "messages",
		Short: "Import the messages export against people already stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.store {
				return withCode(exitUsage, fmt.Errorf("messages needs --store, people are loaded from the database"))
			}

			l, err := newLinker(cmd, opts)
			if err != nil {
				return err
			}
			defer l.Close()

			if _, err := l.LoadPeople(); err != nil {
				return withCode(exitDB, err)
			}

			result, notFound, err := l.ImportMessages()
			if err != nil {
				return withCode(exitImport, err)
			}

			out := cmd.OutOrStdout()
			printResult(out, "messages", result)
			printNotFound(out, notFound)
			return nil
		},
	}
}

func printResult[T model.Person | model.Message](out io.Writer, name string, result *ingest.Result[T]) {
	fmt.Fprintf(out, "%s: %d rows, %d imported, %d rejected, %d failed\n",
		name, result.Rows, len(result.Entities), result.Rejected, result.Failed)
}

func printNotFound(out io.Writer, notFound []string) {
	if len(notFound) == 0 {
		return
	}
	fmt.Fprintf(out, "profiles not found: %d\n", len(notFound))
	for _, key := range notFound {
		fmt.Fprintf(out, "  %s\n", key)
	}
}
