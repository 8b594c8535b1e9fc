// Package main provides the entry point for the a11yscan CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/acessolab/a11yscan/internal/config"
	"github.com/acessolab/a11yscan/internal/database"
	"github.com/acessolab/a11yscan/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for a11yscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "a11yscan",
		Short: "Web accessibility evaluator for WCAG 2.2 and ABNT NBR 17225:2025",
		Long: `a11yscan evaluates websites against WCAG 2.2 and the Brazilian
accessibility standard ABNT NBR 17225:2025. It fetches a page, runs a
battery of automated checks, and prints a scored report in Portuguese.

Run without arguments to start an interactive session that prompts for
the URL and offers to export the report as JSON. Use the audit
subcommand for scripted, non-interactive evaluations.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runInteractiveCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// runInteractiveCmd starts the interactive evaluation session. This is
// the default behavior when a11yscan is invoked without a subcommand.
func runInteractiveCmd(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)
	logger := log.NewSecureLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	cfg := config.NewConfig()

	opts := []SessionOption{WithSessionLogger(logger)}

	// History persistence is best effort in the interactive session.
	// A broken database must not prevent an evaluation.
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		logger.Warn("audit history unavailable", "error", err)
	} else {
		defer db.Close()
		opts = append(opts, WithSessionDatabase(db))
	}

	session := NewInteractiveSession(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, opts...)
	return session.Run(ctx)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
