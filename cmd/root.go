// Package cmd provides the command line interface for the application.
package cmd

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tscprobe/cmd/probe"
	"tscprobe/cmd/sample"
	"tscprobe/internal/common"
)

var gVersion = "9.9.9" // overwritten by ldflags at build time

// LongAppName is the name of the application
const LongAppName = "TSC Probe"

var examples = []string{
	fmt.Sprintf("  Identify the processor and its TSC frequency:   $ %s probe", common.AppName),
	fmt.Sprintf("  Measure TSC ticks over 1 second intervals:      $ %s sample", common.AppName),
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:               common.AppName,
	Short:             common.AppName,
	Long:              fmt.Sprintf(`%s (%s) reports the host processor's identity and time-stamp-counter frequency, and measures elapsed TSC ticks against the wall clock.`, LongAppName, common.AppName),
	Example:           strings.Join(examples, "\n"),
	PersistentPreRunE: initializeApplication, // will only be run if command has a 'Run' function
	Version:           gVersion,
}

var (
	// logging
	flagDebug   bool
	flagLogJSON bool
)

const (
	flagDebugName   = "debug"
	flagLogJSONName = "log-json"
)

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{}) // block the help command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.AddGroup([]*cobra.Group{{ID: "primary", Title: "Commands:"}}...)
	rootCmd.AddCommand(probe.Cmd)
	rootCmd.AddCommand(sample.Cmd)
	// Global (persistent) flags
	rootCmd.PersistentFlags().BoolVar(&flagDebug, flagDebugName, false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, flagLogJSONName, false, "write logs as JSON")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.EnableCommandSorting = false
	cobra.EnableCaseInsensitive = true
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initializeApplication(cmd *cobra.Command, args []string) error {
	// configure logging
	var logOpts slog.HandlerOptions
	if flagDebug {
		logOpts.Level = slog.LevelDebug
		logOpts.AddSource = true
	} else {
		logOpts.Level = slog.LevelInfo
		logOpts.AddSource = false
	}
	// stderr is the only stream this tool writes to
	var handler slog.Handler
	if flagLogJSON {
		handler = slog.NewJSONHandler(os.Stderr, &logOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, &logOpts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Info("Starting up", slog.String("app", common.AppName), slog.String("version", gVersion), slog.Int("PID", os.Getpid()), slog.String("arguments", strings.Join(os.Args, " ")))
	cmd.Flags().Visit(func(f *pflag.Flag) {
		slog.Debug("flag", slog.String("name", f.Name), slog.String("value", f.Value.String()))
	})
	return nil
}
