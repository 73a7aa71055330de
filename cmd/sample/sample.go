// Package sample is a subcommand of the root command. It measures elapsed
// TSC ticks over fixed one second intervals until the process is killed.
package sample

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tscprobe/internal/common"
	"tscprobe/internal/cpuid"
	"tscprobe/internal/tsc"
)

const cmdName = "sample"

// sampleInterval is fixed; changing it means recompiling.
const sampleInterval = 1000 * time.Millisecond

var examples = []string{
	fmt.Sprintf("  Measure TSC ticks, one line per second:  $ %s %s", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Measure elapsed TSC ticks over 1 second intervals, forever",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

func runCmd(cmd *cobra.Command, args []string) error {
	info, err := cpuid.Detect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get processor info: %v\n", err)
		return err
	}
	info.TSCHz = tsc.NewProbe().Hz(info.Model, info.MaxLeaf)
	fmt.Fprintf(os.Stderr, "TSC: %d\n", info.TSCHz)

	p := message.NewPrinter(language.English) // commas at thousands on tick counts
	sampler := tsc.NewSampler(info.TSCHz, sampleInterval)
	// no termination condition; runs until externally killed
	for {
		p.Fprintf(os.Stderr, "ticks: %d\n", tsc.ReadCounter())
		delta, seconds := sampler.Sample()
		p.Fprintf(os.Stderr, "ticks for 1 second: %d\n", delta)
		fmt.Fprintf(os.Stderr, "duration: %f\n", seconds)
	}
}
