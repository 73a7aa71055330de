// Package probe is a subcommand of the root command. It identifies the host
// processor and reports its TSC frequency.
package probe

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	kcpuid "github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tscprobe/internal/common"
	"tscprobe/internal/cpuid"
	"tscprobe/internal/tsc"
)

const cmdName = "probe"

var examples = []string{
	fmt.Sprintf("  Identify the host processor:  $ %s %s", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Identify the processor and report its TSC frequency",
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
	if info.TSCHz == 0 {
		slog.Warn("TSC frequency could not be determined")
	}
	printReport(info)
	return nil
}

// printReport writes the line-oriented report to stderr. Fields beyond the
// raw CPUID decoding, brand name and core topology, come from the cpuid
// library's own detection.
func printReport(info cpuid.ProcessorInfo) {
	p := message.NewPrinter(language.English) // use printer to get commas at thousands
	lines := []struct {
		name  string
		value string
	}{
		{"Vendor", fmt.Sprintf("%s (%s)", info.VendorString, info.Vendor)},
		{"Brand", kcpuid.CPU.BrandName},
		{"Max CPUID leaf", fmt.Sprintf("0x%x", info.MaxLeaf)},
		{"Family", fmt.Sprintf("0x%x", info.Family)},
		{"Model", fmt.Sprintf("0x%x", info.Model)},
		{"Stepping", fmt.Sprintf("0x%x", info.Stepping)},
		{"Microarchitecture", cpuid.MicroArchitecture(info.Family, info.Model)},
		{"Physical cores", fmt.Sprintf("%d", kcpuid.CPU.PhysicalCores)},
		{"Logical cores", fmt.Sprintf("%d", kcpuid.CPU.LogicalCores)},
		{"Cache line (bytes)", fmt.Sprintf("%d", kcpuid.CPU.CacheLine)},
		{"TSC frequency (Hz)", p.Sprintf("%d", info.TSCHz)},
	}
	for _, line := range lines {
		fmt.Fprintf(os.Stderr, "%-20s %s\n", line.name+":", line.value)
	}
	// cross-check against the library's estimate, observational only
	if libHz := kcpuid.CPU.Hz; libHz > 0 && info.TSCHz > 0 && uint64(libHz) != info.TSCHz {
		slog.Debug("library frequency estimate differs",
			slog.Int64("library hz", libHz),
			slog.Uint64("probe hz", info.TSCHz))
	}
}
