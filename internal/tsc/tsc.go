/*
Package tsc determines the processor's time-stamp-counter frequency and
measures elapsed ticks over wall-clock intervals.

Frequency discovery tries three sources in priority order: the crystal ratio
reported by CPUID leaf 0x15, a fixed crystal frequency table for models whose
leaf omits it, and finally the platform-info MSR scaled by the bus clock. A
result of zero means every source failed.
*/
package tsc

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"

	"tscprobe/internal/cpuid"
	"tscprobe/internal/msr"
)

// tscLeaf is the CPUID leaf reporting the TSC/crystal clock ratio.
const tscLeaf = 0x15

// crystalHz lists nominal crystal frequencies for models whose leaf 0x15
// reports a zero crystal field.
var crystalHz = map[uint8]uint32{
	cpuid.ModelSkylakeL:         24000000, // 24.0 MHz
	cpuid.ModelSkylake:          24000000, // 24.0 MHz
	cpuid.ModelAtomGoldmontD:    25000000, // 25.0 MHz
	cpuid.ModelAtomGoldmont:     19200000, // 19.2 MHz
	cpuid.ModelAtomGoldmontPlus: 19200000, // 19.2 MHz
}

var (
	nehalemModels  = mapset.NewSet[uint8](cpuid.ModelNehalem, cpuid.ModelNehalemG, cpuid.ModelNehalemEP, cpuid.ModelNehalemEX)
	westmereModels = mapset.NewSet[uint8](cpuid.ModelWestmere, cpuid.ModelWestmereEP, cpuid.ModelWestmereEX)
)

// busClockMHz returns the bus clock used to scale the platform-info ratio.
// Nehalem and Westmere parts clock at 133 MHz; later parts use 100 MHz.
func busClockMHz(model uint8) uint64 {
	if nehalemModels.Contains(model) || westmereModels.Contains(model) {
		return 133
	}
	return 100
}

// Probe determines the TSC frequency of the host processor. Leaf and MSR
// are the two hardware query points; tests substitute both.
type Probe struct {
	Leaf func(leaf uint32) (eax, ebx, ecx, edx uint32)
	MSR  msr.Reader
}

// NewProbe returns a Probe wired to the host's CPUID instruction and the
// msr device of logical CPU 0.
func NewProbe() *Probe {
	return &Probe{
		Leaf: cpuid.Query,
		MSR:  msr.Device{CPU: 0},
	}
}

// Hz returns the TSC frequency in Hz, or 0 when every discovery path fails.
// Callers must treat 0 as undetermined; dividing by it is on them.
func (p *Probe) Hz(model uint8, maxLeaf uint32) uint64 {
	hz := p.leafHz(model, maxLeaf)
	if hz == 0 {
		hz = p.msrHz(model)
	}
	return hz
}

// leafHz derives the frequency from CPUID leaf 0x15: crystal Hz times the
// TSC/crystal ratio. A zero numerator means the leaf is not populated; a
// zero crystal field falls back to the per-model table.
func (p *Probe) leafHz(model uint8, maxLeaf uint32) uint64 {
	if maxLeaf < tscLeaf {
		return 0
	}
	eax, ebx, ecx, edx := p.Leaf(tscLeaf)
	slog.Debug("cpuid leaf 0x15",
		slog.Uint64("eax denominator", uint64(eax)),
		slog.Uint64("ebx numerator", uint64(ebx)),
		slog.Uint64("ecx crystal hz", uint64(ecx)),
		slog.Uint64("edx", uint64(edx)))
	if ebx == 0 {
		return 0
	}
	crystal := ecx
	if crystal == 0 {
		crystal = crystalHz[model]
	}
	if crystal == 0 {
		return 0
	}
	// multiply before divide, the ratio alone loses precision
	hz := uint64(crystal) * uint64(ebx) / uint64(eax)
	slog.Debug("TSC from crystal clock",
		slog.Uint64("mhz", hz/1000000),
		slog.Uint64("crystal hz", uint64(crystal)),
		slog.Uint64("numerator", uint64(ebx)),
		slog.Uint64("denominator", uint64(eax)))
	return hz
}

// msrHz derives the frequency from the platform-info register: the ratio in
// bits 8-15 times the bus clock. Any failure to read, and a register value
// of exactly zero, yield 0 without distinguishing the causes.
func (p *Probe) msrHz(model uint8) uint64 {
	value, err := p.MSR.Read(msr.PlatformInfo)
	if err != nil {
		slog.Debug("platform info register unavailable", slog.String("error", err.Error()))
		return 0
	}
	if value == 0 {
		return 0
	}
	ratio := (value >> 8) & 0xff
	return ratio * busClockMHz(model) * 1000000
}
