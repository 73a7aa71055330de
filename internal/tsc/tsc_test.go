package tsc

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"tscprobe/internal/cpuid"
)

// fixedLeaf returns a Leaf func that reports the given registers for any leaf.
func fixedLeaf(eax, ebx, ecx, edx uint32) func(uint32) (uint32, uint32, uint32, uint32) {
	return func(uint32) (uint32, uint32, uint32, uint32) {
		return eax, ebx, ecx, edx
	}
}

type fakeMSR struct {
	value uint64
	err   error
}

func (f fakeMSR) Read(offset int64) (uint64, error) {
	return f.value, f.err
}

// unavailableMSR stands in for a missing or unreadable msr device.
var unavailableMSR = fakeMSR{err: errors.New("no such device")}

func TestHzFromLeaf(t *testing.T) {
	p := &Probe{Leaf: fixedLeaf(1, 2, 24000000, 0), MSR: unavailableMSR}
	assert.Equal(t, uint64(48000000), p.Hz(0, 0x15))
}

func TestHzCrystalTable(t *testing.T) {
	// leaf reports a ratio but no crystal frequency; the Denverton entry
	// in the table must supply exactly 25.0 MHz
	p := &Probe{Leaf: fixedLeaf(1, 1, 0, 0), MSR: unavailableMSR}
	assert.Equal(t, uint64(25000000), p.Hz(cpuid.ModelAtomGoldmontD, 0x15))
}

func TestHzCrystalTableMiss(t *testing.T) {
	p := &Probe{Leaf: fixedLeaf(1, 1, 0, 0), MSR: unavailableMSR}
	assert.Equal(t, uint64(0), p.Hz(0x42, 0x15))
}

func TestHzLeafNotPopulated(t *testing.T) {
	// a zero numerator abandons the fast path regardless of the other registers
	p := &Probe{Leaf: fixedLeaf(7, 0, 24000000, 9), MSR: unavailableMSR}
	assert.Equal(t, uint64(0), p.Hz(cpuid.ModelSkylake, 0x15))
}

func TestHzLeafOutOfRange(t *testing.T) {
	p := &Probe{
		Leaf: func(uint32) (uint32, uint32, uint32, uint32) {
			t.Fatal("leaf queried although the maximum leaf excludes it")
			return 0, 0, 0, 0
		},
		MSR: fakeMSR{value: 0x2200},
	}
	// ratio 0x22 = 34, bus clock 100 MHz
	assert.Equal(t, uint64(3400000000), p.Hz(0, 0x14))
}

func TestHzFromMSR(t *testing.T) {
	tests := []struct {
		name     string
		model    uint8
		value    uint64
		expected uint64
	}{
		{"ratio times 100 MHz", 0, 0x2200, 3400000000},
		{"nehalem ratio times 133 MHz", cpuid.ModelNehalemEP, 0x1400, 2660000000},
		{"only bits 8-15 form the ratio", 0, 0xFF22FF, 3400000000},
		{"zero register value", 0, 0, 0},
	}
	for _, test := range tests {
		p := &Probe{Leaf: fixedLeaf(0, 0, 0, 0), MSR: fakeMSR{value: test.value}}
		assert.Equal(t, test.expected, p.Hz(test.model, 0), test.name)
	}
}

func TestHzMSRUnavailable(t *testing.T) {
	// permission denied, missing device, short read: all collapse to zero
	p := &Probe{Leaf: fixedLeaf(0, 0, 0, 0), MSR: unavailableMSR}
	assert.Equal(t, uint64(0), p.Hz(0, 0))
}

func TestHzEndToEnd(t *testing.T) {
	// Skylake with leaf 0x15 reporting ratio 1/2 and no crystal field:
	// 24 MHz from the table, halved
	p := &Probe{Leaf: fixedLeaf(2, 1, 0, 0), MSR: unavailableMSR}
	assert.Equal(t, uint64(12000000), p.Hz(cpuid.ModelSkylake, 0x15))
}

func TestBusClockMHz(t *testing.T) {
	for _, model := range []uint8{
		cpuid.ModelNehalem, cpuid.ModelNehalemG, cpuid.ModelNehalemEP, cpuid.ModelNehalemEX,
		cpuid.ModelWestmere, cpuid.ModelWestmereEP, cpuid.ModelWestmereEX,
	} {
		assert.Equal(t, uint64(133), busClockMHz(model), "model 0x%x", model)
	}
	for _, model := range []uint8{0, cpuid.ModelSkylake, cpuid.ModelAtomGoldmont, 0xFF} {
		assert.Equal(t, uint64(100), busClockMHz(model), "model 0x%x", model)
	}
}

func TestNewProbeDefaults(t *testing.T) {
	p := NewProbe()
	assert.NotNil(t, p.Leaf)
	assert.NotNil(t, p.MSR)
}
