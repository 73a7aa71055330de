package tsc

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// scriptedCounter returns successive values from reads on each call.
func scriptedCounter(reads ...uint64) func() uint64 {
	i := 0
	return func() uint64 {
		v := reads[i]
		i++
		return v
	}
}

func TestSample(t *testing.T) {
	var slept time.Duration
	s := &Sampler{
		TSCHz:    3000,
		Interval: time.Second,
		now:      scriptedCounter(1000, 4000),
		sleep:    func(d time.Duration) { slept = d },
	}
	delta, seconds := s.Sample()
	assert.Equal(t, uint64(3000), delta)
	assert.InEpsilon(t, 1.0, seconds, 1e-12)
	assert.Equal(t, time.Second, slept)
}

func TestSampleFractionalSecond(t *testing.T) {
	s := &Sampler{
		TSCHz:    2400000000,
		Interval: time.Second,
		now:      scriptedCounter(0, 1200000000),
		sleep:    func(time.Duration) {},
	}
	delta, seconds := s.Sample()
	assert.Equal(t, uint64(1200000000), delta)
	assert.InEpsilon(t, 0.5, seconds, 1e-12)
}

func TestSampleCounterWrap(t *testing.T) {
	s := &Sampler{
		TSCHz:    100,
		Interval: time.Second,
		now:      scriptedCounter(math.MaxUint64-9, 40),
		sleep:    func(time.Duration) {},
	}
	delta, _ := s.Sample()
	assert.Equal(t, uint64(50), delta)
}

// An undetermined frequency is not recovered from: the division produces
// +Inf which flows straight into the output.
func TestSampleZeroFrequency(t *testing.T) {
	s := &Sampler{
		TSCHz:    0,
		Interval: time.Second,
		now:      scriptedCounter(100, 200),
		sleep:    func(time.Duration) {},
	}
	delta, seconds := s.Sample()
	assert.Equal(t, uint64(100), delta)
	assert.True(t, math.IsInf(seconds, 1))
}

func TestNewSamplerDefaults(t *testing.T) {
	s := NewSampler(1000, time.Second)
	assert.Equal(t, uint64(1000), s.TSCHz)
	assert.Equal(t, time.Second, s.Interval)
	assert.NotNil(t, s.now)
	assert.NotNil(t, s.sleep)
}
