// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package tsc

import "time"

// Sampler measures elapsed TSC ticks across a fixed wall-clock interval.
type Sampler struct {
	TSCHz    uint64
	Interval time.Duration

	now   func() uint64
	sleep func(time.Duration)
}

func NewSampler(tscHz uint64, interval time.Duration) *Sampler {
	return &Sampler{
		TSCHz:    tscHz,
		Interval: interval,
		now:      ReadCounter,
		sleep:    time.Sleep,
	}
}

// Sample reads the counter, sleeps for the interval, reads it again, and
// returns the tick delta with the elapsed seconds it implies. The delta is
// unsigned and wraps on counter rollover. A zero TSCHz yields +Inf seconds;
// that propagates into the output rather than being masked here.
func (s *Sampler) Sample() (delta uint64, seconds float64) {
	t1 := s.now()
	s.sleep(s.Interval)
	t2 := s.now()
	delta = t2 - t1
	seconds = float64(delta) / float64(s.TSCHz)
	return delta, seconds
}
