// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build amd64

package tsc

// ReadCounter returns the current time-stamp counter value. The read is
// bracketed by LFENCE on both sides so instruction reordering cannot skew
// a measurement taken between two calls. Implemented in tsc_amd64.s.
func ReadCounter() uint64
