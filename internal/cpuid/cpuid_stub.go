// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build !amd64

package cpuid

// Query is only meaningful on x86; other architectures report no data,
// which Detect surfaces as an identification failure.
func Query(leaf uint32) (eax, ebx, ecx, edx uint32) {
	return 0, 0, 0, 0
}
