// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

//go:build amd64

package cpuid

// Query issues the CPUID instruction with the given leaf in EAX and subleaf
// zero in ECX. Implemented in cpuid_amd64.s.
func Query(leaf uint32) (eax, ebx, ecx, edx uint32)
