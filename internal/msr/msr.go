/*
Package msr reads model-specific registers through the per-core msr device
exposed by the Linux msr kernel module.
*/
package msr

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/binary"
	"fmt"
	"syscall"

	"github.com/pkg/errors"
)

// PlatformInfo reports the maximum non-turbo ratio in bits 8-15.
const PlatformInfo = 0xCE

const devicePath = "/dev/cpu/%d/msr"

// Reader reads the 8-byte value of a model-specific register. Callers that
// need register access without the device, tests in particular, substitute
// their own implementation.
type Reader interface {
	Read(offset int64) (uint64, error)
}

// Device reads registers of one logical CPU via positioned reads on its msr
// device node. Reading requires the msr module to be loaded and elevated
// privilege.
type Device struct {
	CPU int
}

func (d Device) Read(offset int64) (uint64, error) {
	path := fmt.Sprintf(devicePath, d.CPU)
	fd, err := syscall.Open(path, syscall.O_RDONLY, 0)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open %s", path)
	}
	defer syscall.Close(fd)

	buf := make([]byte, 8)
	n, err := syscall.Pread(fd, buf, offset)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read %s at 0x%x", path, offset)
	}
	if n != len(buf) {
		return 0, errors.Errorf("wrong byte count %d reading %s at 0x%x", n, path, offset)
	}
	// all x86 uses little endian format
	return binary.LittleEndian.Uint64(buf), nil
}
