/*
Package cpuid issues raw CPUID leaf queries and decodes the processor
identification they return: vendor, family, model, and stepping.
*/
package cpuid

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/binary"
	"fmt"
	"log/slog"
)

// Vendor identifies the processor manufacturer from the CPUID leaf 0
// signature registers.
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorIntel
	VendorAMD
	VendorHygon
)

func (v Vendor) String() string {
	switch v {
	case VendorIntel:
		return "Intel"
	case VendorAMD:
		return "AMD"
	case VendorHygon:
		return "Hygon"
	}
	return "Unknown"
}

// Intel family 6 model numbers referenced by the frequency discovery paths.
const (
	ModelNehalemEP = 0x1A
	ModelNehalem   = 0x1E
	ModelNehalemG  = 0x1F // Auburndale / Havendale
	ModelNehalemEX = 0x2E

	ModelWestmere   = 0x25
	ModelWestmereEP = 0x2C
	ModelWestmereEX = 0x2F

	ModelSkylakeL = 0x4E // Sky Lake
	ModelSkylake  = 0x5E // Sky Lake

	ModelAtomGoldmont     = 0x5C // Apollo Lake
	ModelAtomGoldmontD    = 0x5F // Denverton
	ModelAtomGoldmontPlus = 0x7A // Gemini Lake
)

// leaf 0 vendor signatures, register values as returned by the instruction
const (
	intelEbx = 0x756e6547 // "Genu"
	intelEdx = 0x49656e69 // "ineI"
	intelEcx = 0x6c65746e // "ntel"

	amdEbx = 0x68747541 // "Auth"
	amdEdx = 0x69746e65 // "enti"
	amdEcx = 0x444d4163 // "cAMD"

	hygonEbx = 0x6f677948 // "Hygo"
	hygonEdx = 0x6e65476e // "nGen"
	hygonEcx = 0x656e6975 // "uine"
)

// ProcessorInfo holds the identity of the host processor. It is built once
// at startup and not modified afterwards, except that callers fill in TSCHz
// after frequency discovery.
type ProcessorInfo struct {
	Vendor       Vendor
	VendorString string // 12-character leaf 0 signature text
	MaxLeaf      uint32 // maximum supported identification leaf
	Family       uint8
	Model        uint8
	Stepping     uint8
	TSCHz        uint64 // 0 means undetermined
}

// ResolveVendor maps the leaf 0 signature registers to a Vendor. Only exact
// matches of the full triple count; anything else is VendorUnknown.
func ResolveVendor(ebx, ecx, edx uint32) Vendor {
	switch {
	case ebx == intelEbx && ecx == intelEcx && edx == intelEdx:
		return VendorIntel
	case ebx == amdEbx && ecx == amdEcx && edx == amdEdx:
		return VendorAMD
	case ebx == hygonEbx && ecx == hygonEcx && edx == hygonEdx:
		return VendorHygon
	}
	return VendorUnknown
}

// vendorString packs the leaf 0 signature registers into the 12-character
// vendor text. The registers spell the string in ebx, edx, ecx order.
func vendorString(ebx, edx, ecx uint32) string {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:], ebx)
	binary.LittleEndian.PutUint32(buf[4:], edx)
	binary.LittleEndian.PutUint32(buf[8:], ecx)
	return string(buf[:])
}

// decodeSignature extracts family, model, and stepping from the leaf 1 eax
// value using the extended-family/extended-model convention: the extended
// family is added when the base family is 0xF, and the extended model forms
// the high nibble of the model for families 6 and up.
func decodeSignature(eax uint32) (family, model, stepping uint8) {
	family = uint8((eax >> 8) & 0xf)
	model = uint8((eax >> 4) & 0xf)
	if family == 0xf {
		family += uint8((eax >> 20) & 0xff)
	}
	if family >= 6 {
		model |= uint8((eax>>16)&0xf) << 4
	}
	stepping = uint8(eax & 0xf)
	return
}

// Detect identifies the host processor from CPUID leaves 0 and 1. TSCHz is
// left zero; frequency discovery is a separate concern. The only error case
// is a processor that returns no identification data at all, which cannot
// happen on x86.
func Detect() (ProcessorInfo, error) {
	eax, ebx, ecx, edx := Query(0)
	if eax == 0 && ebx == 0 && ecx == 0 && edx == 0 {
		return ProcessorInfo{}, fmt.Errorf("cpuid returned no identification data")
	}
	info := ProcessorInfo{
		Vendor:       ResolveVendor(ebx, ecx, edx),
		VendorString: vendorString(ebx, edx, ecx),
		MaxLeaf:      eax,
	}
	slog.Debug("cpuid leaf 0", slog.String("vendor", info.VendorString), slog.Int("max leaf", int(info.MaxLeaf)))

	eax, _, ecxFlags, edxFlags := Query(1)
	info.Family, info.Model, info.Stepping = decodeSignature(eax)
	slog.Debug("cpuid leaf 1",
		slog.String("family", fmt.Sprintf("0x%x", info.Family)),
		slog.String("model", fmt.Sprintf("0x%x", info.Model)),
		slog.String("stepping", fmt.Sprintf("0x%x", info.Stepping)),
		slog.String("ecx flags", fmt.Sprintf("0x%x", ecxFlags)),
		slog.String("edx flags", fmt.Sprintf("0x%x", edxFlags)))
	return info, nil
}

// uarchByModel names the family 6 microarchitectures this tool knows about.
var uarchByModel = map[uint8]string{
	ModelNehalem:          "Nehalem",
	ModelNehalemG:         "Nehalem",
	ModelNehalemEP:        "Nehalem",
	ModelNehalemEX:        "Nehalem",
	ModelWestmere:         "Westmere",
	ModelWestmereEP:       "Westmere",
	ModelWestmereEX:       "Westmere",
	ModelSkylakeL:         "Skylake",
	ModelSkylake:          "Skylake",
	ModelAtomGoldmont:     "Goldmont",
	ModelAtomGoldmontD:    "Goldmont-D",
	ModelAtomGoldmontPlus: "Goldmont Plus",
}

// MicroArchitecture returns a display name for known family 6 models and an
// empty string for everything else.
func MicroArchitecture(family, model uint8) string {
	if family != 6 {
		return ""
	}
	return uarchByModel[model]
}
