// pci_constants.go - PCI/PCIe configuration space address map

/*
pci_constants.go - Config Space Region Map

This file centralizes the byte offsets, field widths, write masks, and
read-only bit patterns for the 4 KiB PCIe configuration region, the
same way registers.go centralizes the I/O address map for the rest of
the device: one file a reader can scan top to bottom to see the whole
memory map, with the structures that act on it defined elsewhere
(pci_config.go).

MEMORY MAP OVERVIEW
====================

Offset range   Region                                Size
-------------- ------------------------------------- ------
0x000-0x03F    Standard Type-0 config header          64
0x040-0x053    PCI Express Capability                 20
0x054-0x05B    Power Management Capability             8
0x05C-0x0FF    Reserved legacy config (read-as-stored) 164
0x100-0x12B    Advanced Error Reporting Ext. Capability 44
0x12C-0xFFF    Reserved extended config               3796
*/

package main

const (
	ConfigSpaceSize = 4096

	// Standard Type-0 header.
	HeaderOffset       = 0x000
	HeaderEnd          = 0x040 // exclusive
	HeaderSize         = HeaderEnd - HeaderOffset
	OffsetVendorID     = 0x00
	OffsetDeviceID     = 0x02
	OffsetCommand      = 0x04
	OffsetStatus       = 0x06
	OffsetRevisionID   = 0x08
	OffsetClassCode    = 0x09 // 24-bit field, occupies 0x09-0x0B
	OffsetCacheLine    = 0x0C
	OffsetLatencyTimer = 0x0D
	OffsetHeaderType   = 0x0E
	OffsetBIST         = 0x0F
	OffsetBAR0         = 0x10
	OffsetBAR1         = 0x14
	OffsetBAR2         = 0x18
	OffsetBAR3         = 0x1C
	OffsetBAR4         = 0x20
	OffsetBAR5         = 0x24
	OffsetCapPointer   = 0x34
	OffsetExpansionROM = 0x30
	OffsetInterruptLine = 0x3C

	// PCI Express Capability (0x040-0x053).
	PCIeCapOffset        = 0x040
	PCIeCapEnd           = 0x054 // exclusive
	PCIeCapSize          = PCIeCapEnd - PCIeCapOffset
	PCIeCapID            = PCIeCapOffset + 0x00 // u8
	PCIeNextCap          = PCIeCapOffset + 0x01 // u8
	PCIeCapsRegister     = PCIeCapOffset + 0x02 // u16: version/device type/etc
	PCIeDeviceCaps       = PCIeCapOffset + 0x04 // u32
	PCIeDeviceControl    = PCIeCapOffset + 0x08 // u16, writable
	PCIeDeviceStatus     = PCIeCapOffset + 0x0A // u16
	PCIeLinkCaps         = PCIeCapOffset + 0x0C // u32
	PCIeLinkControl      = PCIeCapOffset + 0x10 // u16, writable
	PCIeLinkStatus       = PCIeCapOffset + 0x12 // u16

	// Power Management Capability (0x054-0x05B).
	PMCapOffset    = 0x054
	PMCapEnd       = 0x05C // exclusive
	PMCapSize      = PMCapEnd - PMCapOffset
	PMCapID        = PMCapOffset + 0x00 // u8
	PMNextCap      = PMCapOffset + 0x01 // u8
	PMCapabilities = PMCapOffset + 0x02 // u16
	PMControlStatus = PMCapOffset + 0x04 // u16, writable
	PMBridgeExt    = PMCapOffset + 0x06 // u8
	PMData         = PMCapOffset + 0x07 // u8

	// Reserved legacy config (0x05C-0x0FF), read-as-stored.
	LegacyReservedOffset = 0x05C
	LegacyReservedEnd    = 0x100 // exclusive

	// Advanced Error Reporting Extended Capability (0x100-0x12B).
	AERCapOffset       = 0x100
	AERCapEnd          = 0x12C // exclusive
	AERCapSize         = AERCapEnd - AERCapOffset
	AERHeader          = AERCapOffset + 0x00 // u32: id(16)/version(4)/next(12)
	AERUncorrStatus    = AERCapOffset + 0x04
	AERUncorrMask      = AERCapOffset + 0x08
	AERUncorrSeverity  = AERCapOffset + 0x0C
	AERCorrStatus      = AERCapOffset + 0x10
	AERCorrMask        = AERCapOffset + 0x14
	AERCapsControl     = AERCapOffset + 0x18
	AERHeaderLog       = AERCapOffset + 0x1C // 4 x u32

	// Reserved extended config (0x12C-0xFFF), read-as-stored.
	ExtReservedOffset = 0x12C
	ExtReservedEnd    = ConfigSpaceSize

	// Standard capability IDs, grounded on the PCI SIG assignments as
	// enumerated in sercanarga-PCILeechGen/internal/pci/capability.go.
	CapIDPowerManagement uint8 = 0x01
	CapIDPCIExpress      uint8 = 0x10

	// Extended capability IDs.
	ExtCapIDAER uint16 = 0x0001

	// Write masks. A write commits (value & mask) | read-only bits: bits
	// outside the mask are not carried over from the previous value, so
	// they read back as the field's read-only bits below (zero for a
	// field that has none).
	CommandMask          uint32 = 0x0446
	StatusMask           uint32 = 0xFB00
	CacheLineSizeMask    uint32 = 0xFF
	BAR0Mask             uint32 = 0xFF000000
	BAR1Mask             uint32 = 0x80000000
	BAR1ReadOnlyBits     uint32 = 0x0000000C
	BAR2Mask             uint32 = 0xFFFFFFFF
	ExpansionROMMask     uint32 = 0xFFFF8001
	ExpansionROMAddrMask uint32 = 0xFFFF8000
	ExpansionROMEnableBit uint32 = 0x00000001
	InterruptLineMask    uint32 = 0xFF
	DeviceControlMask    uint32 = 0x7CFF
	LinkControlMask      uint32 = 0x01C3
	PMControlStatusMask  uint32 = 0x0003

	// BAR decode window sizes.
	BAR0WindowSize         = 16 * 1024 * 1024
	BAR1WindowSize         = 2 * 1024 * 1024 * 1024
	ExpansionROMWindowSize = 32 * 1024

	ExpansionROMBARID uint8 = 0x7F
	UnknownBARID      uint8 = 0xFF

	// Initial register values (spec.md §4.1 / original_source InitConfigHeader).
	InitVendorID    uint16 = 0xFFFD
	InitDeviceID    uint16 = 0x0001
	InitStatus      uint16 = 0x0010
	InitRevisionID  uint8  = 0x01
	InitClassCode   uint32 = 0x030001
	InitBAR1        uint32 = 0x0000000C
)
