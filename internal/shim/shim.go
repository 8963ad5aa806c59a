// Package shim models the host-side memory recovery shim: process-global
// state that reserves a locked block of pages at startup so a
// paging-failure recovery path has something to release.
//
// Grounded on original_source/VirtualDisplay/src/MemoryRecovery.cpp's
// InitSacrificialMemory/RecoverSacrificialMemory: reserve
// SacrificialPageCount (1024) pages of PageSize (4096) bytes, raise the
// process's working-set minimum/maximum thresholds by that many pages
// with minimum-enforcement enabled, and release atomically on request.
// Per spec, failure at any step leaves the shim un-initialised and
// silent; it never returns an error to the caller.
package shim

// SacrificialPageCount is the number of pages reserved at Init, R in
// the spec (1 024).
const SacrificialPageCount = 1024

// PageSize is the fixed page size assumed by the shim (4 096 bytes).
const PageSize = 4096

// MinWorkingSetPages and MaxWorkingSetPages are MemoryRecovery.cpp's
// minimumWorkingSetSize/maximumWorkingSetSize floors of 96 and 4096
// pages. The Linux shim applies only MaxWorkingSetPages, as the floor
// of its raised RLIMIT_MEMLOCK soft limit; it sets no minimum
// threshold, and MinWorkingSetPages is not used by either
// implementation.
const (
	MinWorkingSetPages = 96
	MaxWorkingSetPages = 4096
)

// Shim is the process-global memory recovery interface. Init is
// idempotent and silent on failure; Recover releases whatever Init
// reserved, also silently, and is safe to call even if Init never
// succeeded.
type Shim interface {
	Init()
	Recover()
}
