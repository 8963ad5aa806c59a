// debug_interface.go - DebugSink interface for per-tick SM observation

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
debug_interface.go - Debug Observation

Adapted from the teacher's DebuggableCPU/MonitorAttachable pair: the
"attach an observer, no-op when absent" shape survives, but the
payload is replaced wholesale. A CPU debugger cares about breakpoints,
single-stepping, and disassembly; an SM has no instruction-level
debugger of its own, only a per-tick observer that watches the dispatch
units' base registers and functional-unit busy state as the clock
advances.

DebugSink is checked once per Clock() via IsAttached(); when nothing is
attached the SM skips straight past phase 1 (spec.md §4.5), matching
the teacher's pattern of a cheap attached-check guarding an otherwise
unconditional report call.
*/

package main

// UnitState is a snapshot of one functional unit's occupancy at the
// moment debug reporting ran.
type UnitState struct {
	Class UnitClass
	Index uint32
	Name  string
	Busy  bool
}

// TickInfo is the per-tick payload handed to an attached DebugSink at
// the start of an SM's Clock().
type TickInfo struct {
	SMIndex       uint32
	BaseRegisters [2][ReplicationContextCount]uint32 // per dispatch unit
	Units         []UnitState
}

// DebugSink receives one ReportTick call per SM Clock() invocation,
// before any functional unit or dispatch unit advances for that tick.
type DebugSink interface {
	ReportTick(info TickInfo)
}

// debugSinkHolder is embedded by anything that can have at most one
// DebugSink attached at a time; IsAttached lets the caller skip
// reporting work entirely rather than building a TickInfo nobody reads.
type debugSinkHolder struct {
	sink DebugSink
}

func (h *debugSinkHolder) IsAttached() bool {
	return h.sink != nil
}

func (h *debugSinkHolder) Attach(sink DebugSink) {
	h.sink = sink
}

func (h *debugSinkHolder) Detach() {
	h.sink = nil
}

func (h *debugSinkHolder) report(info TickInfo) {
	if h.sink != nil {
		h.sink.ReportTick(info)
	}
}
