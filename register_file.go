// register_file.go - SM register file with hazard tracking

/*
register_file.go - Register File

RegisterFile models the register storage shared by every functional
unit and dispatch unit in a Streaming Multiprocessor: 2048 registers (8
replication contexts x 256 logical registers each), each with a plain
uint32 value plus two pieces of hazard state — a read-holder count and
a write-pending flag.

Hazard rules, matching original_source's RegisterFile contract as used
by StreamingMultiprocessor.hpp's DispatchFpu/DispatchLdSt:

  - A register can be locked for read only while write_pending is
    false (WAR/RAW safety: a pending write always blocks new readers).
  - A register can be locked for write only while both read_holders is
    zero and write_pending is false (WAW/RAW safety: one writer at a
    time, and no writer while readers are outstanding).
  - Get/Set are unchecked: they do not consult or mutate hazard state.
    Dispatch units are responsible for calling CanRead/CanWrite before
    issuing an instruction that touches a register, and LockRead/
    LockWrite/ReleaseRead/ReleaseWrite around the instruction's actual
    lifetime.
*/

package main

import "sync"

const (
	// ReplicationSlots is the number of parallel replication contexts a
	// register file serves (one per concurrently in-flight warp/thread
	// group).
	ReplicationSlots = 8
	// RegistersPerSlot is the number of logical registers visible within
	// a single replication context.
	RegistersPerSlot = 256
	// RegisterCount is the flat register count backing a RegisterFile.
	RegisterCount = ReplicationSlots * RegistersPerSlot
)

type registerHazard struct {
	readHolders  int32
	writePending bool
}

// RegisterFile is the flat, hazard-tracked register bank owned by a
// Streaming Multiprocessor.
type RegisterFile struct {
	mutex    sync.Mutex
	values   [RegisterCount]uint32
	hazards  [RegisterCount]registerHazard
}

// NewRegisterFile builds an empty RegisterFile: every register holds 0
// and no hazard is outstanding.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Get reads a register's value without consulting hazard state.
func (rf *RegisterFile) Get(index uint32) uint32 {
	rf.mutex.Lock()
	defer rf.mutex.Unlock()
	return rf.values[index]
}

// Set writes a register's value without consulting hazard state.
func (rf *RegisterFile) Set(index uint32, value uint32) {
	rf.mutex.Lock()
	defer rf.mutex.Unlock()
	rf.values[index] = value
}

// CanRead reports whether index may currently be locked for read: true
// unless a write is pending against it.
func (rf *RegisterFile) CanRead(index uint32) bool {
	rf.mutex.Lock()
	defer rf.mutex.Unlock()
	return !rf.hazards[index].writePending
}

// CanWrite reports whether index may currently be locked for write:
// true only when no readers hold it and no write is already pending.
func (rf *RegisterFile) CanWrite(index uint32) bool {
	rf.mutex.Lock()
	defer rf.mutex.Unlock()
	h := &rf.hazards[index]
	return h.readHolders == 0 && !h.writePending
}

// LockRead registers a new reader against index. Callers must have
// observed CanRead(index) == true first; LockRead does not re-check.
func (rf *RegisterFile) LockRead(index uint32) {
	rf.mutex.Lock()
	defer rf.mutex.Unlock()
	rf.hazards[index].readHolders++
}

// LockWrite marks index as having a pending write. Callers must have
// observed CanWrite(index) == true first; LockWrite does not re-check.
func (rf *RegisterFile) LockWrite(index uint32) {
	rf.mutex.Lock()
	defer rf.mutex.Unlock()
	rf.hazards[index].writePending = true
}

// ReleaseRead drops one reader's hold on index.
func (rf *RegisterFile) ReleaseRead(index uint32) {
	rf.mutex.Lock()
	defer rf.mutex.Unlock()
	h := &rf.hazards[index]
	if h.readHolders > 0 {
		h.readHolders--
	}
}

// ReleaseWrite clears index's pending-write flag.
func (rf *RegisterFile) ReleaseWrite(index uint32) {
	rf.mutex.Lock()
	defer rf.mutex.Unlock()
	rf.hazards[index].writePending = false
}

// RegisterIndex computes the flat register index for a (replication slot,
// logical register) pair, matching original_source's
// TestLoadRegister/TestLoadProgram base-register arithmetic
// (port*4+r)*256 generalized to an 8-way, 256-wide bank: slot selects
// which of the 8 replication contexts, reg selects the logical register
// within it.
func RegisterIndex(slot, reg uint32) uint32 {
	return slot*RegistersPerSlot + reg
}
