//go:build linux

package shim

import (
	"sync"

	"golang.org/x/sys/unix"
)

// linuxShim reserves a locked anonymous mapping via mmap+mlock and
// raises RLIMIT_MEMLOCK to cover it, the closest POSIX analogue to
// MemoryRecovery.cpp's VirtualAlloc+VirtualLock+SetProcessWorkingSetSizeEx
// sequence: Go has no portable equivalent of a Windows working-set
// quota, so RLIMIT_MEMLOCK — the kernel's own limit on how much memory
// a process may lock — stands in for it.
type linuxShim struct {
	mu     sync.Mutex
	region []byte
}

// New returns the Linux memory recovery shim.
func New() Shim {
	return &linuxShim{}
}

func (s *linuxShim) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.region != nil {
		return
	}

	size := SacrificialPageCount * PageSize

	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_MEMLOCK, &limit); err != nil {
		return
	}

	floor := uint64(MaxWorkingSetPages * PageSize)
	want := limit.Cur + uint64(size)
	if want < floor {
		want = floor
	}
	if limit.Max != unix.RLIM_INFINITY && want > limit.Max {
		want = limit.Max
	}
	limit.Cur = want
	if err := unix.Setrlimit(unix.RLIMIT_MEMLOCK, &limit); err != nil {
		return
	}

	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return
	}

	if err := unix.Mlock(region); err != nil {
		_ = unix.Munmap(region)
		return
	}

	s.region = region
}

func (s *linuxShim) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.region == nil {
		return
	}

	_ = unix.Munlock(s.region)
	_ = unix.Munmap(s.region)
	s.region = nil
}
