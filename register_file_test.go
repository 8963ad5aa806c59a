package main

import "testing"

func TestRegisterHazard(t *testing.T) {
	rf := NewRegisterFile()

	rf.LockWrite(5)
	if rf.CanRead(5) {
		t.Fatal("CanRead(5) = true while write pending")
	}
	if rf.CanWrite(5) {
		t.Fatal("CanWrite(5) = true while write already pending")
	}

	rf.ReleaseWrite(5)
	if !rf.CanRead(5) {
		t.Fatal("CanRead(5) = false after release")
	}
	if !rf.CanWrite(5) {
		t.Fatal("CanWrite(5) = false after release")
	}
}

func TestRegisterReadersBlockWriter(t *testing.T) {
	rf := NewRegisterFile()

	rf.LockRead(3)
	rf.LockRead(3)
	if rf.CanWrite(3) {
		t.Fatal("CanWrite(3) = true with outstanding readers")
	}

	rf.ReleaseRead(3)
	if rf.CanWrite(3) {
		t.Fatal("CanWrite(3) = true with one outstanding reader remaining")
	}

	rf.ReleaseRead(3)
	if !rf.CanWrite(3) {
		t.Fatal("CanWrite(3) = false after all readers released")
	}
}

func TestRegisterReadersOverlapWithoutBound(t *testing.T) {
	rf := NewRegisterFile()
	for i := 0; i < 10; i++ {
		rf.LockRead(7)
	}
	if !rf.CanRead(7) {
		t.Fatal("CanRead(7) = false with only readers outstanding")
	}
}

func TestRegisterCounterNeverUnderflows(t *testing.T) {
	rf := NewRegisterFile()
	rf.ReleaseRead(0) // no readers were ever locked
	rf.LockRead(0)
	rf.ReleaseRead(0)
	if !rf.CanWrite(0) {
		t.Fatal("CanWrite(0) = false after balanced lock/release following a spurious release")
	}
}

func TestGetSetUnchecked(t *testing.T) {
	rf := NewRegisterFile()
	rf.LockWrite(9) // get/set must ignore hazard state entirely
	rf.Set(9, 42)
	if got := rf.Get(9); got != 42 {
		t.Fatalf("Get(9) = %d, want 42", got)
	}
}
