//go:build !linux

package shim

// portableShim is the no-op fallback for targets with no locked-page
// reservation analogue wired up. Init/Recover are both silent no-ops,
// which is a legal outcome under the shim's own failure policy.
type portableShim struct{}

// New returns the portable (no-op) memory recovery shim.
func New() Shim {
	return &portableShim{}
}

func (*portableShim) Init()    {}
func (*portableShim) Recover() {}
