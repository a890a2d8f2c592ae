package locks

import (
	stdruntime "runtime"
	"sync"
	"sync/atomic"

	"github.com/huynhanx03/gamekit/pkg/runtime"
)

const maxSpins = 16

// SpinLock is a test-and-set lock for short critical sections.
// It spins with a processor yield before backing off.
type SpinLock struct {
	state atomic.Uint32
}

var _ sync.Locker = (*SpinLock)(nil)

// NewSpinLock creates a new SpinLock.
func NewSpinLock() *SpinLock {
	return &SpinLock{}
}

func (l *SpinLock) Lock() {
	spins := 0
	for !l.state.CompareAndSwap(0, 1) {
		spins++
		if spins < maxSpins {
			runtime.Procyield(uint32(spins))
			continue
		}
		stdruntime.Gosched()
		spins = 0
	}
}

func (l *SpinLock) Unlock() {
	l.state.Store(0)
}
