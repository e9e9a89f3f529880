package ai

import (
    "math/rand"
    "sync"
    "time"
)

// Rand is the source of randomness used for tie-breaks and difficulty draws.
// *math/rand.Rand satisfies it.
type Rand interface {
    // Float64 returns a value in [0,1).
    Float64() float64
    // Intn returns a value in [0,n).
    Intn(n int) int
}

// lockedRand makes a *rand.Rand safe to share between goroutines.
type lockedRand struct {
    mu sync.Mutex
    r  *rand.Rand
}

// NewRand returns a goroutine-safe Rand. A zero seed uses the current time.
func NewRand(seed int64) Rand {
    if seed == 0 {
        seed = time.Now().UnixNano()
    }
    return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
    l.mu.Lock()
    defer l.mu.Unlock()
    return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
    l.mu.Lock()
    defer l.mu.Unlock()
    return l.r.Intn(n)
}
