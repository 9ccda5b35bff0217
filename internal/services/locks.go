package services

import (
	"hash/fnv"
	"sync"
)

// Striped locks serializing check-then-act sequences on a single logical
// row (one activity record, one user-post like pair). Without this, two
// concurrent out-of-order progress updates could both pass the monotonicity
// check and regress an already-acknowledged counter.
var rowLocks [128]sync.Mutex

func lockRow(parts ...string) *sync.Mutex {
	h := fnv.New32a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	mu := &rowLocks[h.Sum32()%uint32(len(rowLocks))]
	mu.Lock()
	return mu
}
