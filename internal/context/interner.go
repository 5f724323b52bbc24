package context

import (
	"fmt"

	"fortio.org/safecast"
)

// interner is an insert-on-miss string table, ported from the arena
// pattern used throughout the teacher's symbol and type tables: a
// growable slice indexed by ID plus a map from string back to ID.
type interner struct {
	byID  []string
	index map[string]uint32
}

func newInterner() *interner {
	return &interner{
		byID:  make([]string, 0, 64),
		index: make(map[string]uint32, 64),
	}
}

func (in *interner) intern(s string) uint32 {
	if id, ok := in.index[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.byID))
	if err != nil {
		panic(fmt.Errorf("identifier interner overflow: %w", err))
	}
	in.byID = append(in.byID, s)
	in.index[s] = n
	return n
}

func (in *interner) lookup(id uint32) (string, bool) {
	if int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

func (in *interner) len() int {
	return len(in.byID)
}
