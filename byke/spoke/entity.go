package spoke

import (
	"cmp"
	"log/slog"
	"math"
	"strconv"
)

// EntityId identifies an entity. The lower 32 bits hold the index of the entity,
// the upper 32 bits the generation. A live entity always has a generation of at least one,
// so the zero value never identifies a live entity.
type EntityId uint64

const NoEntityId EntityId = 0

// PlaceholderEntityId is never handed out by an EntityAllocator. It can be used to fill
// a slot that needs an entity id before the actual entity exists.
var PlaceholderEntityId = MakeEntityId(math.MaxUint32, 1)

func MakeEntityId(index, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

func (e EntityId) Index() uint32 {
	return uint32(e)
}

func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// Compare orders entity ids by index first and by generation second.
func (e EntityId) Compare(other EntityId) int {
	if c := cmp.Compare(e.Index(), other.Index()); c != 0 {
		return c
	}

	return cmp.Compare(e.Generation(), other.Generation())
}

func (e EntityId) String() string {
	var buf [24]byte
	b := strconv.AppendUint(buf[:0], uint64(e.Index()), 10)
	b = append(b, 'v')
	b = strconv.AppendUint(b, uint64(e.Generation()), 10)
	return string(b)
}

func (e EntityId) LogValue() slog.Value {
	return slog.StringValue(e.String())
}

// EntityAllocator hands out entity ids. Indices of freed ids are reused
// with an incremented generation.
type EntityAllocator struct {
	// current generation per index. For a free index this is the
	// generation the next allocation will use.
	generations []uint32
	alive       []bool
	free        []uint32
}

// Allocate reserves a new entity id.
func (a *EntityAllocator) Allocate() EntityId {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]

		a.alive[index] = true
		return MakeEntityId(index, a.generations[index])
	}

	index := uint32(len(a.generations))
	if index == math.MaxUint32 {
		panic("entity index space exhausted")
	}

	a.generations = append(a.generations, 1)
	a.alive = append(a.alive, true)

	return MakeEntityId(index, 1)
}

// Free releases the given entity id. Returns false, if the id was not alive.
func (a *EntityAllocator) Free(id EntityId) bool {
	if !a.IsAlive(id) {
		return false
	}

	index := id.Index()

	generation := a.generations[index] + 1
	if generation == 0 {
		// wrapped around, zero is reserved for NoEntityId
		generation = 1
	}

	a.generations[index] = generation
	a.alive[index] = false
	a.free = append(a.free, index)

	return true
}

// IsAlive returns true if the id was allocated and not yet freed.
func (a *EntityAllocator) IsAlive(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(a.generations) {
		return false
	}

	return a.alive[index] && a.generations[index] == id.Generation()
}

// Len returns the number of live entity ids.
func (a *EntityAllocator) Len() int {
	return len(a.generations) - len(a.free)
}
