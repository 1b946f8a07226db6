package byke

import (
	"iter"
	"slices"
)

var _ = ValidateComponent[Children]()
var _ = ValidateComponent[ChildOf]()

// ChildOf marks an entity as child of the Parent entity. The world maintains
// the Children component on the parent. Despawning the parent despawns all its children.
type ChildOf struct {
	Component[ChildOf]
	Parent EntityId
}

// Children is maintained by the world for all entities that are referenced
// by a ChildOf component. It must not be inserted or removed manually.
type Children struct {
	Component[Children]
	entities []EntityId
}

// Entities returns a copy of the ids of all children.
func (c Children) Entities() []EntityId {
	return slices.Clone(c.entities)
}

func (c Children) Len() int {
	return len(c.entities)
}

// Parents iterates the ancestors of the given entity following ChildOf relations,
// starting with the direct parent.
func Parents(w *World, entityId EntityId) iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for {
			childOf, ok := GetComponent[ChildOf](w, entityId)
			if !ok {
				return
			}

			entityId = childOf.Parent

			if !yield(entityId) {
				return
			}
		}
	}
}
