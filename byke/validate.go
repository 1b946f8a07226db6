package byke

import (
	"fmt"
	"reflect"

	"github.com/oliverbestmann/kind/byke/internal/refl"
	"github.com/oliverbestmann/kind/byke/spoke"
)

// ValidateComponent should be called to verify that the IsComponent interface is correctly implemented.
//
//	type Position struct {
//	   Component[Position]
//	   X, Y float64
//	}
//
//	var _ = ValidateComponent[Position]()
//
// This identifies mistakes in the type passed to Component during package initialization.
func ValidateComponent[C IsComponent[C]]() struct{} {
	componentType := spoke.ComponentTypeOf[C]()

	if componentType.Type != reflect.TypeFor[C]() {
		panic(fmt.Sprintf(
			"%s embeds Component[%s], expected Component[%s]",
			reflect.TypeFor[C](), componentType.Type, reflect.TypeFor[C](),
		))
	}

	if !refl.IsComponent(reflect.TypeFor[C]()) {
		panic(fmt.Sprintf("%s must embed exactly one byke.Component", reflect.TypeFor[C]()))
	}

	return struct{}{}
}
