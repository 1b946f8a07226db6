package byke

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/oliverbestmann/kind/byke/internal/refl"
	"github.com/oliverbestmann/kind/byke/spoke"
)

// FromEntityRef can be implemented on the pointer of a Filter type to make the filter
// a query item that extracts a value from the matched entity.
//
//	type Health struct { value *HealthComponent }
//	func (Health) Predicate() Predicate           { return PredicateOf[With[HealthComponent]]() }
//	func (h *Health) FromEntityRef(ref EntityRef)  { ... }
type FromEntityRef interface {
	FromEntityRef(ref EntityRef)
}

type setter struct {
	Field    []int
	SetValue func(target any, ref EntityRef)
}

type parsedQuery struct {
	Predicate Predicate
	Setters   []setter
}

func parseQuery(queryType reflect.Type) (parsedQuery, error) {
	var parsed parsedQuery
	var predicates []Predicate

	if err := buildQuery(queryType, &parsed, &predicates, nil); err != nil {
		return parsedQuery{}, err
	}

	parsed.Predicate = spoke.All(predicates...)

	return parsed, nil
}

// fromEntity populates target, which must be a pointer to the query target type.
func fromEntity(target reflect.Value, setters []setter, ref EntityRef) {
	for _, setter := range setters {
		fieldTarget := target
		if setter.Field != nil {
			// target must be a pointer to a struct
			fieldTarget = target.Elem().FieldByIndex(setter.Field).Addr()
		}

		setter.SetValue(fieldTarget.Interface(), ref)
	}
}

func buildQuery(queryType reflect.Type, result *parsedQuery, predicates *[]Predicate, path []int) error {
	switch {
	case isEntityId(queryType):
		result.Setters = append(result.Setters, setter{
			Field: slices.Clone(path),
			SetValue: func(target any, ref EntityRef) {
				*target.(*EntityId) = ref.EntityId()
			},
		})

		return nil

	case refl.IsComponent(queryType):
		componentType := refl.ComponentTypeOf(queryType)
		*predicates = append(*predicates, Predicate{With: componentType})

		result.Setters = append(result.Setters, setter{
			Field: slices.Clone(path),
			SetValue: func(target any, ref EntityRef) {
				// target is a pointer to the component value
				componentType.SetValue(target, ref.Get(componentType))
			},
		})

		return nil

	case isMutableComponent(queryType):
		componentType := refl.ComponentTypeOf(queryType.Elem())
		*predicates = append(*predicates, Predicate{With: componentType})

		result.Setters = append(result.Setters, setter{
			Field: slices.Clone(path),
			SetValue: func(target any, ref EntityRef) {
				// target is a pointer to a pointer to the component value
				componentType.SetPointer(target, ref.GetMut(componentType))
			},
		})

		return nil

	case isFilter(queryType):
		filter := reflect.New(queryType).Elem().Interface().(Filter)
		*predicates = append(*predicates, filter.Predicate())

		if isFromEntityRef(queryType) {
			result.Setters = append(result.Setters, setter{
				Field: slices.Clone(path),
				SetValue: func(target any, ref EntityRef) {
					target.(FromEntityRef).FromEntityRef(ref)
				},
			})
		}

		return nil

	case isStructQuery(queryType):
		return buildStructQuery(queryType, result, predicates, path)

	default:
		return fmt.Errorf("invalid query type: %s", queryType)
	}
}

func buildStructQuery(queryType reflect.Type, result *parsedQuery, predicates *[]Predicate, path []int) error {
	for field := range refl.IterFields(queryType) {
		if field.Anonymous {
			allowed := isFilter(field.Type) || isEntityId(field.Type)
			if !allowed {
				return fmt.Errorf("must not be embedded in query target %s: %s", queryType, field.Type)
			}
		}

		setterCount := len(result.Setters)

		pathToField := append(slices.Clone(path), field.Index...)
		if err := buildQuery(field.Type, result, predicates, pathToField); err != nil {
			return errors.Wrapf(err, "field %s of %s", field.Name, queryType)
		}

		if !field.IsExported() && len(result.Setters) != setterCount {
			return fmt.Errorf("field %s of query target %s must be exported", field.Name, queryType)
		}
	}

	return nil
}

func isStructQuery(ty reflect.Type) bool {
	return ty.Kind() == reflect.Struct
}

func isMutableComponent(ty reflect.Type) bool {
	return ty.Kind() == reflect.Pointer && refl.IsComponent(ty.Elem())
}

func isFilter(ty reflect.Type) bool {
	return ty.Kind() != reflect.Pointer && refl.ImplementsInterfaceDirectly[Filter](ty)
}

func isFromEntityRef(ty reflect.Type) bool {
	return ty.Kind() != reflect.Pointer && reflect.PointerTo(ty).Implements(reflect.TypeFor[FromEntityRef]())
}

func isEntityId(ty reflect.Type) bool {
	return ty == reflect.TypeFor[EntityId]()
}
