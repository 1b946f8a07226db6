package byke

// ResourceExists is a predicate system that returns true if the world
// contains a resource of type T.
func ResourceExists[T any](w *World) bool {
	_, ok := ResourceOf[T](w)
	return ok
}
