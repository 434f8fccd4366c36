package normalize

// filteredTypes are category names whose items are never shown: trailers
// and the two commentary flavors the sites use.
var filteredTypes = map[string]struct{}{
	"预告片":  {},
	"电影解说": {},
	"影视解说": {},
}

// ShouldDrop reports whether an item's declared category is blacklisted.
// Non-mapping items pass through; the mapper turns them into records the
// search layer drops anyway.
func ShouldDrop(item any) bool {
	m, ok := item.(map[string]any)
	if !ok {
		return false
	}
	_, drop := filteredTypes[SafeGet(m, "type_name")]
	return drop
}
