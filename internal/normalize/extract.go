package normalize

// Extract locates the raw item list inside a site's response envelope.
// Known shapes, in priority order:
//
//	{"list": [...]}
//	{"data": {"list": [...]}}
//	{"data": [...]}
//
// A non-mapping payload or an unknown shape yields an empty list, never an
// error — sites disagree on wrapping far too often for that to be fatal.
func Extract(payload any) []any {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil
	}

	if list, ok := m["list"].([]any); ok {
		return list
	}

	if data, ok := m["data"].(map[string]any); ok {
		if list, ok := data["list"].([]any); ok {
			return list
		}
	}

	if list, ok := m["data"].([]any); ok {
		return list
	}

	return nil
}
