package pages

import "sort"

// sortedKeys orders bulk upload summaries so they render the same way on
// every request.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
