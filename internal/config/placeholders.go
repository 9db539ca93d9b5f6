package config

import (
	"reflect"
	"regexp"
	"sort"
)

// placeholderRe matches the #{NAME}# tokens the packaging step leaves in
// production values; they are substituted at deployment time.
var placeholderRe = regexp.MustCompile(`#\{([A-Z0-9_]+)\}#`)

// ResolveString substitutes every placeholder in s. Names lookup cannot
// resolve are left in place and returned.
func ResolveString(s string, lookup func(string) (string, bool)) (string, []string) {
	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(s, func(tok string) string {
		name := placeholderRe.FindStringSubmatch(tok)[1]
		if v, ok := lookup(name); ok && v != "" {
			return v
		}
		missing = append(missing, name)
		return tok
	})
	return out, missing
}

// ResolvePlaceholders walks every string field of cfg (recursively) and
// resolves placeholders in place. It returns the sorted, de-duplicated names
// that stayed unresolved.
func ResolvePlaceholders(cfg any, lookup func(string) (string, bool)) []string {
	seen := map[string]struct{}{}
	walkStrings(reflect.ValueOf(cfg), func(v reflect.Value) {
		s, missing := ResolveString(v.String(), lookup)
		v.SetString(s)
		for _, m := range missing {
			seen[m] = struct{}{}
		}
	})
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func walkStrings(v reflect.Value, fn func(reflect.Value)) {
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			walkStrings(v.Elem(), fn)
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				walkStrings(v.Field(i), fn)
			}
		}
	case reflect.String:
		if v.CanSet() {
			fn(v)
		}
	}
}
