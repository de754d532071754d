package metadata

import (
	"strconv"

	"github.com/magiconair/properties"
)

// Association list groups.
const (
	keyBundledLibraries = "bundled-libraries"
	keySystemLibraries  = "system-libraries"
	keyLoadCommands     = "load-commands"
)

func indexKey(group string, index int) string {
	return group + "." + strconv.Itoa(index)
}

// getList reads group.0, group.1, ... until the first missing index.
// A gap truncates the list; later indices are ignored.
func getList(p *properties.Properties, group string) []string {
	var out []string
	for i := 0; ; i++ {
		v, ok := p.Get(indexKey(group, i))
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// getSet is getList with duplicates collapsed, first occurrence wins.
func getSet(p *properties.Properties, group string) []string {
	return dedup(getList(p, group))
}

// setIterable writes values as group.0, group.1, ...
func setIterable(p *properties.Properties, group string, values []string) error {
	for i, v := range values {
		if _, _, err := p.Set(indexKey(group, i), v); err != nil {
			return err
		}
	}
	return nil
}

// newProperties returns an empty list with ${} expansion off: values are
// opaque file names.
func newProperties() *properties.Properties {
	p := properties.NewProperties()
	p.DisableExpansion = true
	return p
}

func dedup(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
