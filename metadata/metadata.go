package metadata

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/magiconair/properties"
)

// Metadata describes one platform bundle: which files it ships, which host
// libraries it expects, and which files must be loaded in what order.
//
// Metadata is immutable; accessors return copies.
type Metadata struct {
	bundled  []string
	system   []string
	commands []string
}

// New creates metadata from the given groups. Duplicates in bundled and
// system are collapsed, keeping the first occurrence. Commands are kept as
// given, duplicates included.
//
// Commands naming files that are not bundled are accepted; see Check.
func New(bundled, system, commands []string) *Metadata {
	return &Metadata{
		bundled:  dedup(bundled),
		system:   dedup(system),
		commands: slices.Clone(commands),
	}
}

func fromProperties(p *properties.Properties) *Metadata {
	return &Metadata{
		bundled:  getSet(p, keyBundledLibraries),
		system:   getSet(p, keySystemLibraries),
		commands: getList(p, keyLoadCommands),
	}
}

func (m *Metadata) toProperties() (*properties.Properties, error) {
	p := newProperties()
	if err := setIterable(p, keyBundledLibraries, m.bundled); err != nil {
		return nil, err
	}
	if err := setIterable(p, keySystemLibraries, m.system); err != nil {
		return nil, err
	}
	if err := setIterable(p, keyLoadCommands, m.commands); err != nil {
		return nil, err
	}
	return p, nil
}

// BundledLibraries returns the distinct bundled file names in staging order.
func (m *Metadata) BundledLibraries() []string {
	return slices.Clone(m.bundled)
}

// SystemLibraries returns the distinct host library names the bundle
// depends on. They are informational only and never loaded.
func (m *Metadata) SystemLibraries() []string {
	return slices.Clone(m.system)
}

// LoadCommands returns the files to load, in load order.
func (m *Metadata) LoadCommands() []string {
	return slices.Clone(m.commands)
}

// Equal reports structural equality: same members in both sets and the same
// load command sequence.
func (m *Metadata) Equal(other *Metadata) bool {
	if m == nil || other == nil {
		return m == other
	}
	return sameSet(m.bundled, other.bundled) &&
		sameSet(m.system, other.system) &&
		slices.Equal(m.commands, other.commands)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	members := make(map[string]struct{}, len(a))
	for _, v := range a {
		members[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := members[v]; !ok {
			return false
		}
	}
	return true
}

// Hash returns a structural hash consistent with Equal.
func (m *Metadata) Hash() uint64 {
	d := xxhash.New()
	writeGroup(d, keyBundledLibraries, sorted(m.bundled))
	writeGroup(d, keySystemLibraries, sorted(m.system))
	writeGroup(d, keyLoadCommands, m.commands)
	return d.Sum64()
}

func writeGroup(d *xxhash.Digest, group string, values []string) {
	_, _ = d.WriteString(group)
	_, _ = d.Write([]byte{0})
	for _, v := range values {
		_, _ = d.WriteString(v)
		_, _ = d.Write([]byte{0})
	}
	_, _ = d.Write([]byte{1})
}

func sorted(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

func (m *Metadata) String() string {
	return fmt.Sprintf("Metadata{bundledLibraries=[%s], systemLibraries=[%s], loadCommands=[%s]}",
		strings.Join(m.bundled, ", "),
		strings.Join(m.system, ", "),
		strings.Join(m.commands, ", "))
}

// IssueKind classifies a consistency problem found by Check.
type IssueKind string

const (
	IssueUnbundledCommand IssueKind = "unbundled_command" // load command names a file that is not bundled
	IssueInvalidName      IssueKind = "invalid_name"      // bundled name is not a local relative path
	IssueEmptyName        IssueKind = "empty_name"
)

// Issue is a single consistency problem.
type Issue struct {
	Kind  IssueKind
	Group string
	Name  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s %q", i.Group, i.Kind, i.Name)
}

// LocalName reports whether name, a "/"-separated bundled file name, stays
// strictly inside the directory it is staged into. Absolute names, names
// escaping with "..", and names that clean to the directory itself ("." or
// "sub/..") are not local.
func LocalName(name string) bool {
	rel := filepath.FromSlash(name)
	return filepath.IsLocal(rel) && filepath.Clean(rel) != "."
}

// Check reports inconsistencies that would make loading fail on the target
// host. Loading itself never calls Check; it is meant for packaging tools.
func (m *Metadata) Check() []Issue {
	var issues []Issue

	bundled := make(map[string]struct{}, len(m.bundled))
	for _, name := range m.bundled {
		bundled[name] = struct{}{}
		switch {
		case name == "":
			issues = append(issues, Issue{Kind: IssueEmptyName, Group: keyBundledLibraries})
		case !LocalName(name):
			issues = append(issues, Issue{Kind: IssueInvalidName, Group: keyBundledLibraries, Name: name})
		}
	}

	for _, name := range m.system {
		if name == "" {
			issues = append(issues, Issue{Kind: IssueEmptyName, Group: keySystemLibraries})
		}
	}

	for _, name := range m.commands {
		if _, ok := bundled[name]; !ok {
			issues = append(issues, Issue{Kind: IssueUnbundledCommand, Group: keyLoadCommands, Name: name})
		}
	}

	return issues
}
