package concept

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// SegmentProps identifies the physical behavior of a segment by catalog names.
// Two values are equal when all three names match.
type SegmentProps struct {
	Section    string
	Material   string
	HydroCoefs string
}

// EncodeName is the line type name used by formats that key behavior by type.
func (p SegmentProps) EncodeName() string {
	return fmt.Sprintf("Sec=%s_Mat=%s_HydroCoefs=%s", p.Section, p.Material, p.HydroCoefs)
}

// LineTypeList interns segment properties so identical triples share one name.
type LineTypeList struct {
	items []SegmentProps
}

// Index returns the position of p in the list, or -1.
func (l *LineTypeList) Index(p SegmentProps) int {
	return lo.IndexOf(l.items, p)
}

// Add returns the interned value, adding p if it is new.
func (l *LineTypeList) Add(p SegmentProps) SegmentProps {
	if i := l.Index(p); i >= 0 {
		return l.items[i]
	}
	l.items = append(l.items, p)
	return p
}

// GenerateAll interns the properties of every segment of every beam.
func (l *LineTypeList) GenerateAll(beams *BeamList) {
	for _, b := range beams.All() {
		for _, s := range b.Segments() {
			l.Add(s.Props)
		}
	}
}

func (l *LineTypeList) All() []SegmentProps { return l.items }

func (l *LineTypeList) Len() int { return len(l.items) }

// PropertyKey addresses a property by namespace (property set) and name.
type PropertyKey struct {
	Namespace string
	Name      string
}

func (k PropertyKey) String() string {
	return k.Namespace + "." + k.Name
}

// PropertySet holds free-form properties read from or written to CAD
// formats. Every lookup reports whether the property is present.
type PropertySet struct {
	values map[PropertyKey]any
}

// Set stores a value, replacing any previous one.
func (p *PropertySet) Set(namespace, name string, v any) {
	if p.values == nil {
		p.values = make(map[PropertyKey]any)
	}
	p.values[PropertyKey{namespace, name}] = v
}

// Get returns the raw value and whether it is present.
func (p PropertySet) Get(namespace, name string) (any, bool) {
	v, ok := p.values[PropertyKey{namespace, name}]
	return v, ok
}

// Float returns the property as a number. A present value that is not
// numeric is an error.
func (p PropertySet) Float(namespace, name string) (float64, bool, error) {
	v, ok := p.Get(namespace, name)
	if !ok {
		return 0, false, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, true, fmt.Errorf("property %s.%s: %w", namespace, name, err)
	}
	return f, true, nil
}

// Text returns the property formatted as text.
func (p PropertySet) Text(namespace, name string) (string, bool) {
	v, ok := p.Get(namespace, name)
	if !ok {
		return "", false
	}
	return cast.ToString(v), true
}

// Delete removes a property if present.
func (p *PropertySet) Delete(namespace, name string) {
	delete(p.values, PropertyKey{namespace, name})
}

// Keys returns all keys sorted by namespace then name.
func (p PropertySet) Keys() []PropertyKey {
	keys := lo.Keys(p.values)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Namespace != keys[j].Namespace {
			return keys[i].Namespace < keys[j].Namespace
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}

func (p PropertySet) Len() int { return len(p.values) }

// Copy returns an independent property set.
func (p PropertySet) Copy() PropertySet {
	var c PropertySet
	for k, v := range p.values {
		c.Set(k.Namespace, k.Name, v)
	}
	return c
}
