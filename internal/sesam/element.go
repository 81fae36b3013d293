// Package sesam reads Sesam concept models exported as XML.
package sesam

import (
	"encoding/xml"
	"fmt"

	"github.com/spf13/cast"
)

// element is a generic XML node. Sesam exports select the meaning of a
// node by its first child's tag, so the tree is walked rather than mapped.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
}

func (e *element) tag() string { return e.XMLName.Local }

// find returns the first child with the given tag, or nil.
func (e *element) find(tag string) *element {
	if e == nil {
		return nil
	}
	for i := range e.Children {
		if e.Children[i].tag() == tag {
			return &e.Children[i]
		}
	}
	return nil
}

// path follows nested tags from e.
func (e *element) path(tags ...string) *element {
	for _, t := range tags {
		e = e.find(t)
	}
	return e
}

// first returns the first child, or nil.
func (e *element) first() *element {
	if e == nil || len(e.Children) == 0 {
		return nil
	}
	return &e.Children[0]
}

func (e *element) attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// get returns an attribute or "".
func (e *element) get(name string) string {
	v, _ := e.attr(name)
	return v
}

// float parses a required numeric attribute.
func (e *element) float(name string) (float64, error) {
	s, ok := e.attr(name)
	if !ok {
		return 0, fmt.Errorf("<%s> has no %q attribute", e.tag(), name)
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, fmt.Errorf("<%s> attribute %q: %w", e.tag(), name, err)
	}
	return f, nil
}

// floatOr parses an optional numeric attribute.
func (e *element) floatOr(name string, def float64) (float64, error) {
	if _, ok := e.attr(name); !ok {
		return def, nil
	}
	return e.float(name)
}

// floats parses several required attributes in order.
func (e *element) floats(names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, n := range names {
		f, err := e.float(n)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
