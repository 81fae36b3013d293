package section

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every catalog lookup failure.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a section name missing from the catalog.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("section %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// List is the section catalog. Order of insertion is kept.
type List struct {
	items []*Section
}

// Add appends a section to the catalog.
func (l *List) Add(s *Section) {
	l.items = append(l.items, s)
}

// Find returns the first section with the given name.
func (l *List) Find(name string) (*Section, error) {
	for _, s := range l.items {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// IsDefined reports whether a section with that name exists.
func (l *List) IsDefined(name string) bool {
	_, err := l.Find(name)
	return err == nil
}

// Names lists section names in catalog order
func (l *List) Names() []string {
	names := make([]string, len(l.items))
	for i, s := range l.items {
		names[i] = s.Name
	}
	return names
}

// All returns the sections in catalog order.
func (l *List) All() []*Section {
	return l.items
}

func (l *List) Len() int { return len(l.items) }
