package concept

import (
	"github.com/samber/lo"

	"github.com/alexiusacademia/strucconv/internal/geometry"
)

// Equipment is a rigid box of known mass placed on the structure by a load
// case, such as a module or a skid.
type Equipment struct {
	Name       string
	Mass       float64            // kg
	Placement  geometry.Transform // local axes and origin
	CoG        geometry.Vector3   // local, relative to the origin
	Dimensions geometry.Vector3   // box extents along the local axes
	Footprint  [4]float64         // x1, y1, x2, y2 in the local frame
	LoadCase   string
}

// Origin is the global position of the equipment's local origin.
func (e *Equipment) Origin() geometry.Vector3 {
	return e.Placement.Origin()
}

// GlobalCoG is the center of gravity in global coordinates.
func (e *Equipment) GlobalCoG() geometry.Vector3 {
	return e.Placement.Apply(e.CoG)
}

// EquipmentList holds the placed equipment of a model.
type EquipmentList struct {
	items []*Equipment
}

// Add creates equipment at the global origin with global axes.
func (l *EquipmentList) Add(name string) *Equipment {
	e := &Equipment{Name: name, Placement: geometry.Identity()}
	l.items = append(l.items, e)
	return e
}

// FindByName returns the first equipment with that name, or nil.
func (l *EquipmentList) FindByName(name string) *Equipment {
	e, _ := lo.Find(l.items, func(e *Equipment) bool { return e.Name == name })
	return e
}

// Remove drops e and reports whether it was in the list.
func (l *EquipmentList) Remove(e *Equipment) bool {
	i := lo.IndexOf(l.items, e)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

func (l *EquipmentList) All() []*Equipment { return l.items }

func (l *EquipmentList) Len() int { return len(l.items) }
