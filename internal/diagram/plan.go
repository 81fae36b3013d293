package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/strucconv/internal/concept"
	"github.com/alexiusacademia/strucconv/internal/geometry"
)

// View is the global plane a model is drawn on
type View string

const (
	ViewXY View = "xy"
	ViewXZ View = "xz"
	ViewYZ View = "yz"
)

// ParseView accepts xy, xz or yz.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(s)); v {
	case ViewXY, ViewXZ, ViewYZ:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q: use xy, xz or yz", s)
}

// Axes returns the names of the horizontal and vertical drawing axes.
func (v View) Axes() (string, string) {
	return strings.ToUpper(string(v[0])), strings.ToUpper(string(v[1]))
}

// Project drops the coordinate normal to the view.
func (v View) Project(p geometry.Vector3) Point {
	switch v {
	case ViewXZ:
		return Point{p.X, p.Z}
	case ViewYZ:
		return Point{p.Y, p.Z}
	}
	return Point{p.X, p.Y}
}

// Point is a 2D drawing coordinate
type Point struct {
	X float64
	Y float64
}

// Member is a beam drawn by its chord.
type Member struct {
	Name string
	A, B geometry.Vector3
}

// Marker is a labelled point
type Marker struct {
	Name string
	Pos  geometry.Vector3
}

// PlanData holds what a plan drawing shows.
type PlanData struct {
	Title    string
	Members  []Member
	Joints   []Marker
	Supports []Marker
}

// FromModel collects the beams, connection points and supports of a model.
func FromModel(m *concept.Model) PlanData {
	data := PlanData{Title: m.Origin.ModelName}
	for _, b := range m.Beams.All() {
		data.Members = append(data.Members, Member{Name: b.Name, A: b.EndA(), B: b.EndB()})
	}
	for i, g := range m.Connections.Groups() {
		if len(g.Members) == 0 {
			continue
		}
		data.Joints = append(data.Joints, Marker{Name: fmt.Sprintf("J%d", i+1), Pos: g.Members[0].Coord()})
	}
	for _, s := range m.Supports.All() {
		data.Supports = append(data.Supports, Marker{Name: s.Name, Pos: s.Position})
	}
	return data
}

// bounds of every projected point. ok is false when there is nothing to draw.
func (d PlanData) bounds(v View) (lo, hi Point, ok bool) {
	lo = Point{math.Inf(1), math.Inf(1)}
	hi = Point{math.Inf(-1), math.Inf(-1)}
	add := func(p geometry.Vector3) {
		q := v.Project(p)
		lo.X, lo.Y = math.Min(lo.X, q.X), math.Min(lo.Y, q.Y)
		hi.X, hi.Y = math.Max(hi.X, q.X), math.Max(hi.Y, q.Y)
		ok = true
	}
	for _, m := range d.Members {
		add(m.A)
		add(m.B)
	}
	for _, j := range d.Joints {
		add(j.Pos)
	}
	for _, s := range d.Supports {
		add(s.Pos)
	}
	return lo, hi, ok
}
