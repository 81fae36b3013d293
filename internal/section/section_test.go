package section

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/strucconv/internal/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func TestBarProperties(t *testing.T) {
	p := Bar{Height: 0.3, Width: 0.2}.Properties()
	assert.InDelta(t, 0.06, p.A, tol)
	assert.InDelta(t, 0.00045, p.Ixx, tol)
	assert.InDelta(t, 0.0002, p.Iyy, tol)
	assert.InDelta(t, 0.2*0.3*(0.04+0.09)/12, p.J, tol)
}

func TestPipeProperties(t *testing.T) {
	pipe := Pipe{OD: 0.5, Thickness: 0.02}
	assert.InDelta(t, 0.46, pipe.InnerDiameter(), tol)
	assert.InDelta(t, 0.5, pipe.OuterDiameter(), tol)

	p := pipe.Properties()
	assert.InDelta(t, math.Pi/4*(0.25-0.2116), p.A, tol)
	i := math.Pi / 64 * (math.Pow(0.5, 4) - math.Pow(0.46, 4))
	assert.InDelta(t, i, p.Ixx, tol)
	assert.InDelta(t, i, p.Iyy, tol)
	assert.InDelta(t, math.Pi/32*(math.Pow(0.5, 4)-math.Pow(0.46, 4)), p.J, tol)
}

func TestBoxProperties(t *testing.T) {
	box := Box{Height: 0.4, Width: 0.3, WebThickness: 0.02, TopFlangeThickness: 0.03, BotFlangeThickness: 0.01}
	p := box.Properties()

	hc, bc := 0.4-0.04, 0.3-0.04
	assert.InDelta(t, 0.4*0.3-bc*hc, p.A, tol)
	assert.InDelta(t, 0.3*math.Pow(0.4, 3)/12-bc*math.Pow(hc, 3)/12, p.Ixx, tol)
	assert.InDelta(t, 0.4*math.Pow(0.3, 3)/12-math.Pow(bc, 3)*hc/12, p.Iyy, tol)
	assert.InDelta(t, 0.3*0.4*(0.09+0.16)/12-bc*hc*(bc*bc+hc*hc)/12, p.J, tol)
	assert.Equal(t, 0.0, box.InnerDiameter())
	assert.InDelta(t, 0.35, box.OuterDiameter(), tol)
}

func TestDoubleBoxProperties(t *testing.T) {
	d := DoubleBox{Height: 1, Width: 2, WebThickness: 0.05, OuterWallThickness: 0.1}
	p := d.Properties()

	hc, bc := 0.8, 1.8
	assert.InDelta(t, 2-bc*hc+0.05*hc, p.A, tol)
	assert.InDelta(t, 2.0/12-bc*math.Pow(hc, 3)/12+0.05*math.Pow(hc, 3)/12, p.Ixx, tol)
	assert.InDelta(t, 8.0/12-math.Pow(bc, 3)*hc/12+math.Pow(0.05, 3)*hc/12, p.Iyy, tol)
	assert.Equal(t, KindDoubleBox, d.Kind())
}

func TestISectionProperties(t *testing.T) {
	s := ISection{Height: 0.5, Width: 0.2, WebThickness: 0.01, FlangeThickness: 0.02}
	p := s.Properties()

	hi := 0.46
	assert.InDelta(t, 2*0.2*0.02+0.01*hi, p.A, tol)
	assert.InDelta(t, 0.01*math.Pow(hi, 3)/12+0.2/12*(math.Pow(0.5, 3)-math.Pow(hi, 3)), p.Ixx, tol)
	assert.InDelta(t, hi*math.Pow(0.01, 3)/12+math.Pow(0.2, 3)/12*0.04, p.Iyy, tol)
	assert.InDelta(t, (p.Ixx+p.Iyy)/2, p.J, tol)
	assert.Equal(t, KindI, s.Kind())
	assert.InDelta(t, 0.35, s.OuterDiameter(), tol)
	assert.InDelta(t, 0.31, s.InnerDiameter(), tol)
}

func TestDoubleISectionProperties(t *testing.T) {
	single := ISection{Height: 0.5, Width: 0.4, WebThickness: 0.01, FlangeThickness: 0.02}
	double := single
	double.WebSpacing = 0.2

	ps, pd := single.Properties(), double.Properties()
	hi := 0.46
	assert.Equal(t, KindDoubleI, double.Kind())
	assert.InDelta(t, ps.A+0.01*hi, pd.A, tol)
	assert.InDelta(t, ps.Ixx+0.01*math.Pow(hi, 3)/12, pd.Ixx, tol)
	assert.InDelta(t, hi*math.Pow(0.21, 3)/12-hi*math.Pow(0.19, 3)/12+math.Pow(0.4, 3)/12*0.04, pd.Iyy, tol)
	assert.InDelta(t, (pd.Ixx+pd.Iyy)/2, pd.J, tol)
}

func TestGeneralPropertiesOverride(t *testing.T) {
	s := &Section{Name: "LIB1", Shape: Pipe{OD: 1, Thickness: 0.05}}
	s.SetGeneral(0.1, 0.2, 0.3, 0.4)
	assert.Equal(t, Properties{A: 0.1, Ixx: 0.2, Iyy: 0.3, J: 0.4}, s.Properties())
	assert.Equal(t, 1.0, s.OuterDiameter())
}

func TestLineTypeProps(t *testing.T) {
	s := &Section{Name: "B1", Shape: Bar{Height: 0.3, Width: 0.2}}
	steel := &material.Material{Name: "S355", Density: 7850, YoungModulus: 2.1e11, Poisson: 0.3}

	lt := s.LineTypeProps(steel)
	p := s.Properties()
	g := 2.1e11 / 2.6
	assert.InDelta(t, 0.06*7850, lt.MassPerLength, 1e-9)
	assert.InDelta(t, 2.1e11*p.Ixx, lt.EIx, 1e-3)
	assert.InDelta(t, 2.1e11*p.Iyy, lt.EIy, 1e-3)
	assert.InDelta(t, 2.1e11*0.06, lt.EA, 1e-3)
	assert.InDelta(t, g*p.J, lt.GJ, 1e-3)
	assert.Equal(t, 0.3, lt.Poisson)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		wantErr bool
	}{
		{"valid pipe", Section{Name: "P", Shape: Pipe{OD: 1, Thickness: 0.1}}, false},
		{"no name", Section{Shape: Pipe{OD: 1, Thickness: 0.1}}, true},
		{"no shape", Section{Name: "X"}, true},
		{"general only", Section{Name: "G", General: &Properties{A: 1}}, false},
		{"thick pipe", Section{Name: "P", Shape: Pipe{OD: 1, Thickness: 0.6}}, true},
		{"flat I", Section{Name: "I", Shape: ISection{Height: 0.1, Width: 0.1, WebThickness: 0.01, FlangeThickness: 0.05}}, true},
		{"box without core", Section{Name: "B", Shape: Box{Height: 1, Width: 1, WebThickness: 0.5, TopFlangeThickness: 0.1, BotFlangeThickness: 0.1}}, true},
		{"negative bar", Section{Name: "R", Shape: Bar{Height: -1, Width: 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.section.Validate()
			if tt.wantErr {
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr), "expected a ValidationError, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListFind(t *testing.T) {
	var l List
	first := &Section{Name: "PIPE1", Shape: Pipe{OD: 1, Thickness: 0.1}}
	l.Add(first)
	l.Add(&Section{Name: "PIPE1", Shape: Pipe{OD: 2, Thickness: 0.1}})
	l.Add(&Section{Name: "BAR", Shape: Bar{Height: 1, Width: 1}})

	got, err := l.Find("PIPE1")
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.True(t, l.IsDefined("BAR"))
	assert.Equal(t, []string{"PIPE1", "PIPE1", "BAR"}, l.Names())

	_, err = l.Find("MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, `section "MISSING" not found`)
}
