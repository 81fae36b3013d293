package section

import "math"

func (Pipe) Kind() Kind { return KindPipe }

// Properties of the annulus
func (p Pipe) Properties() Properties {
	od, id := p.OD, p.InnerDiameter()
	od2, id2 := od*od, id*id
	i := math.Pi / 64 * (od2*od2 - id2*id2)
	return Properties{
		A:   math.Pi / 4 * (od2 - id2),
		Ixx: i,
		Iyy: i,
		J:   2 * i,
	}
}

func (p Pipe) OuterDiameter() float64 { return p.OD }
func (p Pipe) InnerDiameter() float64 { return p.OD - 2*p.Thickness }

func (s ISection) Kind() Kind {
	if s.WebSpacing > 0 {
		return KindDoubleI
	}
	return KindI
}

// Properties of the I section. Fillets are ignored.
//
// The torsional constant is the placeholder (Ixx+Iyy)/2, not a thin-walled
// torsion model. Downstream files were produced with it, so keep it.
func (s ISection) Properties() Properties {
	h, b, tw, tf := s.Height, s.Width, s.WebThickness, s.FlangeThickness
	hi := h - 2*tf
	p := Properties{
		A:   2*b*tf + tw*hi,
		Ixx: tw*cube(hi)/12 + b/12*(cube(h)-cube(hi)),
		Iyy: hi*cube(tw)/12 + cube(b)/12*(h-hi),
	}
	if ws := s.WebSpacing; ws > 0 {
		p.A += tw * hi
		p.Ixx += tw * cube(hi) / 12
		p.Iyy = hi*cube(ws+tw)/12 - hi*cube(ws-tw)/12 + cube(b)/12*(h-hi)
	}
	p.J = (p.Ixx + p.Iyy) / 2
	return p
}

func (s ISection) OuterDiameter() float64 { return (s.Height + s.Width) / 2 }
func (s ISection) InnerDiameter() float64 { return s.OuterDiameter() - 2*s.FlangeThickness }

func (Box) Kind() Kind { return KindBox }

// Properties of the outer rectangle minus the hollow core
func (b Box) Properties() Properties {
	outer := rectangle(b.Height, b.Width)
	core := rectangle(b.Height-b.TopFlangeThickness-b.BotFlangeThickness, b.Width-2*b.WebThickness)
	return outer.minus(core)
}

func (b Box) OuterDiameter() float64 { return (b.Height + b.Width) / 2 }
func (Box) InnerDiameter() float64   { return 0 }

func (Bar) Kind() Kind { return KindBar }

func (b Bar) Properties() Properties {
	return rectangle(b.Height, b.Width)
}

func (b Bar) OuterDiameter() float64 { return (b.Height + b.Width) / 2 }
func (Bar) InnerDiameter() float64   { return 0 }

func (DoubleBox) Kind() Kind { return KindDoubleBox }

// Properties of the outer rectangle minus the core, plus the middle web.
func (d DoubleBox) Properties() Properties {
	hc := d.Height - 2*d.OuterWallThickness
	outer := rectangle(d.Height, d.Width)
	core := rectangle(hc, d.Width-2*d.OuterWallThickness)
	web := rectangle(hc, d.WebThickness)
	return outer.minus(core).plus(web)
}

func (d DoubleBox) OuterDiameter() float64 { return (d.Height + d.Width) / 2 }
func (DoubleBox) InnerDiameter() float64   { return 0 }

// rectangle returns the properties of a solid h x b rectangle. J is the polar
// moment bh(b²+h²)/12.
func rectangle(h, b float64) Properties {
	return Properties{
		A:   h * b,
		Ixx: b * cube(h) / 12,
		Iyy: h * cube(b) / 12,
		J:   b * h * (b*b + h*h) / 12,
	}
}

func (p Properties) minus(o Properties) Properties {
	return Properties{A: p.A - o.A, Ixx: p.Ixx - o.Ixx, Iyy: p.Iyy - o.Iyy, J: p.J - o.J}
}

func (p Properties) plus(o Properties) Properties {
	return Properties{A: p.A + o.A, Ixx: p.Ixx + o.Ixx, Iyy: p.Iyy + o.Iyy, J: p.J + o.J}
}

func cube(x float64) float64 { return x * x * x }
