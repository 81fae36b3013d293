package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	memberColor  = color.Black
	jointColor   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	supportColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// ExportPlan exports the plan view to an image file. The format follows the
// extension (.png, .svg, .pdf); anything else is saved as PNG.
func ExportPlan(data PlanData, v View, filename string) error {
	if _, _, ok := data.bounds(v); !ok {
		return fmt.Errorf("nothing to draw")
	}
	p := plot.New()
	p.Title.Text = "Plan View"
	if data.Title != "" {
		p.Title.Text += " - " + data.Title
	}
	h, vert := v.Axes()
	p.X.Label.Text = h + " (m)"
	p.Y.Label.Text = vert + " (m)"

	for _, m := range data.Members {
		a, b := v.Project(m.A), v.Project(m.B)
		line, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}})
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = memberColor
		p.Add(line)
	}

	if len(data.Joints) > 0 {
		joints, err := plotter.NewScatter(markerXYs(data.Joints, v))
		if err != nil {
			return err
		}
		joints.GlyphStyle.Color = jointColor
		joints.GlyphStyle.Radius = vg.Points(3)
		joints.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(joints)
	}

	if len(data.Supports) > 0 {
		xys := markerXYs(data.Supports, v)
		supports, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		supports.GlyphStyle.Color = supportColor
		supports.GlyphStyle.Radius = vg.Points(5)
		supports.GlyphStyle.Shape = draw.TriangleGlyph{}
		p.Add(supports)

		names := make([]string, len(data.Supports))
		for i, s := range data.Supports {
			names[i] = s.Name
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
		if err != nil {
			return err
		}
		p.Add(labels)
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	width := 8 * vg.Inch
	height := 8 * vg.Inch
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func markerXYs(ms []Marker, v View) plotter.XYs {
	xys := make(plotter.XYs, len(ms))
	for i, m := range ms {
		q := v.Project(m.Pos)
		xys[i] = plotter.XY{X: q.X, Y: q.Y}
	}
	return xys
}
