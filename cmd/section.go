package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/strucconv/internal/material"
	"github.com/alexiusacademia/strucconv/internal/modelio"
	"github.com/alexiusacademia/strucconv/internal/section"
)

var (
	sectionFile string
	sectionDoc  modelio.SectionDoc
	sectionMat  material.Material
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Cross-section and line type properties",
	Long: `Compute the geometric properties of a cross-section (A, Ixx, Iyy, J)
and the line type properties it gives with a material (mass per length,
EIx, EIy, EA, GJ).

Either describe one section with flags, or pass a model with --file to
list every section and every section/material pair used by its beams.

Section types and their dimensions (m):
  pipe        --od --th
  i           --h --b --tw --tf
  double_i    --h --b --tw --tf --ws
  box         --h --b --tw --tftop --tfbot
  bar         --h --b
  double_box  --h --b --tw --otw

Examples:
  strucconv section --type pipe --od 0.5 --th 0.02
  strucconv section --type box --h 1 --b 0.5 --tw 0.02 --tftop 0.03 --tfbot 0.03 --E 2.0e11
  strucconv section -f jacket.json`,
	RunE: runSection,
}

func init() {
	f := sectionCmd.Flags()
	f.StringVarP(&sectionFile, "file", "f", "", "Model whose sections are listed")
	f.StringVar(&sectionDoc.Type, "type", "", "Section type")
	f.Float64Var(&sectionDoc.OD, "od", 0, "Outer diameter (m)")
	f.Float64Var(&sectionDoc.Th, "th", 0, "Wall thickness (m)")
	f.Float64Var(&sectionDoc.H, "h", 0, "Height (m)")
	f.Float64Var(&sectionDoc.B, "b", 0, "Width (m)")
	f.Float64Var(&sectionDoc.Tw, "tw", 0, "Web thickness (m)")
	f.Float64Var(&sectionDoc.Tf, "tf", 0, "Flange thickness (m)")
	f.Float64Var(&sectionDoc.TfTop, "tftop", 0, "Top flange thickness (m)")
	f.Float64Var(&sectionDoc.TfBot, "tfbot", 0, "Bottom flange thickness (m)")
	f.Float64Var(&sectionDoc.Otw, "otw", 0, "Outer wall thickness (m)")
	f.Float64Var(&sectionDoc.Ws, "ws", 0, "Web spacing of double I sections (m)")

	f.Float64Var(&sectionMat.Density, "density", material.SteelDensity, "Material density (kg/m³)")
	f.Float64Var(&sectionMat.YoungModulus, "E", material.SteelYoungModulus, "Young's modulus (Pa)")
	f.Float64Var(&sectionMat.Poisson, "nu", material.SteelPoisson, "Poisson's ratio")
	sectionCmd.MarkFlagsMutuallyExclusive("file", "type")
	sectionCmd.MarkFlagsOneRequired("file", "type")
}

func runSection(cmd *cobra.Command, args []string) error {
	if sectionFile != "" {
		return runSectionFile()
	}

	doc := sectionDoc
	doc.Name = doc.Type
	sec, err := doc.Section()
	if err != nil {
		return err
	}
	mat := sectionMat
	mat.Name = "input"
	if err := mat.Validate(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SECTION PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	printSection(sec)

	lt := sec.LineTypeProps(&mat)
	fmt.Println("LINE TYPE PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Density:\t%.1f kg/m³\n", mat.Density)
	fmt.Fprintf(w, "  Young's modulus:\t%.4g Pa\n", mat.YoungModulus)
	fmt.Fprintf(w, "  Poisson's ratio:\t%.3f\n", mat.Poisson)
	fmt.Fprintf(w, "  Mass per length:\t%.4f kg/m\n", lt.MassPerLength)
	fmt.Fprintf(w, "  EIx:\t%.6g N·m²\n", lt.EIx)
	fmt.Fprintf(w, "  EIy:\t%.6g N·m²\n", lt.EIy)
	fmt.Fprintf(w, "  EA:\t%.6g N\n", lt.EA)
	fmt.Fprintf(w, "  GJ:\t%.6g N·m²\n", lt.GJ)
	w.Flush()
	fmt.Println()
	return nil
}

func printSection(sec *section.Section) {
	p := sec.Properties()
	fmt.Println("GEOMETRIC PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	kind := string(sec.Kind())
	if kind == "" {
		kind = "general"
	}
	fmt.Fprintf(w, "  Type:\t%s\n", kind)
	fmt.Fprintf(w, "  Area (A):\t%.6g m²\n", p.A)
	fmt.Fprintf(w, "  Ixx:\t%.6g m⁴\n", p.Ixx)
	fmt.Fprintf(w, "  Iyy:\t%.6g m⁴\n", p.Iyy)
	fmt.Fprintf(w, "  Torsional constant (J):\t%.6g m⁴\n", p.J)
	if od := sec.OuterDiameter(); od > 0 {
		fmt.Fprintf(w, "  Equivalent OD / ID:\t%.4f / %.4f m\n", od, sec.InnerDiameter())
	}
	w.Flush()
	fmt.Println()
}

func runSectionFile() error {
	m, err := openModel(sectionFile)
	if err != nil {
		return err
	}
	defer m.Close()
	m.GenerateLineTypes()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SECTIONS AND LINE TYPES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("SECTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tType\tA (m²)\tIxx (m⁴)\tIyy (m⁴)\tJ (m⁴)\tOD (m)\n")
	for _, s := range m.Sections.All() {
		p := s.Properties()
		fmt.Fprintf(w, "  %s\t%s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n", s.Name, s.Kind(), p.A, p.Ixx, p.Iyy, p.J, s.OuterDiameter())
	}
	w.Flush()
	fmt.Println()

	fmt.Println("LINE TYPES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Line type\tm (kg/m)\tEIx (N·m²)\tEIy (N·m²)\tEA (N)\tGJ (N·m²)\tCd\tCm\n")
	for _, props := range m.LineTypes.All() {
		sec, mat, err := m.SectionProps(props)
		if err != nil {
			return err
		}
		lt := sec.LineTypeProps(mat)
		cd, cm := "-", "-"
		hydro, ok, err := m.HydroAt(props)
		if err != nil {
			return err
		}
		if ok {
			cd, cm = coefficient(hydro.Cd), coefficient(hydro.Cm)
		}
		fmt.Fprintf(w, "  %s\t%.2f\t%.4g\t%.4g\t%.4g\t%.4g\t%s\t%s\n", props.EncodeName(), lt.MassPerLength, lt.EIx, lt.EIy, lt.EA, lt.GJ, cd, cm)
	}
	w.Flush()
	fmt.Println()
	return nil
}

// coefficient formats a hydrodynamic coefficient at the section's diameter.
func coefficient(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.3g", v)
}
