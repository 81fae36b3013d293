package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/strucconv/internal/concept"
	"github.com/alexiusacademia/strucconv/internal/diagram"
	"github.com/alexiusacademia/strucconv/internal/intersect"
	"github.com/alexiusacademia/strucconv/internal/modelio"
	"github.com/alexiusacademia/strucconv/internal/version"
)

var (
	connectFile   string
	connectOutput string
	connectPlot   string
	connectView   string
	connectASCII  bool
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Detect beam intersections and build the connections",
	Long: `Read a model, remove the beams the exclusion options leave out, cut
beams where they cross within the proximity tolerance and join the new
ends into connection groups. Support points are then linked to the
nearest connection or beam end.

The input is a model document (.json, .yaml) or a Sesam XML export (.xml).

Examples:
  strucconv connect -f jacket.xml -o jacket.json
  strucconv connect -f jacket.yaml --ascii --view xz
  strucconv connect -f jacket.json --plot plan.png --ProximityTol 0.05`,
	RunE: runConnect,
}

func init() {
	connectCmd.Flags().StringVarP(&connectFile, "file", "f", "", "Path to the model file [required]")
	connectCmd.Flags().StringVarP(&connectOutput, "output", "o", "", "Save the connected model (.json, .yaml)")
	connectCmd.Flags().StringVar(&connectPlot, "plot", "", "Export a plan view image (png, svg, pdf)")
	connectCmd.Flags().StringVar(&connectView, "view", "xy", "Plane of the plan view (xy, xz, yz)")
	connectCmd.Flags().BoolVar(&connectASCII, "ascii", false, "Show an ASCII plan view")
	connectCmd.MarkFlagRequired("file")
}

func runConnect(cmd *cobra.Command, args []string) error {
	view, err := diagram.ParseView(connectView)
	if err != nil {
		return err
	}
	m, err := openModel(connectFile)
	if err != nil {
		return err
	}
	defer m.Close()

	beamsIn := m.Beams.Len()
	excluded := m.ApplyExclusions()
	stats := intersect.Detect(m)
	linked := m.LinkSupports()
	m.GenerateLineTypes()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BEAM CONNECTIVITY")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	printModelInfo(m, connectFile)

	fmt.Println("RESULTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beams read:\t%d\n", beamsIn)
	fmt.Fprintf(w, "  Beams excluded:\t%d\n", excluded)
	fmt.Fprintf(w, "  Intersections found:\t%d\n", stats.Joints)
	fmt.Fprintf(w, "  Beams divided:\t%d\n", stats.Splits)
	fmt.Fprintf(w, "  Beams after connection:\t%d\n", m.Beams.Len())
	fmt.Fprintf(w, "  Connection groups:\t%d\n", m.Connections.Len())
	fmt.Fprintf(w, "  Supports linked:\t%d of %d\n", linked, m.Supports.Len())
	fmt.Fprintf(w, "  Line types:\t%d\n", m.LineTypes.Len())
	fmt.Fprintf(w, "  Equipment:\t%d\n", m.Equipment.Len())
	w.Flush()
	fmt.Println()

	if m.Connections.Len() > 0 {
		fmt.Println("CONNECTIONS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for i, g := range m.Connections.Groups() {
			pos := ""
			if len(g.Members) > 0 {
				pos = g.Members[0].Coord().String()
			}
			fmt.Fprintf(w, "  J%d\t%s\t%s\n", i+1, pos, g.String())
		}
		w.Flush()
		fmt.Println()
	}

	if m.Supports.Len() > 0 {
		fmt.Println("SUPPORTS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, s := range m.Supports.All() {
			link := "not linked"
			if mem, ok := m.SupportMember(s); ok {
				link = mem.String()
			}
			fixings := make([]string, len(s.Fixings))
			for i, f := range s.Fixings {
				fixings[i] = f.String()
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", s.Name, s.Position, strings.Join(fixings, ","), link)
		}
		w.Flush()
		fmt.Println()
	}

	data := diagram.FromModel(m)
	if connectASCII {
		fmt.Print(diagram.DrawASCIIPlan(data, view, 60, 24))
		fmt.Println()
	}
	if connectPlot != "" {
		if err := diagram.ExportPlan(data, view, connectPlot); err != nil {
			return fmt.Errorf("exporting plan view: %w", err)
		}
		fmt.Printf("  Plan view exported to: %s\n", connectPlot)
	}
	if connectOutput != "" {
		if err := saveModel(m, connectOutput); err != nil {
			return err
		}
		fmt.Printf("  Model saved to: %s\n", connectOutput)
	}

	fmt.Println()
	fmt.Printf("  %s\n", m.Status())
	fmt.Println()
	return nil
}

func printModelInfo(m *concept.Model, path string) {
	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  File:\t%s\n", path)
	if o := m.Origin; o.ModelName != "" {
		fmt.Fprintf(w, "  Model:\t%s\n", o.ModelName)
	}
	if o := m.Origin; o.Program != "" {
		fmt.Fprintf(w, "  Source:\t%s %s\n", o.Program, o.Version)
	}
	fmt.Fprintf(w, "  Materials:\t%d\n", m.Materials.Len())
	fmt.Fprintf(w, "  Sections:\t%d\n", m.Sections.Len())
	fmt.Fprintf(w, "  Hydrodynamic sets:\t%d\n", m.Hydro.Len())
	fmt.Fprintf(w, "  Proximity tolerance:\t%g m\n", m.Options.ProximityTol)
	w.Flush()
	fmt.Println()
}

// saveModel writes the model as a document, recording this program as the
// origin when the model has none.
func saveModel(m *concept.Model, path string) error {
	doc := modelio.FromModel(m)
	if doc.Origin == nil {
		doc.Origin = &modelio.OriginDoc{Program: version.Program, Version: version.Version}
	}
	if err := modelio.SaveFile(path, doc); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	return nil
}
