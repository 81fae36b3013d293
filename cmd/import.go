package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/strucconv/internal/diagram"
)

var (
	importFile   string
	importOutput string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert models from other programs",
	Long: `Convert a model exported by another program into a model document.

Subcommands:
  sesam  - Sesam concept model (XML export)`,
}

var importSesamCmd = &cobra.Command{
	Use:   "sesam",
	Short: "Import a Sesam concept model",
	Long: `Read a Sesam concept model exported as XML: materials, sections,
hydrodynamic coefficients, straight beams, support points, sets and
equipment placed by equipment loads. Units are converted to SI. Segments above the wave zone take the air drag
coefficients, the others the Morison coefficients.

Content the importer does not handle (curved segments, other structure
types, unsupported section types) is skipped with a warning. Equipment
placed in a load case listed in --ExcludeLoadCases is left out.

Examples:
  strucconv import sesam -f jacket.xml -o jacket.json
  strucconv import sesam -f jacket.xml -o jacket.yaml --Environment.MaxWaveHeight 20`,
	RunE: runImportSesam,
}

func init() {
	importSesamCmd.Flags().StringVarP(&importFile, "file", "f", "", "Sesam XML export [required]")
	importSesamCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Model document to write (.json, .yaml) [required]")
	importSesamCmd.MarkFlagRequired("file")
	importSesamCmd.MarkFlagRequired("output")
}

func runImportSesam(cmd *cobra.Command, args []string) error {
	m, err := openModel(importFile)
	if err != nil {
		return err
	}
	defer m.Close()

	excluded := m.ApplyExclusions()
	linked := m.LinkSupports()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SESAM IMPORT")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	printModelInfo(m, importFile)

	fmt.Print(diagram.DrawSummaryBox("IMPORTED", []string{
		fmt.Sprintf("Beams:           %d", m.Beams.Len()),
		fmt.Sprintf("Beams excluded:  %d", excluded),
		fmt.Sprintf("Supports linked: %d of %d", linked, m.Supports.Len()),
		fmt.Sprintf("Sets:            %d", m.Sets.Len()),
		fmt.Sprintf("Equipment:       %d", m.Equipment.Len()),
	}))
	fmt.Println()

	if err := saveModel(m, importOutput); err != nil {
		return err
	}
	fmt.Printf("  Model saved to: %s\n", importOutput)
	fmt.Println()
	fmt.Printf("  %s\n", m.Status())
	fmt.Println()
	return nil
}
