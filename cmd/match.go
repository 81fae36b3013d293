package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/strucconv/internal/coincidence"
	"github.com/alexiusacademia/strucconv/internal/diagram"
)

var (
	matchFrom  string
	matchTo    string
	matchTag   string
	matchLimit int
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match beams between two models",
	Long: `Find, for every beam of one model, the beam of another model that lies
in the same place. The models need no common identifiers: beams are
compared by direction, offset and overlap, and scored from 0 (unrelated)
to 1 (coincident).

With --tag, the first model is saved with the name, ID and score of each
counterpart stored in the "Coincidence" property namespace of its beams.

Examples:
  strucconv match --from ifc-model.json --to jacket.xml
  strucconv match --from a.yaml --to b.yaml --tag a-tagged.yaml`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchFrom, "from", "", "Model whose beams are matched [required]")
	matchCmd.Flags().StringVar(&matchTo, "to", "", "Model providing the counterparts [required]")
	matchCmd.Flags().StringVar(&matchTag, "tag", "", "Save the first model with the matches recorded (.json, .yaml)")
	matchCmd.Flags().IntVar(&matchLimit, "top", 0, "Only list the best N matches (0 lists all)")
	matchCmd.MarkFlagRequired("from")
	matchCmd.MarkFlagRequired("to")
}

func runMatch(cmd *cobra.Command, args []string) error {
	models, log, err := openModels(Cfg, matchFrom, matchTo)
	if err != nil {
		return err
	}
	defer log.Close()
	from, to := models[0], models[1]

	from.ApplyExclusions()
	to.ApplyExclusions()

	results := coincidence.BestMatches(from.Beams.All(), to.Beams.All())
	unmatched := coincidence.Unmatched(from.Beams.All(), results)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BEAM MATCHING")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Print(diagram.DrawSummaryBox("MATCH SUMMARY", []string{
		fmt.Sprintf("From:      %s (%d beams)", matchFrom, from.Beams.Len()),
		fmt.Sprintf("To:        %s (%d beams)", matchTo, to.Beams.Len()),
		fmt.Sprintf("Matched:   %d", len(results)),
		fmt.Sprintf("Unmatched: %d", len(unmatched)),
	}))
	fmt.Println()

	if matchTag != "" {
		coincidence.Tag(results)
	}

	listed := append([]coincidence.Result(nil), results...)
	coincidence.ByScore(listed)
	if matchLimit > 0 && matchLimit < len(listed) {
		listed = listed[:matchLimit]
	}
	if len(listed) > 0 {
		fmt.Println("MATCHES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Beam\tCounterpart\tScore\n")
		for _, r := range listed {
			fmt.Fprintf(w, "  %s\t%s\t%.4f\n", r.Beam.Name, r.Counterpart.Name, r.Score)
		}
		w.Flush()
		fmt.Println()
	}

	if len(unmatched) > 0 {
		fmt.Println("UNMATCHED:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, b := range unmatched {
			fmt.Printf("  %s\n", b.Name)
		}
		fmt.Println()
	}

	if matchTag != "" {
		if err := saveModel(from, matchTag); err != nil {
			return err
		}
		fmt.Printf("  Tagged model saved to: %s\n", matchTag)
		fmt.Println()
	}
	fmt.Printf("  %s\n", log.Status())
	fmt.Println()
	return nil
}
