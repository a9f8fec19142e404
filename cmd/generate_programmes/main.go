// Command generate_programmes writes synthetic candidate programme files
// for demos and manual testing of ballot.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahrav/go-ballot/internal/testutils"
)

func main() {
	if err := newGenerateCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newGenerateCmd(out io.Writer) *cobra.Command {
	var (
		count        int
		perCandidate int
		outputDir    string
		seed         uint64
	)

	cmd := &cobra.Command{
		Use:          "generate_programmes",
		Short:        "Write synthetic candidate programmes as JSON files",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			candidates := testutils.GenerateSampleProgrammes(count, perCandidate, seed)

			paths, err := testutils.SaveProgrammes(outputDir, candidates)
			if err != nil {
				return fmt.Errorf("failed to save programmes: %w", err)
			}

			stats := testutils.ComputeProgrammeStatistics(candidates)
			fmt.Fprintf(out, "Generated candidate programmes:\n")
			fmt.Fprintf(out, "- Directory: %s\n", outputDir)
			fmt.Fprintf(out, "- Files: %d\n", len(paths))
			fmt.Fprintf(out, "- Total propositions: %d\n", stats.Propositions)
			fmt.Fprintf(out, "- Average propositions per candidate: %.2f\n", stats.AvgPerCandidate)
			fmt.Fprintf(out, "- Parties: %v\n", stats.PartiesCount)
			fmt.Fprintf(out, "\nThese programmes are synthetic and do not describe real candidates.\n")
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&count, "count", "n", 5, "Number of candidates to generate (at most 10)")
	f.IntVarP(&perCandidate, "propositions", "p", 8, "Number of propositions per candidate")
	f.StringVarP(&outputDir, "output", "o", "programmes", "Directory the programme files are written to")
	f.Uint64Var(&seed, "seed", 0, "Random seed (defaults to the current time)")
	return cmd
}
