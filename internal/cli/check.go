package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coverhue/coverhue/internal/colour"
)

var (
	// Check command flags
	checkDeficiency string
	checkThreshold  float64
	checkPreview    bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <hex>...",
	Short: "Check colours for colour vision deficiency friendliness",
	Long: `Check whether a set of colours stays mutually distinguishable under
a simulated colour vision deficiency.

Each colour is transformed by the simulation matrix for the deficiency
and the set is friendly when every pair of simulated colours is at
least the threshold distance apart.

Examples:
  # Deuteranopia check of two colours
  coverhue check "#ff0000" "#00ff00"

  # Protanopia check with a stricter threshold
  coverhue check --deficiency protanopia --threshold 0.3 "#ff0000" "#0000ff"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDeficiency, "deficiency", string(colour.Deuteranopia), "deficiency to simulate (protanopia, deuteranopia, tritanopia)")
	checkCmd.Flags().Float64Var(&checkThreshold, "threshold", colour.DefaultCVDThreshold, "minimum simulated colour distance")
	checkCmd.Flags().BoolVar(&checkPreview, "preview", false, "show colour previews in terminal (default: when stdout is a terminal)")
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, args []string) error {
	deficiency, err := parseDeficiency(checkDeficiency)
	if err != nil {
		return err
	}

	colours := make([]colour.Colour, len(args))
	for i, hex := range args {
		c, err := colour.ParseHex(hex)
		if err != nil {
			return err
		}
		colours[i] = c
	}

	preview := shouldPreview(cmd, checkPreview)
	for _, c := range colours {
		simulated, err := colour.Simulate(c, deficiency)
		if err != nil {
			return err
		}
		if preview {
			fmt.Printf("%s -> %s\n", colour.ColourPreview(c.RGB(), 8), colour.FormatColourWithPreview(simulated.RGB(), 8))
		} else {
			fmt.Printf("%s -> %s\n", c.Hex(), simulated.Hex())
		}
	}

	friendly, err := colour.IsColorblindFriendly(colours, deficiency, checkThreshold)
	if err != nil {
		return err
	}

	if friendly {
		fmt.Printf("colours are %s friendly (threshold %.2f)\n", deficiency, checkThreshold)
		return nil
	}

	fmt.Printf("colours are NOT %s friendly (threshold %.2f)\n", deficiency, checkThreshold)
	return nil
}
