package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coverhue/coverhue/internal/colour"
)

var (
	// Optimal command flags
	optimalMaxColours      int
	optimalSeed            int64
	optimalImage           string
	optimalFormat          string
	optimalPreview         bool
	optimalKeepTransparent bool
)

// optimalCmd represents the optimal command
var optimalCmd = &cobra.Command{
	Use:   "optimal <artist> <album>",
	Short: "Find the optimal colour count for an album's cover art",
	Long: `Generate palettes for every colour count from 2 up to --max-colours
and pick the best count by locating the elbow of the inertia curve.

The full inertia series is printed so the alternatives can be inspected.
When the curve has no usable elbow no palette is chosen; this is reported
explicitly rather than defaulting to some colour count.

Examples:
  # Search up to 10 colours
  coverhue optimal "Radiohead" "OK Computer"

  # Search up to 16 colours, reproducibly
  coverhue optimal --max-colours 16 --seed 42 "Radiohead" "OK Computer"`,
	Args: cobra.ExactArgs(2),
	RunE: runOptimal,
}

func init() {
	optimalCmd.Flags().IntVar(&optimalMaxColours, "max-colours", 10, "highest colour count to consider")
	optimalCmd.Flags().Int64Var(&optimalSeed, "seed", 0, "clustering seed for reproducible palettes")
	optimalCmd.Flags().StringVar(&optimalImage, "image", "", "use this image (file path or URL) instead of resolving cover art")
	optimalCmd.Flags().StringVarP(&optimalFormat, "format", "f", "hex", "output format for the chosen palette (hex, rgb, json)")
	optimalCmd.Flags().BoolVar(&optimalPreview, "preview", false, "show colour previews in terminal (default: when stdout is a terminal)")
	optimalCmd.Flags().BoolVar(&optimalKeepTransparent, "keep-transparent", false, "keep fully transparent pixels in the clustering input")
}

// runOptimal executes the optimal command.
func runOptimal(cmd *cobra.Command, args []string) error {
	artist, album := args[0], args[1]
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pixels, _, err := coverPixels(cmd.Context(), cfg, logger, artist, album, optimalImage, optimalKeepTransparent)
	if err != nil {
		return err
	}

	logger.Debug("searching optimal colour count", "max", optimalMaxColours, "pixels", pixels.Len())

	result, err := colour.NewGenerator().GenerateOptimal(pixels, optimalMaxColours, seedOption(cmd, optimalSeed))
	if err != nil {
		return fmt.Errorf("optimal colour count search: %w", err)
	}

	table := NewTable([]string{"COLOURS", "INERTIA", "CHOSEN"})
	for _, k := range result.Ks() {
		chosen := ""
		if k == result.BestK {
			chosen = "*"
		}
		table.AddRow([]string{
			fmt.Sprintf("%d", k),
			fmt.Sprintf("%.2f", result.Inertias[k]),
			chosen,
		})
	}
	fmt.Print(table.Render())

	best, ok := result.Best()
	if !ok {
		fmt.Println("\nno optimal colour count found")
		return nil
	}

	fmt.Printf("\noptimal colour count: %d\n", result.BestK)

	output, err := formatPalette(best, optimalFormat, shouldPreview(cmd, optimalPreview))
	if err != nil {
		return err
	}
	fmt.Print(output)

	return nil
}
