package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coverhue/coverhue/internal/colour"
)

var (
	// Distinct command flags
	distinctMaxColours      int
	distinctCount           int
	distinctSeed            int64
	distinctImage           string
	distinctFormat          string
	distinctPreview         bool
	distinctKeepTransparent bool
)

// distinctCmd represents the distinct command
var distinctCmd = &cobra.Command{
	Use:   "distinct <artist> <album>",
	Short: "Pick the most mutually distinct colours from an album's cover art",
	Long: `Generate palettes for every colour count from 2 up to --max-colours,
then pick the subset of --distinct colours that are most mutually
distinct across all of them.

Candidate palettes are re-clustered down to the requested subset size
and scored by the summed pairwise distance between the resulting
colours; the highest-scoring subset wins.

Examples:
  # The 4 most distinct colours, searching up to 10
  coverhue distinct "Radiohead" "OK Computer"

  # The 6 most distinct colours, searching up to 16
  coverhue distinct --max-colours 16 --distinct 6 "Radiohead" "OK Computer"`,
	Args: cobra.ExactArgs(2),
	RunE: runDistinct,
}

func init() {
	distinctCmd.Flags().IntVar(&distinctMaxColours, "max-colours", 10, "highest colour count to consider")
	distinctCmd.Flags().IntVarP(&distinctCount, "distinct", "d", 4, "size of the distinct colour subset")
	distinctCmd.Flags().Int64Var(&distinctSeed, "seed", 0, "clustering seed for reproducible palettes")
	distinctCmd.Flags().StringVar(&distinctImage, "image", "", "use this image (file path or URL) instead of resolving cover art")
	distinctCmd.Flags().StringVarP(&distinctFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	distinctCmd.Flags().BoolVar(&distinctPreview, "preview", false, "show colour previews in terminal (default: when stdout is a terminal)")
	distinctCmd.Flags().BoolVar(&distinctKeepTransparent, "keep-transparent", false, "keep fully transparent pixels in the clustering input")
}

// runDistinct executes the distinct command.
func runDistinct(cmd *cobra.Command, args []string) error {
	artist, album := args[0], args[1]
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pixels, _, err := coverPixels(cmd.Context(), cfg, logger, artist, album, distinctImage, distinctKeepTransparent)
	if err != nil {
		return err
	}

	logger.Debug("selecting distinct colours", "max", distinctMaxColours, "distinct", distinctCount)

	generator := colour.NewGenerator()

	result, err := generator.GenerateOptimal(pixels, distinctMaxColours, seedOption(cmd, distinctSeed))
	if err != nil {
		return fmt.Errorf("generating candidate palettes: %w", err)
	}

	subset, err := generator.SelectDistinct(result.Palettes, distinctCount)
	if err != nil {
		return fmt.Errorf("selecting distinct colours: %w", err)
	}

	output, err := formatPalette(subset, distinctFormat, shouldPreview(cmd, distinctPreview))
	if err != nil {
		return err
	}
	fmt.Print(output)

	return nil
}
