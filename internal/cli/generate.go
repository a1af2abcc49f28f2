package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coverhue/coverhue/internal/colour"
	"github.com/coverhue/coverhue/internal/store"
)

var (
	// Generate command flags
	generateColours         int
	generateSeed            int64
	generateImage           string
	generateFormat          string
	generatePreview         bool
	generateKeepTransparent bool
	generateSave            bool
	generateName            string
	generateWrite           string
	generateCheck           string
	generateThreshold       float64
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <artist> <album>",
	Short: "Generate a colour palette from an album's cover art",
	Long: `Generate a colour palette with a fixed number of colours from an
album's cover art.

The cover image is looked up through the configured cover art sources
unless --image points at a local file or URL directly.

Examples:
  # Four colours from the resolved cover art
  coverhue generate "Radiohead" "OK Computer"

  # Eight colours, reproducibly
  coverhue generate --colours 8 --seed 42 "Radiohead" "OK Computer"

  # From a local image, as JSON
  coverhue generate --image cover.png --format json "Radiohead" "OK Computer"

  # Check the palette for deuteranopia friendliness
  coverhue generate --check deuteranopia "Radiohead" "OK Computer"

  # Save the palette for later review
  coverhue generate --save "Radiohead" "OK Computer"`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateColours, "colours", "c", 4, "number of colours to generate")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "clustering seed for reproducible palettes")
	generateCmd.Flags().StringVar(&generateImage, "image", "", "use this image (file path or URL) instead of resolving cover art")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	generateCmd.Flags().BoolVar(&generatePreview, "preview", false, "show colour previews in terminal (default: when stdout is a terminal)")
	generateCmd.Flags().BoolVar(&generateKeepTransparent, "keep-transparent", false, "keep fully transparent pixels in the clustering input")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "save the palette as a record")
	generateCmd.Flags().StringVar(&generateName, "name", "", "record name for --save (default: derived from artist and album)")
	generateCmd.Flags().StringVar(&generateWrite, "write", "", "write the palette hexcodes to this file")
	generateCmd.Flags().StringVar(&generateCheck, "check", "", "check the palette for a colour vision deficiency (protanopia, deuteranopia, tritanopia)")
	generateCmd.Flags().Float64Var(&generateThreshold, "threshold", colour.DefaultCVDThreshold, "minimum simulated colour distance for --check")
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, args []string) error {
	artist, album := args[0], args[1]
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pixels, imageRef, err := coverPixels(cmd.Context(), cfg, logger, artist, album, generateImage, generateKeepTransparent)
	if err != nil {
		return err
	}

	logger.Debug("generating palette", "colours", generateColours, "pixels", pixels.Len())

	palette, err := colour.NewGenerator().Generate(pixels, generateColours, seedOption(cmd, generateSeed))
	if err != nil {
		return fmt.Errorf("generating palette: %w", err)
	}

	output, err := formatPalette(palette, generateFormat, shouldPreview(cmd, generatePreview))
	if err != nil {
		return err
	}
	fmt.Print(output)

	if generateCheck != "" {
		deficiency, err := parseDeficiency(generateCheck)
		if err != nil {
			return err
		}
		friendly, err := colour.IsColorblindFriendly(palette.Colours, deficiency, generateThreshold)
		if err != nil {
			return err
		}
		if friendly {
			fmt.Printf("palette is %s friendly (threshold %.2f)\n", deficiency, generateThreshold)
		} else {
			fmt.Printf("palette is NOT %s friendly (threshold %.2f)\n", deficiency, generateThreshold)
		}
	}

	var (
		recordStore *store.Store
		palettePath *string
	)
	if generateWrite != "" || generateSave {
		recordStore = newStore(cfg, logger)
	}

	if generateWrite != "" {
		if err := recordStore.WritePaletteFile(generateWrite, palette.Hex()); err != nil {
			return err
		}
		palettePath = &generateWrite
		fmt.Fprintf(os.Stderr, "wrote palette to %s\n", generateWrite)
	}

	if generateSave {
		name := generateName
		if name == "" {
			name = store.DefaultName(artist, album, palette.Len())
		}

		rec := store.Record{
			Name:     name,
			Artist:   artist,
			Album:    album,
			NColors:  palette.Len(),
			ImageURL: imageRef,
			Hexcodes: palette.Hex(),
			Path:     palettePath,
		}
		if err := recordStore.Save(rec); err != nil {
			return fmt.Errorf("saving palette record: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved palette record %q\n", name)
	}

	return nil
}
