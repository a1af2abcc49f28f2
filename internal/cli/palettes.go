package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coverhue/coverhue/internal/colour"
	"github.com/coverhue/coverhue/internal/store"
)

var (
	// Palettes command flags
	palettesPage    int
	palettesPerPage int
	palettesColours int
	palettesPreview bool
)

// palettesCmd represents the palettes command group
var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List and inspect saved palette records",
}

// palettesListCmd represents the palettes list command
var palettesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved palette records",
	Args:  cobra.NoArgs,
	RunE:  runPalettesList,
}

// palettesShowCmd represents the palettes show command
var palettesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one saved palette record",
	Args:  cobra.ExactArgs(1),
	RunE:  runPalettesShow,
}

// palettesFindCmd represents the palettes find command
var palettesFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Find saved palette records by colour count",
	Args:  cobra.NoArgs,
	RunE:  runPalettesFind,
}

// addPaginationFlags registers the shared pagination flags on a flag set.
func addPaginationFlags(flags *pflag.FlagSet) {
	flags.IntVar(&palettesPage, "page", 1, "page number")
	flags.IntVar(&palettesPerPage, "per-page", 20, "records per page")
}

func init() {
	addPaginationFlags(palettesListCmd.Flags())
	addPaginationFlags(palettesFindCmd.Flags())
	palettesFindCmd.Flags().IntVarP(&palettesColours, "colours", "c", 4, "colour count to find")
	palettesShowCmd.Flags().BoolVar(&palettesPreview, "preview", false, "show colour previews in terminal (default: when stdout is a terminal)")

	palettesCmd.AddCommand(palettesListCmd)
	palettesCmd.AddCommand(palettesShowCmd)
	palettesCmd.AddCommand(palettesFindCmd)
}

// runPalettesList executes the palettes list command.
func runPalettesList(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := newStore(cfg, logger).List(palettesPage, palettesPerPage)
	if err != nil {
		return err
	}

	printRecordTable(records)
	return nil
}

// runPalettesShow executes the palettes show command.
func runPalettesShow(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rec, err := newStore(cfg, logger).Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("name:     %s\n", rec.Name)
	fmt.Printf("artist:   %s\n", rec.Artist)
	fmt.Printf("album:    %s\n", rec.Album)
	fmt.Printf("colours:  %d\n", rec.NColors)
	if rec.ImageURL != "" {
		fmt.Printf("image:    %s\n", rec.ImageURL)
	}
	if rec.Path != nil {
		fmt.Printf("path:     %s\n", *rec.Path)
	}

	preview := shouldPreview(cmd, palettesPreview)
	for _, hex := range rec.Hexcodes {
		if preview {
			c, err := colour.ParseHex(hex)
			if err != nil {
				return err
			}
			fmt.Println(colour.FormatColourWithPreview(c.RGB(), 8))
		} else {
			fmt.Println(hex)
		}
	}

	return nil
}

// runPalettesFind executes the palettes find command.
func runPalettesFind(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := newStore(cfg, logger).FindByColourCount(palettesColours, palettesPage, palettesPerPage)
	if err != nil {
		return err
	}

	printRecordTable(records)
	return nil
}

// printRecordTable renders records as a table, or a friendly message when
// there are none.
func printRecordTable(records []store.Record) {
	if len(records) == 0 {
		fmt.Println("no palette records found")
		return
	}

	table := NewTable([]string{"NAME", "ARTIST", "ALBUM", "COLOURS", "HEXCODES"})
	for _, rec := range records {
		table.AddRow([]string{
			rec.Name,
			rec.Artist,
			rec.Album,
			fmt.Sprintf("%d", rec.NColors),
			strings.Join(rec.Hexcodes, " "),
		})
	}
	fmt.Print(table.Render())
}
