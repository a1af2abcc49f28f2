package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/coverhue/coverhue/internal/art"
	"github.com/coverhue/coverhue/internal/colour"
	"github.com/coverhue/coverhue/internal/config"
	"github.com/coverhue/coverhue/internal/image"
	"github.com/coverhue/coverhue/internal/store"
	httputil "github.com/coverhue/coverhue/internal/util/http"
)

// musicBrainzDelay throttles MusicBrainz API requests, as their terms of
// service ask.
const musicBrainzDelay = time.Second

// newResolver builds the cover art resolver with its sources in lookup
// priority order. Sources without credentials stay in the chain; they report
// not-found and the chain moves on.
func newResolver(cfg config.Config, logger hclog.Logger) *art.Resolver {
	return art.NewResolver(logger,
		art.NewLastFM(cfg.LastFMAPIKey, logger),
		art.NewMusicBrainz(httputil.UserAgent(), musicBrainzDelay, logger),
		art.NewDiscogs(cfg.DiscogsToken, logger),
	)
}

// newStore builds the palette record store under the configured directory.
func newStore(cfg config.Config, logger hclog.Logger) *store.Store {
	return store.New(afero.NewOsFs(), cfg.PaletteDir, logger)
}

// coverPixels resolves an album's cover art and converts it into a pixel
// set. When imagePath is non-empty it is used directly (local file or URL)
// and the resolver is bypassed. The returned string is the image reference
// for record keeping.
func coverPixels(ctx context.Context, cfg config.Config, logger hclog.Logger, artist, album, imagePath string, keepTransparent bool) (*colour.PixelSet, string, error) {
	var (
		pixels   *colour.PixelSet
		imageRef string
	)

	if imagePath != "" {
		img, err := image.NewSmartLoader().Load(ctx, imagePath)
		if err != nil {
			return nil, "", fmt.Errorf("loading image: %w", err)
		}
		pixels = colour.PixelSetFromImage(img)
		imageRef = imagePath
	} else {
		cover, err := newResolver(cfg, logger).FrontCover(ctx, artist, album)
		if err != nil {
			return nil, "", fmt.Errorf("resolving cover art for %s - %s: %w", artist, album, err)
		}

		img, err := image.Decode(cover.Data)
		if err != nil {
			return nil, "", fmt.Errorf("decoding cover art: %w", err)
		}
		pixels = colour.PixelSetFromImage(img)
		imageRef = cover.URL
	}

	if !keepTransparent {
		if n := pixels.TransparentCount(); n > 0 {
			logger.Debug("dropping transparent pixels", "count", n)
			pixels = pixels.WithoutTransparent()
		}
	}

	return pixels, imageRef, nil
}

// seedOption converts the --seed flag into clustering options. The seed only
// takes effect when the flag was actually given; otherwise runs are seeded
// from the clock.
func seedOption(cmd *cobra.Command, seed int64) colour.Options {
	opts := colour.Options{}
	if cmd.Flags().Changed("seed") {
		opts.Seed = &seed
	}
	return opts
}

// shouldPreview decides whether to render ANSI colour swatches. An explicit
// --preview wins; otherwise swatches appear when stdout is a terminal.
func shouldPreview(cmd *cobra.Command, flagValue bool) bool {
	if cmd.Flags().Changed("preview") {
		return flagValue
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}

// formatHex formats the palette as hex colour codes.
func formatHex(palette *colour.Palette, showPreview bool) string {
	output := ""
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			output += colour.FormatColourWithPreview(rgb, 8) + "\n"
		} else {
			output += rgb.Hex() + "\n"
		}
	}
	return output
}

// formatRGB formats the palette as RGB values.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	output := ""
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			output += colour.ColourPreview(rgb, 8) + " " + rgb.String() + "\n"
		} else {
			output += rgb.String() + "\n"
		}
	}
	return output
}

// parseDeficiency validates a deficiency name from the command line.
func parseDeficiency(name string) (colour.Deficiency, error) {
	for _, d := range colour.Deficiencies() {
		if string(d) == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: protanopia, deuteranopia, tritanopia)", colour.ErrUnknownDeficiency, name)
}
