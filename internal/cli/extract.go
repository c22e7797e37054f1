package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/avatint/avatint/internal/colour"
	"github.com/avatint/avatint/internal/image"
	httputil "github.com/avatint/avatint/internal/util/http"
	"github.com/avatint/avatint/internal/util/imagecache"
)

var (
	// Extract command flags
	extractMode        string
	extractFormat      string
	extractOutput      string
	extractShowPreview bool
	extractUseCache    bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image|url>",
	Short: "Extract identity colours from an avatar image",
	Long: `Extract one or two identity colours from an avatar image.

The extract command analyses an image and reports the colour of its
largest perceptual region (single mode) or its two largest regions
(dual mode). The input may be a local file or an HTTP(S) URL.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract the primary and secondary colours (default)
  avatint extract avatar.png

  # Extract a single dominant colour
  avatint extract --mode single avatar.png

  # Extract from a remote avatar and output as JSON
  avatint extract --format json https://example.com/avatar.png

  # Cache the remote avatar for repeated runs
  avatint extract --cache https://example.com/avatar.png

  # Show colour previews in the terminal
  avatint extract --preview avatar.webp`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	// Define flags for the extract command
	extractCmd.Flags().StringVarP(&extractMode, "mode", "m", "dual", "extraction mode (single, dual)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour previews in terminal")
	extractCmd.Flags().BoolVar(&extractUseCache, "cache", false, "cache remote avatars on disk")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	logger := newLogger(cmd)

	// Validate the image path
	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	mode, err := colour.ParseMode(extractMode)
	if err != nil {
		return err
	}

	// Remote avatars can optionally be cached on disk for repeated runs.
	if extractUseCache && image.IsURL(imagePath) {
		cachedPath, err := imagecache.DownloadAndCache(context.Background(), imagePath, imagecache.CacheOptions{
			Fetch: fetchOptions(logger),
		})
		if err != nil {
			return fmt.Errorf("failed to cache avatar: %w", err)
		}
		logger.Debug("using cached avatar", "path", cachedPath)
		imagePath = cachedPath
	}

	logger.Debug("loading image", "path", imagePath)

	loader := image.NewSmartLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	// Extraction itself never fails for a decoded image.
	swatch := colour.NewExtractor().Extract(img, mode)

	logger.Debug("extraction complete",
		"mode", mode, "primary", swatch.Primary.Hex(), "secondary", swatch.Secondary.Hex())

	output, err := formatSwatch(swatch, mode, extractFormat, extractShowPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	// Write output to file or stdout
	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote output", "path", extractOutput)
	} else {
		fmt.Print(output)
	}

	return nil
}

// fetchOptions builds the HTTP fetch options shared by cached and
// direct downloads: default avatar limits plus the command logger.
func fetchOptions(logger hclog.Logger) httputil.FetchOptions {
	return httputil.FetchOptions{Logger: logger}
}

// formatSwatch formats the extraction result according to the specified format.
func formatSwatch(swatch colour.Swatch, mode colour.Mode, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		if mode == colour.ModeSingle {
			return formatColour(swatch.Single().RGB(), "", showPreview), nil
		}
		return formatColour(swatch.Primary.RGB(), "primary", showPreview) +
			formatColour(swatch.Secondary.RGB(), "secondary", showPreview), nil
	case "rgb":
		if mode == colour.ModeSingle {
			return swatch.Single().RGB().String() + "\n", nil
		}
		return swatch.Primary.RGB().String() + "\n" + swatch.Secondary.RGB().String() + "\n", nil
	case "json":
		jsonBytes, err := swatch.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}

// formatColour renders one colour line, with an optional label and
// terminal preview block.
func formatColour(rgb colour.RGB, label string, showPreview bool) string {
	if showPreview && colour.SupportsANSIColours() {
		if label != "" {
			return colour.FormatWithLabel(rgb, label, 8) + "\n"
		}
		return colour.FormatWithPreview(rgb, 8) + "\n"
	}
	return rgb.Hex() + "\n"
}
