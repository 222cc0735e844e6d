package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/benoitkugler/svgrender/svgdom"
	"github.com/benoitkugler/svgrender/svgrender"
	"github.com/benoitkugler/svgrender/svgunit"
)

// renderConfig mirrors the render flags, so a TOML file can supply the
// same options. Explicitly set flags win over the file.
type renderConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	AntiAlias  bool   `toml:"antialias"`
	Output     string `toml:"output"`
	Format     string `toml:"format"`
}

func renderCommand() *cobra.Command {
	var (
		cfg        renderConfig
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "render <input.svg>",
		Short: "Rasterize a document to an image file",
		Long: `Rasterize a document to an image file.

The output size defaults to the document's own width and height;
--width/--height rescale the content through the viewBox mapping.
Options may also come from a TOML config file, with explicit flags
taking precedence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := loadConfig(configPath, &cfg, cmd); err != nil {
					return err
				}
			}
			return runRender(args[0], cfg)
		},
	}
	cmd.Flags().IntVar(&cfg.Width, "width", 0, "output width in pixels (0 keeps the document size)")
	cmd.Flags().IntVar(&cfg.Height, "height", 0, "output height in pixels (0 keeps the document size)")
	cmd.Flags().StringVar(&cfg.Background, "background", "white", "background color (named, #hex or rgb())")
	cmd.Flags().BoolVar(&cfg.AntiAlias, "aa", true, "enable anti-aliasing")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "output file (default: input with the format extension)")
	cmd.Flags().StringVar(&cfg.Format, "format", "", "output format: png, bmp or tiff (default from the output extension)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file supplying the same options")
	return cmd
}

// loadConfig merges the TOML file under the flags: values from the file
// apply only where the flag was not set on the command line.
func loadConfig(path string, cfg *renderConfig, cmd *cobra.Command) error {
	var fileCfg renderConfig
	if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if !cmd.Flags().Changed("width") {
		cfg.Width = fileCfg.Width
	}
	if !cmd.Flags().Changed("height") {
		cfg.Height = fileCfg.Height
	}
	if !cmd.Flags().Changed("background") && fileCfg.Background != "" {
		cfg.Background = fileCfg.Background
	}
	if !cmd.Flags().Changed("aa") {
		cfg.AntiAlias = fileCfg.AntiAlias
	}
	if !cmd.Flags().Changed("output") && fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}
	if !cmd.Flags().Changed("format") && fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	return nil
}

func runRender(input string, cfg renderConfig) error {
	tree, err := svgdom.ReadFile(input)
	if err != nil {
		return err
	}

	background, painted := svgunit.ParseColor(cfg.Background)
	renderer, err := svgrender.New(tree, svgrender.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Background:  background.WithOpacity(1),
		Transparent: !painted, // "none" renders on transparency
		AntiAlias:   cfg.AntiAlias,
	})
	if err != nil {
		return err
	}
	for _, w := range renderer.Report().Warnings {
		logger.Warn(w)
	}

	format, err := resolveFormat(cfg.Format, cfg.Output)
	if err != nil {
		return err
	}
	output := cfg.Output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}

	logger.Debug("rendering", "input", input, "output", output, "format", format)
	img := renderer.Image()
	if err := writeImage(output, format, img); err != nil {
		return err
	}
	logger.Info("rendered", "file", output,
		"size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
	return nil
}

// resolveFormat picks the encoder from the flag, else from the output
// file extension, defaulting to png.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".bmp":
			format = "bmp"
		case ".tif", ".tiff":
			format = "tiff"
		default:
			format = "png"
		}
	}
	switch format {
	case "png", "bmp", "tiff":
		return format, nil
	}
	return "", fmt.Errorf("unsupported format %q (want png, bmp or tiff)", format)
}

func writeImage(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch format {
	case "bmp":
		err = bmp.Encode(f, img)
	case "tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
