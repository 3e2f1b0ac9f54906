package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"imagelab/internal/models"
	"imagelab/internal/services"

	"github.com/spf13/cobra"
)

type processOptions struct {
	input      string
	output     string
	stats      string
	grayscale  bool
	blur       int
	brightness int
	contrast   float64
	edges      bool
	cannyLow   int
	cannyHigh  int
	morphology string
	kernelSize int
}

func newProcessCommand(global *globalOptions) *cobra.Command {
	opts := &processOptions{}
	defaults := models.DefaultParameters()

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process an image file and write the result as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, global, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "PNG or JPEG image to process")
	flags.StringVarP(&opts.output, "output", "o", "", "destination PNG file")
	flags.StringVar(&opts.stats, "stats", "", "optional destination CSV file for the statistics")
	flags.BoolVar(&opts.grayscale, "grayscale", defaults.Grayscale, "convert to grayscale")
	flags.IntVar(&opts.blur, "blur", defaults.BlurRadius, "Gaussian blur radius (0-10)")
	flags.IntVar(&opts.brightness, "brightness", defaults.Brightness, "brightness offset (-100 to 100)")
	flags.Float64Var(&opts.contrast, "contrast", defaults.Contrast, "contrast gain (0.1-3.0)")
	flags.BoolVar(&opts.edges, "edges", defaults.EdgeDetection, "replace the image by its Canny edge map")
	flags.IntVar(&opts.cannyLow, "canny-low", defaults.CannyLow, "Canny low threshold")
	flags.IntVar(&opts.cannyHigh, "canny-high", defaults.CannyHigh, "Canny high threshold")
	flags.StringVar(&opts.morphology, "morphology", defaults.Morphology.String(), "None, Erosion, Dilation, Opening or Closing")
	flags.IntVar(&opts.kernelSize, "kernel-size", defaults.KernelSize, "morphology kernel size (odd, 3-15)")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// parameters starts from the configured defaults and applies the flags that were set.
func (o *processOptions) parameters(cmd *cobra.Command, base models.Parameters) models.Parameters {
	flags := cmd.Flags()
	p := base

	if flags.Changed("grayscale") {
		p.Grayscale = o.grayscale
	}
	if flags.Changed("blur") {
		p.BlurRadius = o.blur
	}
	if flags.Changed("brightness") {
		p.Brightness = o.brightness
	}
	if flags.Changed("contrast") {
		p.Contrast = o.contrast
	}
	if flags.Changed("edges") {
		p.EdgeDetection = o.edges
	}
	if flags.Changed("canny-low") {
		p.CannyLow = o.cannyLow
	}
	if flags.Changed("canny-high") {
		p.CannyHigh = o.cannyHigh
	}
	if flags.Changed("morphology") {
		p.Morphology = models.ParseMorphologyOp(o.morphology)
	}
	if flags.Changed("kernel-size") {
		p.KernelSize = o.kernelSize
	}

	return p
}

func runProcess(cmd *cobra.Command, global *globalOptions, opts *processOptions) error {
	cfg, log, err := setup(global)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session := models.NewSession()
	defer session.Shutdown()

	imageService := services.NewImageService(session, log)
	processingService := services.NewProcessingService(session, log)

	in, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	_, err = imageService.LoadFromReader(ctx, in, filepath.Base(opts.input))
	in.Close()
	if err != nil {
		return err
	}

	result, err := processingService.Process(ctx, opts.parameters(cmd, cfg.Defaults))
	if err != nil {
		return err
	}
	defer result.Close()

	if err := writeFile(opts.output, func(f *os.File) error {
		return imageService.ExportPNG(f, result)
	}); err != nil {
		return err
	}

	if opts.stats != "" {
		if err := writeFile(opts.stats, func(f *os.File) error {
			return imageService.ExportStatistics(f, result)
		}); err != nil {
			return err
		}
	}

	log.Info("Process", "image processed", map[string]interface{}{
		"input":           opts.input,
		"output":          opts.output,
		"original_mean":   result.OriginalStats.MeanBrightness,
		"processed_mean":  result.ProcessedStats.MeanBrightness,
		"processing_time": result.ProcessTime.String(),
	})
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
