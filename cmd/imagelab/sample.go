package main

import (
	"fmt"
	"os"
	"strings"

	"imagelab/internal/export"
	"imagelab/internal/samples"

	"github.com/spf13/cobra"
)

func newSampleCommand(global *globalOptions) *cobra.Command {
	var kind, output string

	names := make([]string, 0, len(samples.Kinds()))
	for _, k := range samples.Kinds() {
		names = append(names, string(k))
	}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a generated sample image as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(global)
			if err != nil {
				return err
			}

			k, err := samples.ParseKind(kind)
			if err != nil {
				return err
			}

			mat, err := samples.Generate(k)
			if err != nil {
				return err
			}
			defer mat.Close()

			if err := writeFile(output, func(f *os.File) error {
				return export.EncodePNG(f, mat)
			}); err != nil {
				return err
			}

			log.Info("Sample", "sample written", map[string]interface{}{
				"kind":   string(k),
				"output": output,
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(samples.Portrait),
		fmt.Sprintf("sample kind (%s)", strings.Join(names, ", ")))
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination PNG file")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
