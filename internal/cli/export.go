package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SpritePack/internal/project"
)

func newExportCmd() *cobra.Command {
	var formatsStr string
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "export [project]",
		Short: "Write the outputs of a saved project without repacking",
		Long: `Export loads a project saved with "pack --project", checks the stored
layout against its sprites and writes it in the requested formats.
Output paths default to the project path without its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			if opts.output == "" {
				opts.output = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			}
			applyConfigDefaults(&opts, s.config, cmd.Flags().Changed("page-size"))

			formats, err := parseFormats(formatsStr, s.config.DefaultFormats)
			if err != nil {
				return err
			}
			opts.formats = formats

			return runExport(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path, extension added per format (default: project path)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json, xlsx, pdf, labels, dxf (comma-separated)")
	cmd.Flags().StringVar(&opts.pageSize, "page-size", "", "PDF page size: A3, A4, A5, Letter, Legal")
	cmd.Flags().BoolVar(&opts.dxfLabels, "dxf-labels", false, "write sprite names into the DXF drawing")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the coordinate JSON to stdout")

	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, path string, opts packOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	p, err := project.LoadProject(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if p.Result == nil || p.Result.Len() == 0 {
		return fmt.Errorf("%s: project has no packed sprites", path)
	}
	logger.Debug("project loaded", "name", p.Name, "id", p.ID, "sprites", p.Result.Len())

	if err := writeOutputs(ctx, cmd.OutOrStdout(), p, opts); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Exported %d sprites", p.Result.Len()), "project", p.Name)
	return nil
}
