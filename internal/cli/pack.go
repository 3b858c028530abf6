package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SpritePack/internal/engine"
	"github.com/piwi3910/SpritePack/internal/export"
	"github.com/piwi3910/SpritePack/internal/importer"
	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/piwi3910/SpritePack/internal/project"
)

// errImport is returned when a manifest has row errors; details are logged.
var errImport = errors.New("manifest has errors")

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	output      string   // output base path, extension added per format
	formats     []string // json, xlsx, pdf, labels, dxf
	projectPath string   // optional project file to save
	name        string   // project name
	pageSize    string   // PDF page size
	dxfLabels   bool     // write sprite names into the DXF
	stdout      bool     // print the coordinate JSON to stdout
}

func newPackCmd() *cobra.Command {
	var formatsStr string
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [manifest]",
		Short: "Pack the sprites listed in a manifest onto one sheet",
		Long: `Pack reads a manifest (.csv, .tsv, .txt, .xlsx, .toml or .dxf) listing
sprite names and pixel sizes, lays them out on one canvas and writes
the coordinates in the requested formats.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFromContext(cmd.Context())
			applyConfigDefaults(&opts, s.config, cmd.Flags().Changed("page-size"))

			formats, err := parseFormats(formatsStr, s.config.DefaultFormats)
			if err != nil {
				return err
			}
			opts.formats = formats

			if err := runPack(cmd.Context(), cmd, args[0], opts); err != nil {
				return err
			}
			rememberManifest(cmd.Context(), s, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path, extension added per format (default from config)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json, xlsx, pdf, labels, dxf (comma-separated)")
	cmd.Flags().StringVar(&opts.projectPath, "project", "", "also save the packed project to this file")
	cmd.Flags().StringVar(&opts.name, "name", "", "project name (default: manifest file name)")
	cmd.Flags().StringVar(&opts.pageSize, "page-size", "", "PDF page size: A3, A4, A5, Letter, Legal")
	cmd.Flags().BoolVar(&opts.dxfLabels, "dxf-labels", false, "write sprite names into the DXF drawing")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the coordinate JSON to stdout")

	return cmd
}

func applyConfigDefaults(opts *packOpts, cfg model.AppConfig, pageSizeSet bool) {
	if opts.output == "" {
		opts.output = cfg.OutputBase
	}
	if !pageSizeSet {
		opts.pageSize = cfg.PageSize
	}
}

// parseFormats splits the --format flag, falling back to defaults when empty.
func parseFormats(s string, defaults []string) ([]string, error) {
	if s == "" {
		return defaults, nil
	}
	var formats []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if !model.IsKnownFormat(f) {
			return nil, fmt.Errorf("invalid format: %s (must be one of %s)", f, strings.Join(model.AllFormats, ", "))
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}

// outputPath returns the file written for format.
func outputPath(base, format string) string {
	switch format {
	case model.FormatLabels:
		return base + "-labels.pdf"
	default:
		return base + "." + format
	}
}

func runPack(ctx context.Context, cmd *cobra.Command, manifest string, opts packOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	imported := importer.Import(manifest)
	for _, w := range imported.Warnings {
		logger.Warn(w, "manifest", manifest)
	}
	if !imported.OK() {
		for _, e := range imported.Errors {
			logger.Error(e, "manifest", manifest)
		}
		return fmt.Errorf("%s: %w (%d)", manifest, errImport, len(imported.Errors))
	}

	rects := imported.Catalog.Rects()
	if len(rects) == 0 {
		return fmt.Errorf("%s: no sprites found", manifest)
	}
	logger.Debug("manifest imported", "sprites", len(rects))

	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := engine.New[model.Asset](logger).Pack(rects)
	if err != nil {
		return fmt.Errorf("pack %s: %w", manifest, err)
	}
	if err := engine.Verify(rects, result); err != nil {
		return fmt.Errorf("pack %s: layout check failed: %w", manifest, err)
	}

	p := model.NewProject(opts.name)
	if opts.name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(manifest), filepath.Ext(manifest))
	}
	p.Manifest = manifest
	p.Sprites = rects
	p.Result = &result

	if err := writeOutputs(ctx, cmd.OutOrStdout(), p, opts); err != nil {
		return err
	}

	if opts.projectPath != "" {
		if err := project.SaveProject(opts.projectPath, p); err != nil {
			return err
		}
		logger.Info("saved project", "path", opts.projectPath, "id", p.ID)
	}

	w, h := result.Extent()
	prog.done(fmt.Sprintf("Packed %d sprites", result.Len()),
		"width", w, "height", h, "coverage", fmt.Sprintf("%.1f%%", result.Coverage()))
	return nil
}

// writeOutputs writes p's result in every requested format, and to out as
// coordinate JSON when opts.stdout is set.
func writeOutputs(ctx context.Context, out io.Writer, p model.Project, opts packOpts) error {
	logger := loggerFromContext(ctx)

	if opts.stdout {
		if err := export.WriteCoordinatesJSON(out, *p.Result); err != nil {
			return err
		}
	}

	for _, format := range opts.formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := outputPath(opts.output, format)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := writeFormat(format, path, p, opts); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
		logger.Info("wrote output", "format", format, "path", path)
	}
	return nil
}

func writeFormat(format, path string, p model.Project, opts packOpts) error {
	result := *p.Result
	switch format {
	case model.FormatJSON:
		return export.ExportCoordinatesJSON(path, result)
	case model.FormatXLSX:
		return export.ExportXLSX(path, result)
	case model.FormatPDF:
		return export.ExportPDF(path, p, opts.pageSize)
	case model.FormatLabels:
		return export.ExportLabels(path, result)
	case model.FormatDXF:
		return export.ExportDXF(path, result, export.DXFOptions{Labels: opts.dxfLabels})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// rememberManifest records manifest in the recent list. Only an existing
// config file is updated; pack never creates one.
func rememberManifest(ctx context.Context, s settings, manifest string) {
	if _, err := os.Stat(s.path); err != nil {
		return
	}
	abs, err := filepath.Abs(manifest)
	if err != nil {
		abs = manifest
	}
	cfg := s.config
	cfg.AddRecentManifest(abs)
	if err := project.SaveAppConfig(s.path, cfg); err != nil {
		loggerFromContext(ctx).Warn("could not update recent manifests", "err", err)
	}
}
