package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/piwi3910/SpritePack/internal/engine"
	"github.com/piwi3910/SpritePack/internal/export"
	"github.com/piwi3910/SpritePack/internal/model"
)

func newInspectCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "inspect [coordinates.json]",
		Short: "Check a coordinate file and print its canvas size",
		Long: `Inspect reads a coordinate file written by pack, checks that no two
sprites overlap and that every position and size is valid, and prints
the sprite count, canvas size and coverage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], list)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "also print every sprite's position and size")

	return cmd
}

func runInspect(ctx context.Context, out io.Writer, path string, list bool) error {
	logger := loggerFromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	coords, err := export.ReadCoordinatesJSON(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	result := export.ResultFromCoordinates(coords)

	placed := result.Sorted()
	rects := make([]model.NamedRect[model.Asset], 0, len(placed))
	for _, p := range placed {
		rects = append(rects, p.NamedRect)
	}
	if err := engine.Verify(rects, result); err != nil {
		return fmt.Errorf("%s: invalid layout: %w", path, err)
	}
	logger.Debug("layout checked", "path", path, "sprites", result.Len())

	w, h := result.Extent()
	fmt.Fprintf(out, "sprites:  %d\n", result.Len())
	fmt.Fprintf(out, "canvas:   %g x %g px\n", w, h)
	fmt.Fprintf(out, "coverage: %.1f%%\n", result.Coverage())

	if list && len(placed) > 0 {
		fmt.Fprintln(out, placementTable(placed))
	}
	return nil
}

// placementTable renders placements one row each, in the order given.
func placementTable(placed []model.PlacedRect[model.Asset]) string {
	rows := make([][]string, 0, len(placed))
	for _, p := range placed {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%g", p.StartX),
			fmt.Sprintf("%g", p.StartY),
			fmt.Sprintf("%g", p.Width),
			fmt.Sprintf("%g", p.Height),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Name", "X", "Y", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		String()
}
