package export

import (
	"fmt"

	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerCanvas  = "CANVAS"
	LayerSprites = "SPRITES"
	LayerLabels  = "LABELS"
)

// DXFOptions controls the DXF drawing.
type DXFOptions struct {
	// Labels writes each sprite name as TEXT on LayerLabels.
	Labels bool
	// TextHeight is the label height in px. Zero picks 8.
	TextHeight float64
}

// ExportDXF writes the sheet as a DXF drawing: the canvas outline and one
// closed outline per sprite, each made of four LINE entities. DXF is y-up,
// so the sheet is flipped to keep the origin at the top-left corner.
func ExportDXF[T any](path string, result model.Result[T], opts DXFOptions) error {
	if result.Len() == 0 {
		return fmt.Errorf("no sprites to export")
	}
	textHeight := opts.TextHeight
	if textHeight <= 0 {
		textHeight = 8
	}

	w, h := result.Extent()
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerCanvas, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerCanvas, err)
	}
	if err := drawBox(d, 0, 0, w, h, h); err != nil {
		return err
	}

	if _, err := d.AddLayer(LayerSprites, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerSprites, err)
	}
	placed := result.Placed()
	for _, p := range placed {
		if err := drawBox(d, p.StartX, p.StartY, p.Width, p.Height, h); err != nil {
			return fmt.Errorf("failed to draw %q: %w", p.Name, err)
		}
	}

	if opts.Labels {
		if _, err := d.AddLayer(LayerLabels, color.Yellow, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", LayerLabels, err)
		}
		for _, p := range placed {
			x := p.StartX + 1
			y := h - p.StartY - textHeight - 1
			if _, err := d.Text(p.Name, x, y, 0, textHeight); err != nil {
				return fmt.Errorf("failed to label %q: %w", p.Name, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// drawBox draws a rectangle given in top-left sheet coordinates on the current layer.
func drawBox(d *drawing.Drawing, x, y, w, h, sheetH float64) error {
	top := sheetH - y
	bottom := sheetH - y - h
	corners := [][2]float64{{x, top}, {x + w, top}, {x + w, bottom}, {x, bottom}}
	for i, c := range corners {
		n := corners[(i+1)%len(corners)]
		if _, err := d.Line(c[0], c[1], 0, n[0], n[1], 0); err != nil {
			return err
		}
	}
	return nil
}
