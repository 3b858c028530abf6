// Package export writes packing results to the formats consumers of a sprite
// sheet use: the JSON coordinate contract, spreadsheets, PDF reports and
// labels, and DXF drawings.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/SpritePack/internal/model"
)

// spriteColor represents an RGB color for a placed sprite.
type spriteColor struct {
	R, G, B int
}

var spriteColors = []spriteColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants in mm.
const (
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	tableRowH    = 6.0
	checkerCells = 50.0 // px per checkerboard square
	maxCheckers  = 2500 // squares per diagram
)

// pageSizes are the accepted PDF page sizes.
var pageSizes = map[string]bool{"A3": true, "A4": true, "A5": true, "Letter": true, "Legal": true}

// layout carries the page geometry of one document.
type layout struct {
	pageW, pageH float64
}

func (l layout) contentWidth() float64 {
	return l.pageW - marginLeft - marginRight
}

// ExportPDF generates a PDF report for a packed project: a scaled diagram of
// the sheet on the first page, followed by a coordinate table.
func ExportPDF(path string, project model.Project, pageSize string) error {
	if project.Result == nil || project.Result.Len() == 0 {
		return fmt.Errorf("no sprites to export")
	}
	if pageSize == "" {
		pageSize = "A4"
	}
	if !pageSizes[pageSize] {
		return fmt.Errorf("unsupported page size %q", pageSize)
	}

	pdf := fpdf.New("L", "mm", pageSize, "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(fmt.Sprintf("Sprite sheet %s", project.Name), true)

	w, h := pdf.GetPageSize()
	l := layout{pageW: w, pageH: h}

	pdf.AddPage()
	renderSheetPage(pdf, l, project)

	pdf.AddPage()
	renderTablePages(pdf, l, *project.Result)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws the sprite sheet diagram on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, l layout, project model.Project) {
	result := *project.Result
	sheetW, sheetH := result.Extent()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sprite sheet: %s (%.0f x %.0f px)", project.Name, sheetW, sheetH)
	pdf.CellFormat(l.contentWidth(), headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Project %s | Sprites: %d | Used area: %.0f px | Coverage: %.1f%%",
		project.ID, result.Len(), result.UsedArea(), result.Coverage())
	pdf.CellFormat(l.contentWidth(), 5, stats, "", 0, "L", false, 0, "")

	drawWidth := l.contentWidth()
	drawHeight := l.pageH - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/sheetW, drawHeight/sheetH)
	canvasW := sheetW * scale
	canvasH := sheetH * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	drawCheckerboard(pdf, sheetW, sheetH, scale, offsetX, offsetY)

	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "D")

	for i, p := range result.Placed() {
		col := spriteColors[i%len(spriteColors)]
		pw := p.Width * scale
		ph := p.Height * scale
		px := offsetX + p.StartX*scale
		py := offsetY + p.StartY*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			dims := fmt.Sprintf("%.0fx%.0f", p.Width, p.Height)
			nameW := pdf.GetStringWidth(p.Name)
			dimsW := pdf.GetStringWidth(dims)

			if nameW < pw-2 {
				pdf.SetXY(px+(pw-nameW)/2, py+ph/2-4)
				pdf.CellFormat(nameW, 4, p.Name, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sheetW, sheetH, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, l, result, offsetY+canvasH+5)
}

// drawCheckerboard fills the canvas with the transparency pattern sprite
// editors use, in squares of checkerSize px.
func drawCheckerboard(pdf *fpdf.Fpdf, sheetW, sheetH, scale, offsetX, offsetY float64) {
	cell := checkerSize(sheetW, sheetH)
	rows := int(math.Ceil(sheetH / cell))
	cols := int(math.Ceil(sheetW / cell))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if (row+col)%2 == 0 {
				pdf.SetFillColor(0x55, 0x55, 0x55)
			} else {
				pdf.SetFillColor(0x22, 0x22, 0x22)
			}
			x := float64(col) * cell
			y := float64(row) * cell
			w := math.Min(cell, sheetW-x)
			h := math.Min(cell, sheetH-y)
			pdf.Rect(offsetX+x*scale, offsetY+y*scale, w*scale, h*scale, "F")
		}
	}
}

// checkerSize returns the square size in px, doubling checkerCells until the
// sheet needs at most maxCheckers squares.
func checkerSize(sheetW, sheetH float64) float64 {
	cell := checkerCells
	for math.Ceil(sheetW/cell)*math.Ceil(sheetH/cell) > maxCheckers {
		cell *= 2
	}
	return cell
}

// drawDimensionAnnotations adds width and height labels outside the canvas rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheetW, sheetH, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f px", sheetW)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f px", sheetH)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend renders a compact legend of placed sprites below the diagram.
func drawLegend[T any](pdf *fpdf.Fpdf, l layout, result model.Result[T], startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Sprites placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := l.pageW - marginRight

	for i, p := range result.Placed() {
		if startY > l.pageH-marginBottom {
			break
		}
		col := spriteColors[i%len(spriteColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", p.Name, p.Width, p.Height)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderTablePages writes the coordinate table, adding pages as needed.
func renderTablePages[T any](pdf *fpdf.Fpdf, l layout, result model.Result[T]) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(l.contentWidth(), 10, "Sprite Coordinates", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, l.pageW-marginRight, marginTop+12)

	colWidths := []float64{80, 35, 35, 35, 35}
	headers := []string{"Name", "X", "Y", "Width", "Height"}

	drawHeader := func(y float64) float64 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], tableRowH, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		pdf.SetFont("Helvetica", "", 9)
		return y + tableRowH
	}

	y := drawHeader(marginTop + 18)
	for i, p := range result.Sorted() {
		if y+tableRowH > l.pageH-marginBottom {
			pdf.AddPage()
			y = drawHeader(marginTop)
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		rowData := []string{
			p.Name,
			fmt.Sprintf("%g", p.StartX),
			fmt.Sprintf("%g", p.StartY),
			fmt.Sprintf("%g", p.Width),
			fmt.Sprintf("%g", p.Height),
		}
		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], tableRowH, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += tableRowH
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, l.pageH-marginBottom)
	pdf.CellFormat(l.contentWidth(), 4, "Generated by SpritePack - Sprite Sheet Packer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
