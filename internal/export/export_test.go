package export

import (
	"fmt"

	"github.com/piwi3910/SpritePack/internal/model"
)

// buildTestResult lays out three sprites the way the packer would.
func buildTestResult() model.Result[model.Asset] {
	r := model.NewResult[model.Asset]()
	place(&r, "wide", 0, 0, 50, 20, "art/wide.png")
	place(&r, "tall", 1, 21, 20, 50, "art/tall.png")
	place(&r, "small", 51, 1, 10, 10, "")
	return r
}

func place(r *model.Result[model.Asset], name string, x, y, w, h float64, path string) {
	r.Placements[name] = model.PlacedRect[model.Asset]{
		NamedRect: model.NewRect(name, w, h, model.Asset{Path: path}),
		StartX:    x,
		StartY:    y,
	}
	r.Order = append(r.Order, name)
}

// buildGridResult places n equal sprites on a grid.
func buildGridResult(n int) model.Result[model.Asset] {
	r := model.NewResult[model.Asset]()
	for i := 0; i < n; i++ {
		place(&r, fmt.Sprintf("sprite %02d", i), float64((i%5)*33), float64((i/5)*25), 32, 24, "")
	}
	return r
}

func buildTestProject() model.Project {
	p := model.NewProject("demo")
	result := buildTestResult()
	p.Result = &result
	return p
}
