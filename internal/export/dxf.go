package export

import (
	"fmt"

	"github.com/rooftally/rooftally/internal/model"
	"github.com/yofu/dxf"
)

// ExportFootprintDXF writes the building footprint as a DXF drawing with
// one LINE entity per edge, in planar feet normalized to the origin. The
// drawing opens in any CAD viewer for overlaying against site plans.
func ExportFootprintDXF(path string, ring model.Ring) error {
	pts := ring.PlanarFeet()
	if len(pts) < 3 {
		return fmt.Errorf("footprint has too few vertices to draw")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("FOOTPRINT", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to create layer: %w", err)
	}

	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		if _, err := d.Line(a.X, a.Y, 0, b.X, b.Y, 0); err != nil {
			return fmt.Errorf("failed to draw edge %d: %w", i, err)
		}
	}

	return d.SaveAs(path)
}
