package terrain

// BuildMesh triangulates a heightmap. Every grid cell (i, j) becomes a quad of
// two triangles, so the result always holds 2*W*H triangles. Corner samples
// past the last row or column are clamped to the edge.
//
// Winding is counter-clockwise seen from +Y: (TL, BL, TR) then (TR, BL, BR).
func BuildMesh(hm *Heightmap, mapping Mapping) (*Mesh, error) {
	if !hm.valid() {
		return nil, ErrEmptyHeightmap
	}

	positions := make([]float32, 0, 18*hm.Width*hm.Height)

	for i := range hm.Height {
		for j := range hm.Width {
			tl := mapping.corner(hm, j, i)
			tr := mapping.corner(hm, j+1, i)
			bl := mapping.corner(hm, j, i+1)
			br := mapping.corner(hm, j+1, i+1)

			positions = append(positions, tl[0], tl[1], tl[2], bl[0], bl[1], bl[2], tr[0], tr[1], tr[2])
			positions = append(positions, tr[0], tr[1], tr[2], bl[0], bl[1], bl[2], br[0], br[1], br[2])
		}
	}

	return &Mesh{Positions: positions}, nil
}

// corner returns the model-space position of grid corner (x, z). The
// coordinate itself may lie one past the grid; the height lookup is clamped.
func (m Mapping) corner(hm *Heightmap, x, z int) [3]float32 {
	sample := hm.At(x, z)
	w := float32(hm.Width)
	h := float32(hm.Height)

	if m == MappingLegacy {
		return [3]float32{
			float32(x) / (w + 1) * 2,
			sample,
			float32(z) / (h + 1) * 2,
		}
	}
	return [3]float32{
		float32(x)/w*2 - 1,
		sample*2 - 1,
		float32(z)/h*2 - 1,
	}
}
