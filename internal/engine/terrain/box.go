package terrain

import (
	gomath "math"

	"github.com/Faultbox/heightview/pkg/math"
)

// BoxVertexCount is the number of vertices in BuildBox's mesh.
const BoxVertexCount = 36

// boxFace is the +Z face of the [-1,1] cube as two triangles.
var boxFace = [2][3]math.Vec3{
	{{X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}},
	{{X: 1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}},
}

// BuildBox returns the closed [-1,1] cube shown before any heightmap is
// loaded: the +Z face rotated about Y for the four sides, and about X for
// the bottom and top. 12 triangles.
func BuildBox() *Mesh {
	quarter := float32(gomath.Pi / 2)

	faces := []math.Mat4{math.Identity()}
	for i := 1; i <= 3; i++ {
		faces = append(faces, math.RotateY(float32(i)*quarter))
	}
	faces = append(faces, math.RotateX(quarter), math.RotateX(-quarter))

	positions := make([]float32, 0, len(faces)*len(boxFace)*9)
	for _, m := range faces {
		for _, tri := range boxFace {
			for _, v := range tri {
				p := m.TransformPoint(v)
				positions = append(positions, p.X, p.Y, p.Z)
			}
		}
	}

	return &Mesh{Positions: positions}
}
