// Package export writes meshes as glTF 2.0 assets.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/heightview/internal/engine/terrain"
)

// ErrNoPositions is returned when an asset has no triangle positions to read.
var ErrNoPositions = errors.New("gltf: no triangle positions")

// Document builds a single-mesh glTF document. The mesh is written as a
// non-indexed triangle list, matching its in-memory layout.
func Document(mesh *terrain.Mesh, name string) (*gltf.Document, error) {
	if mesh == nil || mesh.VertexCount() == 0 {
		return nil, fmt.Errorf("export %q: %w", name, terrain.ErrEmptyHeightmap)
	}

	positions := make([][3]float32, mesh.VertexCount())
	for i := range positions {
		copy(positions[i][:], mesh.Positions[i*3:i*3+3])
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "heightview"

	pos := modeler.WritePosition(doc, positions)
	doc.Meshes = []*gltf.Mesh{{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
			Mode:       gltf.PrimitiveTriangles,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return doc, nil
}

// Write encodes mesh to w as a GLB when binary is set, otherwise as glTF
// JSON with the buffer embedded as a data URI.
func Write(w io.Writer, mesh *terrain.Mesh, name string, binary bool) error {
	doc, err := Document(mesh, name)
	if err != nil {
		return err
	}
	if !binary {
		embedBuffers(doc)
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding gltf: %w", err)
	}
	return nil
}

// WriteFile saves mesh to path. A .glb extension selects the binary
// container; anything else is written as glTF JSON.
func WriteFile(path string, mesh *terrain.Mesh, name string) error {
	doc, err := Document(mesh, name)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		embedBuffers(doc)
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// ReadFile loads the positions of the first triangle primitive in a glTF
// or GLB file.
func ReadFile(path string) (*terrain.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles || prim.Indices != nil {
				continue
			}
			idx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[idx], nil)
			if err != nil {
				return nil, fmt.Errorf("reading positions of %q: %w", m.Name, err)
			}
			out := &terrain.Mesh{Positions: make([]float32, 0, len(positions)*3)}
			for _, p := range positions {
				out.Positions = append(out.Positions, p[0], p[1], p[2])
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNoPositions)
}

func embedBuffers(doc *gltf.Document) {
	for _, b := range doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
}
