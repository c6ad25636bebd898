package models

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/softraster/pkg/render"
)

// LoadGLB loads a glTF or GLB file and returns its triangles merged into
// one mesh, plus the first decodable image it carries (nil when none).
func LoadGLB(path string) (*MeshData, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := FromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}

	img := firstImage(doc, filepath.Dir(path))
	render.Logger().Debug("gltf loaded", "path", path,
		"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount(),
		"texture", img != nil)
	return mesh, img, nil
}

// FromDocument converts every triangle primitive of doc into one mesh.
//
// glTF front faces wind counter-clockwise; the renderer keeps faces that
// wind the other way on screen, so each triangle's last two corners are
// swapped. Texture coordinates keep glTF's top-left origin, which is also
// the texture row order. Primitives without TEXCOORD_0 get (0, 0).
func FromDocument(doc *gltf.Document, name string) (*MeshData, error) {
	mesh := &MeshData{Name: name}

	for _, m := range doc.Meshes {
		if err := appendMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	return mesh, nil
}

// appendMesh extracts geometry from a glTF mesh.
func appendMesh(doc *gltf.Document, m *gltf.Mesh, mesh *MeshData) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readTexCoords(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := uint32(mesh.VertexCount())
		for _, p := range positions {
			mesh.Positions = append(mesh.Positions, float64(p[0]), float64(p[1]), float64(p[2]))
		}

		for i := 0; i+2 < len(indices); i += 3 {
			tri := [3]uint32{indices[i], indices[i+2], indices[i+1]} // swapped
			for _, idx := range tri {
				if int(idx) >= len(positions) {
					return fmt.Errorf("index %d out of range for %d vertices", idx, len(positions))
				}
				mesh.Indices = append(mesh.Indices, base+idx)

				var u, v float64
				if int(idx) < len(uvs) {
					u, v = float64(uvs[idx][0]), float64(uvs[idx][1])
				}
				mesh.TexCoords = append(mesh.TexCoords, u, v)
			}
		}
	}

	return nil
}

// accessor returns doc.Accessors[idx] after checking that it and the
// buffer views it reads from lie inside the document.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(doc.Accessors))
	}
	acr := doc.Accessors[idx]
	if acr == nil {
		return nil, fmt.Errorf("accessor %d is null", idx)
	}
	if acr.Count < 0 {
		return nil, fmt.Errorf("accessor %d has negative count %d", idx, acr.Count)
	}
	if acr.BufferView != nil {
		if err := checkBufferView(doc, *acr.BufferView, acr.ByteOffset); err != nil {
			return nil, fmt.Errorf("accessor %d: %w", idx, err)
		}
		if acr.Count > 0 {
			bv := doc.BufferViews[*acr.BufferView]
			elem := gltf.SizeOfElement(acr.ComponentType, acr.Type)
			stride := bv.ByteStride
			if stride == 0 {
				stride = elem
			}
			if end := acr.ByteOffset + (acr.Count-1)*stride + elem; end > bv.ByteLength {
				return nil, fmt.Errorf("accessor %d reads %d bytes past buffer view of length %d",
					idx, end-bv.ByteLength, bv.ByteLength)
			}
		}
	}
	if sp := acr.Sparse; sp != nil {
		if err := checkBufferView(doc, sp.Indices.BufferView, sp.Indices.ByteOffset); err != nil {
			return nil, fmt.Errorf("accessor %d sparse indices: %w", idx, err)
		}
		if err := checkBufferView(doc, sp.Values.BufferView, sp.Values.ByteOffset); err != nil {
			return nil, fmt.Errorf("accessor %d sparse values: %w", idx, err)
		}
	}
	return acr, nil
}

// checkBufferView verifies that view idx exists, fits its buffer and can be
// read from offset.
func checkBufferView(doc *gltf.Document, idx, offset int) error {
	if idx < 0 || idx >= len(doc.BufferViews) || doc.BufferViews[idx] == nil {
		return fmt.Errorf("buffer view %d out of range", idx)
	}
	bv := doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) || doc.Buffers[bv.Buffer] == nil {
		return fmt.Errorf("buffer %d out of range", bv.Buffer)
	}
	if end := bv.ByteOffset + bv.ByteLength; bv.ByteOffset < 0 || end > len(doc.Buffers[bv.Buffer].Data) {
		return fmt.Errorf("buffer view %d spans [%d, %d) of a %d-byte buffer",
			idx, bv.ByteOffset, end, len(doc.Buffers[bv.Buffer].Data))
	}
	if offset < 0 || offset > bv.ByteLength {
		return fmt.Errorf("byte offset %d past buffer view %d of length %d", offset, idx, bv.ByteLength)
	}
	return nil
}

// readPositions reads VEC3 positions, converting any component type.
func readPositions(doc *gltf.Document, idx int) ([][3]float32, error) {
	acr, err := accessor(doc, idx)
	if err != nil {
		return nil, err
	}
	return modeler.ReadPosition(doc, acr, nil)
}

// readTexCoords reads VEC2 texture coordinates, including normalized
// integer encodings.
func readTexCoords(doc *gltf.Document, idx int) ([][2]float32, error) {
	acr, err := accessor(doc, idx)
	if err != nil {
		return nil, err
	}
	return modeler.ReadTextureCoord(doc, acr, nil)
}

// readIndices reads unsigned SCALAR index data.
func readIndices(doc *gltf.Document, idx int) ([]uint32, error) {
	acr, err := accessor(doc, idx)
	if err != nil {
		return nil, err
	}
	return modeler.ReadIndices(doc, acr, nil)
}

// firstImage decodes the first image in doc, embedded or external.
func firstImage(doc *gltf.Document, dir string) image.Image {
	for _, img := range doc.Images {
		var data []byte
		switch {
		case img.BufferView != nil && *img.BufferView < len(doc.BufferViews):
			bv := doc.BufferViews[*img.BufferView]
			if bv.Buffer < len(doc.Buffers) {
				buf := doc.Buffers[bv.Buffer].Data
				if end := bv.ByteOffset + bv.ByteLength; end <= len(buf) {
					data = buf[bv.ByteOffset:end]
				}
			}
		case img.IsEmbeddedResource():
			b, err := img.MarshalData()
			if err != nil {
				render.Logger().Debug("gltf image data uri invalid", "err", err)
				continue
			}
			data = b
		case img.URI != "":
			// External texture file, relative to the document
			b, err := os.ReadFile(filepath.Join(dir, img.URI))
			if err != nil {
				render.Logger().Debug("gltf image unreadable", "uri", img.URI, "err", err)
				continue
			}
			data = b
		}
		if len(data) == 0 {
			continue
		}

		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			render.Logger().Debug("gltf image undecodable", "err", err)
			continue
		}
		return decoded
	}
	return nil
}
