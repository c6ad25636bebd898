package models

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// quadDocument builds a two-triangle quad with texture coordinates.
func quadDocument(t *testing.T) *gltf.Document {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{
		{0, 1}, {1, 1}, {1, 0}, {0, 0},
	})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})
	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION:   pos,
				gltf.TEXCOORD_0: uv,
			},
		}},
	}}
	return doc
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, _, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestFromDocument(t *testing.T) {
	mesh, err := FromDocument(quadDocument(t), "quad")
	if err != nil {
		t.Fatal(err)
	}

	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}

	// Winding is reversed: (0,1,2) becomes (0,2,1).
	want := []uint32{0, 2, 1, 0, 3, 2}
	for i, idx := range want {
		if mesh.Indices[i] != idx {
			t.Fatalf("Indices = %v, want %v", mesh.Indices, want)
		}
	}

	// One pair per corner, following the swapped order.
	if len(mesh.TexCoords) != 12 {
		t.Fatalf("len(TexCoords) = %d, want 12", len(mesh.TexCoords))
	}
	if mesh.TexCoords[2] != 1 || mesh.TexCoords[3] != 0 {
		t.Errorf("corner 1 uv = (%v, %v), want vertex 2's (1, 0)", mesh.TexCoords[2], mesh.TexCoords[3])
	}
}

func TestFromDocumentWithoutIndices(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
		}},
	}}

	mesh, err := FromDocument(doc, "tri")
	if err != nil {
		t.Fatal(err)
	}
	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	if mesh.Indices[1] != 2 || mesh.Indices[2] != 1 {
		t.Errorf("Indices = %v, want swapped winding", mesh.Indices)
	}
	for _, v := range mesh.TexCoords {
		if v != 0 {
			t.Fatalf("missing TEXCOORD_0 should produce zero uvs, got %v", mesh.TexCoords)
		}
	}
}

func TestLoadGLBRoundTrip(t *testing.T) {
	doc := quadDocument(t)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.NRGBA{200, 100, 50, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if _, err := modeler.WriteImage(doc, "tex", "image/png", &buf); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}

	mesh, tex, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	if mesh.Name != "quad.glb" {
		t.Errorf("Name = %q", mesh.Name)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}
	if tex == nil {
		t.Fatal("embedded image not returned")
	}
	if b := tex.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("image bounds = %v", b)
	}
}

// malformedDocument returns a document with one 4-byte buffer, one view
// over it and the given accessors and primitive.
func malformedDocument(accessors []*gltf.Accessor, prim *gltf.Primitive) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Buffers = []*gltf.Buffer{{ByteLength: 4, Data: make([]byte, 4)}}
	doc.BufferViews = []*gltf.BufferView{{Buffer: 0, ByteLength: 4}}
	doc.Accessors = accessors
	doc.Meshes = []*gltf.Mesh{{Name: "bad", Primitives: []*gltf.Primitive{prim}}}
	return doc
}

func TestFromDocumentMalformed(t *testing.T) {
	vec3 := func(view, offset, count int) *gltf.Accessor {
		return &gltf.Accessor{
			BufferView:    gltf.Index(view),
			ByteOffset:    offset,
			Count:         count,
			Type:          gltf.AccessorVec3,
			ComponentType: gltf.ComponentFloat,
		}
	}

	tests := []struct {
		name      string
		accessors []*gltf.Accessor
		prim      *gltf.Primitive
	}{
		{
			name: "position accessor missing",
			prim: &gltf.Primitive{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 7}},
		},
		{
			name:      "empty accessor offset past buffer",
			accessors: []*gltf.Accessor{vec3(0, 64, 0)},
			prim:      &gltf.Primitive{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 0}},
		},
		{
			name:      "buffer view missing",
			accessors: []*gltf.Accessor{vec3(3, 0, 1)},
			prim:      &gltf.Primitive{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 0}},
		},
		{
			name:      "accessor longer than buffer",
			accessors: []*gltf.Accessor{vec3(0, 0, 10)},
			prim:      &gltf.Primitive{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 0}},
		},
		{
			name:      "texcoord accessor missing",
			accessors: []*gltf.Accessor{vec3(0, 0, 0)},
			prim: &gltf.Primitive{Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION:   0,
				gltf.TEXCOORD_0: 5,
			}},
		},
		{
			name:      "index accessor missing",
			accessors: []*gltf.Accessor{vec3(0, 0, 0)},
			prim: &gltf.Primitive{
				Indices:    gltf.Index(9),
				Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := malformedDocument(tt.accessors, tt.prim)
			if _, err := FromDocument(doc, "bad"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFromDocumentNormalizedTexCoords(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]uint8{{255, 0}, {0, 255}, {255, 255}})
	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION:   pos,
				gltf.TEXCOORD_0: uv,
			},
		}},
	}}

	mesh, err := FromDocument(doc, "tri")
	if err != nil {
		t.Fatal(err)
	}
	// Corners are (0, 2, 1) after the winding swap.
	want := []float64{1, 0, 1, 1, 0, 1}
	for i, v := range want {
		if mesh.TexCoords[i] != v {
			t.Fatalf("TexCoords = %v, want %v", mesh.TexCoords, want)
		}
	}
}

func TestFirstImageDataURI(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	doc := gltf.NewDocument()
	doc.Images = []*gltf.Image{{
		MimeType: "image/png",
		URI:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}}

	got := firstImage(doc, t.TempDir())
	if got == nil {
		t.Fatal("data URI image not decoded")
	}
	if b := got.Bounds(); b.Dx() != 3 || b.Dy() != 1 {
		t.Errorf("image bounds = %v", b)
	}
}
