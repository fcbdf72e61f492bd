package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/offflip/pkg/geometry"
	"github.com/philipparndt/offflip/pkg/off"
)

// volumeEpsilon is the relative volume below which orientation is undecidable
const volumeEpsilon = 1e-12

// Orientation describes which way the faces of a mesh point as a whole
type Orientation string

const (
	Outward    Orientation = "outward"
	Inward     Orientation = "inward"
	Degenerate Orientation = "degenerate"
)

// MeasurementResult contains various measurements of an OFF mesh
type MeasurementResult struct {
	VertexCount  int
	FaceCount    int
	EdgeCount    int // as declared in the header
	BoundingBox  geometry.BoundingBox
	Dimensions   geometry.Vector3
	SurfaceArea  float64
	SignedVolume float64
	Orientation  Orientation
}

// AnalyzeMesh resolves every face of the mesh to vertex positions and
// measures it. Unlike conversion, this requires numeric vertex lines.
func AnalyzeMesh(mesh *off.Mesh) (*MeasurementResult, error) {
	positions := make([]geometry.Vector3, len(mesh.Vertices))
	bbox := geometry.NewBoundingBox()
	for i, line := range mesh.Vertices {
		v, err := geometry.ParseVector3(line)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		positions[i] = v
		bbox.Extend(v)
	}

	result := &MeasurementResult{
		VertexCount: mesh.VertexCount(),
		FaceCount:   mesh.FaceCount(),
		EdgeCount:   mesh.Header.EdgeCount,
		BoundingBox: bbox,
		Dimensions:  bbox.Size(),
	}

	for i, face := range mesh.Faces {
		var corners [3]geometry.Vector3
		for j, index := range face.Indices() {
			if index < 0 || index >= len(positions) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i, index, len(positions))
			}
			corners[j] = positions[index]
		}

		triangle := geometry.NewTriangle(corners[0], corners[1], corners[2])
		result.SurfaceArea += triangle.Area()
		result.SignedVolume += triangle.SignedVolume()
	}

	result.Orientation = classify(result.SignedVolume, bbox)
	return result, nil
}

// classify compares the signed volume against the bounding box volume so the
// threshold scales with the model. A flat bounding box cannot enclose anything.
func classify(volume float64, bbox geometry.BoundingBox) Orientation {
	size := bbox.Size()
	scale := size.X * size.Y * size.Z
	if scale == 0 || math.Abs(volume) <= volumeEpsilon*scale {
		return Degenerate
	}
	if volume > 0 {
		return Outward
	}
	return Inward
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
