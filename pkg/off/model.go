package off

// Tag is the literal marker on the first line of every OFF file
const Tag = "OFF"

// TriangleVertexCount is the only face vertex count this package accepts
const TriangleVertexCount = 3

// Header holds the declared element counts from the second line of an OFF file
type Header struct {
	VertexCount int
	FaceCount   int
	EdgeCount   int
}

// Face is a triangular face: a leading vertex count followed by three vertex indices
type Face [4]int

// NewFace creates a triangular face from three vertex indices
func NewFace(i0, i1, i2 int) Face {
	return Face{TriangleVertexCount, i0, i1, i2}
}

// Indices returns the three vertex indices of the face
func (f Face) Indices() [3]int {
	return [3]int{f[1], f[2], f[3]}
}

// Reversed returns the face with its vertex order reversed
func (f Face) Reversed() Face {
	return Face{f[0], f[3], f[2], f[1]}
}

// Mesh represents a complete OFF mesh.
// Vertices are kept as opaque lines and are never rewritten.
type Mesh struct {
	Header   Header
	Vertices []string
	Faces    []Face
}

// NewMesh creates an empty mesh with room for the declared counts
func NewMesh(header Header) *Mesh {
	return &Mesh{
		Header:   header,
		Vertices: make([]string, 0, header.VertexCount),
		Faces:    make([]Face, 0, header.FaceCount),
	}
}

// AddVertex appends a vertex line to the mesh
func (m *Mesh) AddVertex(line string) {
	m.Vertices = append(m.Vertices, line)
}

// AddFace appends a face to the mesh
func (m *Mesh) AddFace(face Face) {
	m.Faces = append(m.Faces, face)
}

// ReverseFaces flips the winding order of every face in place
func (m *Mesh) ReverseFaces() {
	for i, face := range m.Faces {
		m.Faces[i] = face.Reversed()
	}
}

// FaceCount returns the number of faces read into the mesh
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices read into the mesh
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}
