package off

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Write serializes a mesh in OFF format.
// The header echoes the declared counts, not the number of elements read.
// Vertex lines are written as read, including a trailing '\r' from CRLF input;
// the lines Write generates itself end in '\n'.
func Write(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, Tag)
	fmt.Fprintf(bw, "%d %d %d\n", m.Header.VertexCount, m.Header.FaceCount, m.Header.EdgeCount)

	for _, vertex := range m.Vertices {
		fmt.Fprintln(bw, vertex)
	}

	for _, face := range m.Faces {
		fmt.Fprintf(bw, "%d %d %d %d\n", face[0], face[1], face[2], face[3])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write OFF data: %w", err)
	}
	return nil
}

// WriteFile serializes the mesh in memory and then creates or truncates filename.
// Nothing touches the file unless serialization succeeded.
func WriteFile(filename string, m *Mesh) error {
	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		return err
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
