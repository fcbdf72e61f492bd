package off

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineLength bounds a single line; vertex lines may carry colors or extra attributes
const maxLineLength = 1024 * 1024

// Parse reads an OFF file and returns a Mesh.
// The whole file is read before any validation result is returned.
func Parse(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader reads an OFF mesh from r
func ParseReader(r io.Reader) (*Mesh, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != Tag {
		return nil, &FormatError{Line: 1, Msg: fmt.Sprintf("expected %q tag", Tag), Err: ErrNotOFF}
	}
	if len(lines) < 2 {
		return nil, &FormatError{Line: 2, Msg: "missing counts line"}
	}

	header, err := parseHeader(lines[1])
	if err != nil {
		return nil, err
	}

	// Check the declared counts against the lines present before allocating for them
	body := lines[2:]
	if len(body) < header.VertexCount {
		return nil, &ShortReadError{Section: "vertex", Expected: header.VertexCount, Got: len(body)}
	}
	vertexLines, faceLines := body[:header.VertexCount], body[header.VertexCount:]
	if len(faceLines) < header.FaceCount {
		return nil, &ShortReadError{Section: "face", Expected: header.FaceCount, Got: len(faceLines)}
	}

	mesh := NewMesh(header)
	for _, line := range vertexLines {
		mesh.AddVertex(line)
	}

	// Face lines start right after the vertex block
	firstFaceLine := 3 + header.VertexCount
	for i, line := range faceLines[:header.FaceCount] {
		face, err := parseFace(line, firstFaceLine+i)
		if err != nil {
			return nil, err
		}
		mesh.AddFace(face)
	}

	return mesh, nil
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(scanRawLines)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OFF data: %w", err)
	}
	return lines, nil
}

// scanRawLines splits on '\n' like bufio.ScanLines but keeps a trailing '\r',
// so vertex lines from CRLF files are passed through byte-for-byte
func scanRawLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// parseHeader parses the "V F E" counts line
func parseHeader(line string) (Header, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Header{}, &FormatError{
			Line: 2,
			Msg:  fmt.Sprintf("expected 3 counts (vertices faces edges), got %d fields in %q", len(fields), line),
		}
	}

	var counts [3]int
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return Header{}, &FormatError{Line: 2, Msg: fmt.Sprintf("invalid count %q", field), Err: err}
		}
		if n < 0 {
			return Header{}, &FormatError{Line: 2, Msg: fmt.Sprintf("negative count %d", n)}
		}
		counts[i] = n
	}

	return Header{VertexCount: counts[0], FaceCount: counts[1], EdgeCount: counts[2]}, nil
}

// parseFace parses a "3 i0 i1 i2" face line; lineNum is 1-based
func parseFace(line string, lineNum int) (Face, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Face{}, &FormatError{Line: lineNum, Msg: "empty face line"}
	}

	values := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return Face{}, &FormatError{Line: lineNum, Msg: fmt.Sprintf("invalid face value %q", field), Err: err}
		}
		values[i] = n
	}

	if values[0] != TriangleVertexCount {
		return Face{}, &FaceError{Line: lineNum, Count: values[0]}
	}
	if len(values) != TriangleVertexCount+1 {
		return Face{}, &FormatError{
			Line: lineNum,
			Msg:  fmt.Sprintf("expected %d vertex indices, got %d", TriangleVertexCount, len(values)-1),
		}
	}

	return NewFace(values[1], values[2], values[3]), nil
}
