package off

import (
	"errors"
	"fmt"
)

// ErrNotOFF is wrapped by the FormatError returned when the first line is not the OFF tag
var ErrNotOFF = errors.New("not an OFF file")

// FormatError reports a line that does not follow the OFF layout
type FormatError struct {
	Line int // 1-based, 0 when the file has no such line
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// FaceError reports a face whose vertex count is not 3
type FaceError struct {
	Line  int
	Count int
}

func (e *FaceError) Error() string {
	return fmt.Sprintf("line %d: face has %d vertices, expected %d", e.Line, e.Count, TriangleVertexCount)
}

// ShortReadError reports a file that ends before the declared number of lines
type ShortReadError struct {
	Section  string
	Expected int
	Got      int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("unexpected end of file: expected %d %s lines, got %d", e.Expected, e.Section, e.Got)
}
