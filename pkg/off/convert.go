package off

import "io"

// Convert reads the OFF mesh at inputPath, reverses the winding of every face
// and writes the result to outputPath. The output file is only created once
// the whole input has been parsed and validated.
func Convert(inputPath, outputPath string) (*Mesh, error) {
	mesh, err := Parse(inputPath)
	if err != nil {
		return nil, err
	}

	mesh.ReverseFaces()

	if err := WriteFile(outputPath, mesh); err != nil {
		return nil, err
	}
	return mesh, nil
}

// ConvertReader is Convert for arbitrary streams.
// Nothing is written to w if r does not hold a valid mesh.
func ConvertReader(r io.Reader, w io.Writer) (*Mesh, error) {
	mesh, err := ParseReader(r)
	if err != nil {
		return nil, err
	}

	mesh.ReverseFaces()

	if err := Write(w, mesh); err != nil {
		return nil, err
	}
	return mesh, nil
}
