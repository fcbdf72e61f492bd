package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/philipparndt/offflip/pkg/off"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangle = `OFF
3 1 0
0.0 0.0 0.0
1.0 0.0 0.0
0.0 1.0 0.0
3 0 1 2
`

const reversedTriangle = `OFF
3 1 0
0.0 0.0 0.0
1.0 0.0 0.0
0.0 1.0 0.0
3 2 1 0
`

// syncBuffer collects output written from watch callbacks on other goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// prepare resets the command tree to fresh flag state, as a new process would have
func prepare(t *testing.T, ctx context.Context, stdin string, args ...string) (*syncBuffer, *syncBuffer) {
	t.Helper()

	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
		// Subcommands keep the context of their first run otherwise
		c.SetContext(ctx)
	}

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	return stdout, stderr
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := prepare(t, context.Background(), stdin, args...)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFlipFiles(t *testing.T) {
	input := writeFile(t, "bear.off", triangle)
	output := filepath.Join(t.TempDir(), "output_reversed.off")

	stdout, _, err := execute(t, "", "flip", "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+output+" with reversed face winding (1 faces)\n", stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, reversedTriangle, string(data))
}

func TestFlipStdio(t *testing.T) {
	stdout, stderr, err := execute(t, triangle, "flip", "--input", "-", "--output", "-")
	require.NoError(t, err)
	assert.Equal(t, reversedTriangle, stdout)
	assert.Contains(t, stderr, "Wrote stdout")
}

func TestFlipQuiet(t *testing.T) {
	input := writeFile(t, "in.off", triangle)
	output := filepath.Join(t.TempDir(), "out.off")

	stdout, stderr, err := execute(t, "", "flip", "-q", "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.FileExists(t, output)
}

func TestFlipRequiresBothPaths(t *testing.T) {
	_, _, err := execute(t, "", "flip", "-i", "in.off")
	assert.ErrorContains(t, err, "output")

	_, _, err = execute(t, "", "flip", "-o", "out.off")
	assert.ErrorContains(t, err, "input")
}

func TestFlipRejectsNonTriangularFace(t *testing.T) {
	input := writeFile(t, "quad.off", "OFF\n4 1 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n4 0 1 2 3\n")
	output := filepath.Join(t.TempDir(), "out.off")

	_, _, err := execute(t, "", "flip", "-i", input, "-o", output)

	var faceErr *off.FaceError
	require.ErrorAs(t, err, &faceErr)
	assert.Equal(t, 7, faceErr.Line)
	assert.NoFileExists(t, output)
}

func TestFlipRejectsNonOFF(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.off")

	_, _, err := execute(t, "COFF\n3 1 0\n", "flip", "-i", "-", "-o", output)
	assert.ErrorIs(t, err, off.ErrNotOFF)
	assert.NoFileExists(t, output)
}

func TestFlipWatchRejectsStdin(t *testing.T) {
	_, _, err := execute(t, triangle, "flip", "-i", "-", "-o", "-", "--watch")
	assert.ErrorContains(t, err, "--watch requires an input file")
}

func TestFlipWatchRejectsSameFile(t *testing.T) {
	input := writeFile(t, "mesh.off", triangle)
	wd, err := os.Getwd()
	require.NoError(t, err)
	relative, err := filepath.Rel(wd, input)
	require.NoError(t, err)

	_, _, err = execute(t, "", "flip", "-i", input, "-o", relative, "--watch")
	assert.ErrorContains(t, err, "output to differ from the input")

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, triangle, string(data))
}

func TestFlipWatchReconvertsOnceOnChange(t *testing.T) {
	input := writeFile(t, "mesh.off", triangle)
	output := filepath.Join(t.TempDir(), "flipped.off")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stdout, stderr := prepare(t, ctx, "", "flip", "-i", input, "-o", output, "--watch", "--debounce", "50ms")

	done := make(chan error, 1)
	go func() { done <- rootCmd.Execute() }()

	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "Watching")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, strings.Count(stdout.String(), "Wrote"))

	require.NoError(t, os.WriteFile(input, []byte(strings.Replace(triangle, "3 0 1 2", "3 1 2 0", 1)), 0o644))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(output)
		return err == nil && strings.HasSuffix(string(data), "3 0 2 1\n")
	}, 5*time.Second, 10*time.Millisecond)

	// Give a self-triggering loop time to show up
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 2, strings.Count(stdout.String(), "Wrote"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch mode did not stop after cancellation")
	}
}

func TestInfo(t *testing.T) {
	input := writeFile(t, "tetra.off", `OFF
4 4 6
0 0 0
1 0 0
0 1 0
0 0 1
3 0 2 1
3 0 1 3
3 0 3 2
3 1 2 3
`)

	stdout, _, err := execute(t, "", "info", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Vertices: 4")
	assert.Contains(t, stdout, "Faces: 4")
	assert.Contains(t, stdout, "Edges (declared): 6")
	assert.Contains(t, stdout, "Height (Z): 1.000000 units")
	assert.Contains(t, stdout, "Signed Volume: 0.166667")
	assert.Contains(t, stdout, "Faces Point: outward")
}

func TestInfoAfterFlipReportsInward(t *testing.T) {
	input := writeFile(t, "tetra.off", "OFF\n4 4 6\n0 0 0\n1 0 0\n0 1 0\n0 0 1\n3 0 2 1\n3 0 1 3\n3 0 3 2\n3 1 2 3\n")
	output := filepath.Join(t.TempDir(), "flipped.off")

	_, _, err := execute(t, "", "flip", "-q", "-i", input, "-o", output)
	require.NoError(t, err)

	stdout, _, err := execute(t, "", "info", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Faces Point: inward")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "offflip dev\n", stdout)
}
