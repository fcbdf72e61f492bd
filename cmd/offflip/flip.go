package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/philipparndt/offflip/pkg/off"
	"github.com/philipparndt/offflip/pkg/watcher"
	"github.com/spf13/cobra"
)

// stdioPath selects stdin or stdout instead of a file
const stdioPath = "-"

var (
	flipInput    string
	flipOutput   string
	flipWatch    bool
	flipDebounce time.Duration
	flipQuiet    bool
)

var flipCmd = &cobra.Command{
	Use:   "flip --input <file> --output <file>",
	Short: "Reverse the winding order of every face in an OFF file",
	Long: `Reverse the vertex order of every triangular face ("3 a b c" becomes "3 c b a").
The input is fully parsed and validated before the output file is created, so a
rejected input never leaves a partial output behind. Use "-" for stdin or stdout.`,
	Args: cobra.NoArgs,
	RunE: runFlip,
}

func init() {
	rootCmd.AddCommand(flipCmd)

	flipCmd.Flags().StringVarP(&flipInput, "input", "i", "", "Input OFF file (\"-\" for stdin)")
	flipCmd.Flags().StringVarP(&flipOutput, "output", "o", "", "Output OFF file, created or overwritten (\"-\" for stdout)")
	flipCmd.Flags().BoolVarP(&flipWatch, "watch", "w", false, "Convert again whenever the input file changes")
	flipCmd.Flags().DurationVar(&flipDebounce, "debounce", 200*time.Millisecond, "Quiet period before reconverting in watch mode")
	flipCmd.Flags().BoolVarP(&flipQuiet, "quiet", "q", false, "Do not print a confirmation message")
	_ = flipCmd.MarkFlagRequired("input")
	_ = flipCmd.MarkFlagRequired("output")
}

func runFlip(cmd *cobra.Command, args []string) error {
	if flipWatch {
		if flipInput == stdioPath {
			return errors.New("--watch requires an input file, not stdin")
		}
		same, err := samePath(flipInput, flipOutput)
		if err != nil {
			return err
		}
		// Writing the watched file would trigger another conversion, forever
		if same {
			return fmt.Errorf("--watch requires the output to differ from the input %s", flipInput)
		}
	}

	if err := flipAndReport(cmd); err != nil {
		return err
	}

	if !flipWatch {
		return nil
	}
	return watchAndFlip(cmd)
}

func flipAndReport(cmd *cobra.Command) error {
	mesh, err := flipMesh(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", flipInput, err)
	}

	if flipQuiet {
		return nil
	}

	// Keep stdout clean when it carries the mesh
	report := cmd.OutOrStdout()
	if flipOutput == stdioPath {
		report = cmd.ErrOrStderr()
	}
	fmt.Fprintf(report, "Wrote %s with reversed face winding (%d faces)\n", outputName(), mesh.FaceCount())
	return nil
}

func flipMesh(stdin io.Reader, stdout io.Writer) (*off.Mesh, error) {
	if flipInput != stdioPath && flipOutput != stdioPath {
		return off.Convert(flipInput, flipOutput)
	}

	in := stdin
	if flipInput != stdioPath {
		file, err := os.Open(flipInput)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()
		in = file
	}

	if flipOutput == stdioPath {
		return off.ConvertReader(in, stdout)
	}

	mesh, err := off.ParseReader(in)
	if err != nil {
		return nil, err
	}
	mesh.ReverseFaces()
	if err := off.WriteFile(flipOutput, mesh); err != nil {
		return nil, err
	}
	return mesh, nil
}

// samePath reports whether two paths name the same file, following symlinks when both exist
func samePath(a, b string) (bool, error) {
	if b == stdioPath {
		return false, nil
	}

	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path %s: %w", a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path %s: %w", b, err)
	}
	if absA == absB {
		return true, nil
	}

	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false, nil
	}
	return os.SameFile(infoA, infoB), nil
}

func outputName() string {
	if flipOutput == stdioPath {
		return "stdout"
	}
	return flipOutput
}

func watchAndFlip(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(flipDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()
	fw.SetErrorOutput(cmd.ErrOrStderr())

	// Debounce timers may fire concurrently with a conversion still running
	var mu sync.Mutex
	err = fw.Watch([]string{flipInput}, func(string) {
		mu.Lock()
		defer mu.Unlock()
		if err := flipAndReport(cmd); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}
	fw.Start()

	if !flipQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", flipInput)
	}
	<-ctx.Done()
	return nil
}
