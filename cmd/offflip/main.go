package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/offflip/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "offflip",
	Short: "Flip the face winding of OFF triangle meshes",
	Long: `offflip reads triangle meshes in the OFF (Object File Format) text format
and reverses the vertex order of every face, turning front faces into back
faces. Vertex data and the declared header counts are passed through unchanged.`,
	Version:       version.GetFullVersion(),
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
