package main

import (
	"fmt"

	"github.com/philipparndt/offflip/pkg/analysis"
	"github.com/philipparndt/offflip/pkg/off"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an OFF file",
	Long:  "Show the declared counts, dimensions, surface area, signed volume and overall face orientation of a triangle mesh.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	mesh, err := off.Parse(filename)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	result, err := analysis.AnalyzeMesh(mesh)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", filename, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "OFF File Information")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Mesh Statistics:")
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Faces: %d\n", result.FaceCount)
	fmt.Fprintf(out, "  Edges (declared): %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))
	fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Height (Z): %.6f units\n\n", result.Dimensions.Z)

	fmt.Fprintln(out, "Orientation:")
	fmt.Fprintf(out, "  Signed Volume: %.6f cubic units\n", result.SignedVolume)
	fmt.Fprintf(out, "  Faces Point: %s\n", result.Orientation)
	return nil
}
