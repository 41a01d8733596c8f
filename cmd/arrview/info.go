package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"arrview/internal/rawio"
)

// infoCmd prints a summary of an array file: shape, dtype, and value
// statistics over the finite elements.
var infoCmd = &cobra.Command{
	Use:   "info <array-file>",
	Short: "Print shape, dtype, and value statistics for an array file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	shape, err := rawio.ParseShape(flagShape)
	if err != nil {
		return err
	}
	arr, err := rawio.ReadArray(args[0], flagDType, shape)
	if err != nil {
		return err
	}

	values := arr.Float64s()
	finite := make([]float64, 0, len(values))
	nanCount := 0
	for _, v := range values {
		if math.IsNaN(v) {
			nanCount++
			continue
		}
		finite = append(finite, v)
	}

	fmt.Printf("File:    %s\n", args[0])
	fmt.Printf("DType:   %s\n", arr.DType().Code())
	fmt.Printf("Shape:   %v\n", arr.Shape())
	fmt.Printf("Elements: %d (%d NaN)\n", arr.Len(), nanCount)

	if len(finite) == 0 {
		fmt.Println("No finite elements.")
		return nil
	}

	sort.Float64s(finite)
	fmt.Printf("Min:     %g\n", finite[0])
	fmt.Printf("Max:     %g\n", finite[len(finite)-1])
	fmt.Printf("Mean:    %g\n", stat.Mean(finite, nil))
	fmt.Printf("StdDev:  %g\n", stat.StdDev(finite, nil))
	fmt.Printf("Median:  %g\n", stat.Quantile(0.5, stat.LinInterp, finite, nil))
	fmt.Printf("P01/P99: %g / %g\n",
		stat.Quantile(0.01, stat.LinInterp, finite, nil),
		stat.Quantile(0.99, stat.LinInterp, finite, nil))
	return nil
}
