package main

import (
	"fmt"

	"github.com/vigil-313/citymesh/pkg/geo"
	"github.com/vigil-313/citymesh/pkg/stream"
	"github.com/vigil-313/citymesh/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	if res.FeatureID != 0 {
		fmt.Printf("    feature: %d\n", res.FeatureID)
	}
	if res.Field != "" {
		fmt.Printf("    -> %s = %v\n", res.Field, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
}

func printStreamHeader() {
	fmt.Printf("%6s %18s %9s %8s %9s %7s %8s\n",
		"frame", "observer", "executed", "queued", "resident", "loads", "unloads")
}

func printStreamTick(frame int, pos geo.Point2D, executed int, q stream.QueueStats, m stream.ManagerStats) {
	fmt.Printf("%6d %8.1f,%8.1f %9d %8d %9d %7d %8d\n",
		frame, pos.X, pos.Z, executed, q.Pending, m.Resident, m.Loads, m.Unloads)
}

func printStreamSummary(q stream.QueueStats, m stream.ManagerStats) {
	fmt.Println()
	fmt.Println("Stream Summary")
	fmt.Println("--------------")
	fmt.Printf("  Items executed:   %d\n", q.Executed)
	fmt.Printf("  Items cancelled:  %d\n", q.Cancelled)
	fmt.Printf("  Items dropped:    %d\n", q.Dropped)
	fmt.Printf("  Queue overflows:  %d\n", q.Overflows)
	fmt.Printf("  Chunk loads:      %d\n", m.Loads)
	fmt.Printf("  Chunk unloads:    %d\n", m.Unloads)
	fmt.Printf("  Refused loads:    %d\n", m.RefusedLoads)
}
