package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/liuq/desim/sim"
)

var (
	clocksFast  float64
	clocksSlow  float64
	clocksUntil float64
)

var clocksCmd = &cobra.Command{
	Use:   "clocks",
	Short: "Run two clocks ticking at different rates.",
	Run: func(cmd *cobra.Command, _ []string) {
		runClocks(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(clocksCmd)

	clocksCmd.Flags().Float64Var(&clocksFast, "fast", 1,
		"period of the fast clock")
	clocksCmd.Flags().Float64Var(&clocksSlow, "slow", 2,
		"period of the slow clock")
	clocksCmd.Flags().Float64Var(&clocksUntil, "until", 5,
		"time to stop the simulation at")
}

func runClocks(out io.Writer) {
	s := sim.NewSimulation[sim.VTimeInSec]()

	clock := func(name string, period sim.VTimeInSec) sim.Routine[sim.VTimeInSec] {
		return func(p *sim.Process[sim.VTimeInSec]) {
			for {
				fmt.Fprintf(out, "[%4.1f] Clock %s ticks\n", p.Now(), name)
				p.Delay(period)
			}
		}
	}

	s.Process(clock("fast", sim.VTimeInSec(clocksFast)))
	s.Process(clock("slow", sim.VTimeInSec(clocksSlow)))

	s.RunUntil(sim.VTimeInSec(clocksUntil))
}
