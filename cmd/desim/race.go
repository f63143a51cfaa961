package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/liuq/desim/sim"
)

var (
	raceHare     float64
	raceTortoise float64
)

var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Race two timers against each other with event combinators.",
	Run: func(cmd *cobra.Command, _ []string) {
		runRace(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(raceCmd)

	raceCmd.Flags().Float64Var(&raceHare, "hare", 1,
		"time the hare needs to finish")
	raceCmd.Flags().Float64Var(&raceTortoise, "tortoise", 3,
		"time the tortoise needs to finish")
}

func runRace(out io.Writer) {
	s := sim.NewSimulation[sim.VTimeInSec]()

	s.Process(func(p *sim.Process[sim.VTimeInSec]) {
		hare := p.Sim().Timeout(sim.VTimeInSec(raceHare))
		tortoise := p.Sim().Timeout(sim.VTimeInSec(raceTortoise))

		p.Wait(hare.AnyOf(tortoise))
		fmt.Fprintf(out, "[%4.1f] First finisher crosses the line\n", p.Now())

		p.Wait(hare.AllOf(tortoise))
		fmt.Fprintf(out, "[%4.1f] Both finishers crossed the line\n", p.Now())
	})

	s.Run()
}
