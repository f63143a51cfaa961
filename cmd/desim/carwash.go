package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/liuq/desim/sim"
	"github.com/liuq/desim/sim/queueing"
)

var (
	carwashMachines int
	carwashCars     int
	carwashWashTime float64
	carwashInterval float64
	carwashSeed     int64
)

var carwashCmd = &cobra.Command{
	Use:   "carwash",
	Short: "Simulate a carwash with a limited number of machines.",
	Long: `Cars arrive at random intervals and compete for a fixed number ` +
		`of washing machines. Cars that find all machines busy queue up ` +
		`and are served in arrival order.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runCarwash(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(carwashCmd)

	carwashCmd.Flags().IntVar(&carwashMachines, "machines", 2,
		"number of washing machines")
	carwashCmd.Flags().IntVar(&carwashCars, "cars", 5,
		"number of cars to wash")
	carwashCmd.Flags().Float64Var(&carwashWashTime, "wash-time", 5,
		"time one wash takes")
	carwashCmd.Flags().Float64Var(&carwashInterval, "interval", 2,
		"mean time between car arrivals")
	carwashCmd.Flags().Int64Var(&carwashSeed, "seed", 1,
		"seed for arrival time randomization")
}

func runCarwash(out io.Writer) {
	s := sim.NewSimulation[sim.VTimeInSec]()
	machines := queueing.NewResource(s, uint64(carwashMachines))
	rng := rand.New(rand.NewSource(carwashSeed))

	car := func(id int) sim.Routine[sim.VTimeInSec] {
		return func(p *sim.Process[sim.VTimeInSec]) {
			fmt.Fprintf(out, "[%4.1f] Car %d arrives\n", p.Now(), id)
			p.Wait(machines.Request())
			fmt.Fprintf(out, "[%4.1f] Car %d enters a machine\n", p.Now(), id)
			p.Delay(sim.VTimeInSec(carwashWashTime))
			fmt.Fprintf(out, "[%4.1f] Car %d leaves\n", p.Now(), id)
			machines.Release()
		}
	}

	s.Process(func(p *sim.Process[sim.VTimeInSec]) {
		for i := 0; i < carwashCars; i++ {
			s.Process(car(i))
			p.Delay(sim.VTimeInSec(rng.Float64() * 2 * carwashInterval))
		}
	})

	s.Run()
	fmt.Fprintf(out, "[%4.1f] All cars washed\n", s.Now())
}
