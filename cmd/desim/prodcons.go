package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/liuq/desim/sim"
	"github.com/liuq/desim/sim/queueing"
)

var (
	prodconsItems    int
	prodconsInterval float64
)

var prodconsCmd = &cobra.Command{
	Use:   "prodcons",
	Short: "Run a producer feeding consumers through stores.",
	Long: `A producer puts numbered items into a store. One consumer takes ` +
		`whatever comes first, another only accepts even-numbered items ` +
		`through a filtered store.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runProdCons(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(prodconsCmd)

	prodconsCmd.Flags().IntVar(&prodconsItems, "items", 6,
		"number of items to produce")
	prodconsCmd.Flags().Float64Var(&prodconsInterval, "interval", 1,
		"time between produced items")
}

func runProdCons(out io.Writer) {
	s := sim.NewSimulation[sim.VTimeInSec]()
	store := queueing.NewStore[int, sim.VTimeInSec](s)
	evenStore := queueing.NewFilteredStore[int, sim.VTimeInSec](s)

	s.Process(func(p *sim.Process[sim.VTimeInSec]) {
		for i := 0; i < prodconsItems; i++ {
			store.Put(i)
			evenStore.Put(i)
			fmt.Fprintf(out, "[%4.1f] Produced item %d\n", p.Now(), i)
			p.Delay(sim.VTimeInSec(prodconsInterval))
		}
	})

	s.Process(func(p *sim.Process[sim.VTimeInSec]) {
		for i := 0; i < prodconsItems; i++ {
			item := sim.Await(p, store.Get())
			fmt.Fprintf(out, "[%4.1f] Consumed item %d\n", p.Now(), item)
		}
	})

	s.Process(func(p *sim.Process[sim.VTimeInSec]) {
		for i := 0; i < prodconsItems/2; i++ {
			item := sim.Await(p, evenStore.Get(func(v int) bool {
				return v%2 == 0
			}))
			fmt.Fprintf(out, "[%4.1f] Consumed even item %d\n", p.Now(), item)
		}
	})

	s.Run()
}
