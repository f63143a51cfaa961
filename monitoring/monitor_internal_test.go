package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	"github.com/liuq/desim/sim"
	"github.com/liuq/desim/sim/queueing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Monitor", func() {
	var (
		s *sim.Simulation[sim.VTimeInSec]
		m *Monitor[sim.VTimeInSec]
	)

	BeforeEach(func() {
		s = sim.NewSimulation[sim.VTimeInSec]()
		m = NewMonitor[sim.VTimeInSec]()
		m.RegisterSimulation(s)
	})

	It("should report the current time", func() {
		s.Timeout(3)
		s.Run()

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/now", nil)
		m.now(w, r)

		Expect(w.Body.String()).To(Equal(`{"now":3}`))
	})

	It("should register entities", func() {
		store := queueing.NewStore[int, sim.VTimeInSec](s)
		m.RegisterEntity("Store", store)

		Expect(m.entities).To(HaveLen(1))
		Expect(m.entities["Store"]).To(BeIdenticalTo(store))
	})

	It("should refuse duplicated entity names", func() {
		m.RegisterEntity("Store", queueing.NewStore[int, sim.VTimeInSec](s))

		Expect(func() {
			m.RegisterEntity("Store",
				queueing.NewStore[int, sim.VTimeInSec](s))
		}).To(Panic())
	})

	It("should list entity names", func() {
		m.RegisterEntity("Store", queueing.NewStore[int, sim.VTimeInSec](s))

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/list_entities", nil)
		m.listEntities(w, r)

		var names []string
		Expect(json.Unmarshal(w.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(Equal([]string{"Store"}))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("Loading", 10)
		bar.AddFinished(4)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/progress", nil)
		m.listProgressBars(w, r)

		var bars []ProgressBar
		Expect(json.Unmarshal(w.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("Loading"))
		Expect(bars[0].Total).To(Equal(uint64(10)))
		Expect(bars[0].Finished).To(Equal(uint64(4)))
	})

	It("should remove completed progress bars", func() {
		bar := m.CreateProgressBar("Loading", 10)
		m.CreateProgressBar("Running", 100)

		m.CompleteProgressBar(bar)

		Expect(m.progressBars).To(HaveLen(1))
		Expect(m.progressBars[0].Name).To(Equal("Running"))
	})
})

var _ = Describe("ProgressBar", func() {
	It("should track progress", func() {
		bar := &ProgressBar{Total: 10}

		bar.AddInProgress(4)
		bar.FinishInProgress(3)
		bar.AddFinished(2)

		Expect(bar.InProgress).To(Equal(uint64(1)))
		Expect(bar.Finished).To(Equal(uint64(5)))
		Expect(bar.Ratio()).To(Equal(0.5))
	})

	It("should report zero ratio without a total", func() {
		bar := &ProgressBar{}

		bar.AddFinished(3)

		Expect(bar.Ratio()).To(Equal(0.0))
	})
})
