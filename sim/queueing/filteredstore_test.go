package queueing

import (
	"github.com/liuq/desim/sim"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FilteredStore", func() {
	var (
		s  *sim.Simulation[sim.VTimeInSec]
		fs *FilteredStore[int, sim.VTimeInSec]
	)

	atLeast40 := func(v int) bool { return v >= 40 }
	negative := func(v int) bool { return v < 0 }

	BeforeEach(func() {
		s = sim.NewSimulation[sim.VTimeInSec]()
		fs = NewFilteredStore[int](s)
	})

	It("should make get wait for a matching put", func() {
		ev := fs.Get(atLeast40)

		s.RunUntil(2)

		Expect(ev.Pending()).To(BeTrue())

		fs.Put(42)
		s.Run()

		Expect(ev.Processed()).To(BeTrue())
		Expect(ev.Value()).To(Equal(42))
		Expect(fs.Size()).To(Equal(0))
	})

	It("should not make put wait for get", func() {
		putEv := fs.Put(42)

		Expect(putEv.Triggered()).To(BeTrue())

		getEv := fs.Get(atLeast40)
		s.Run()

		Expect(getEv.Processed()).To(BeTrue())
		Expect(getEv.Value()).To(Equal(42))
		Expect(fs.Size()).To(Equal(0))
	})

	It("should serve the older matching getter first", func() {
		older := fs.Get(atLeast40)
		newer := fs.Get(negative)

		s.RunUntil(2)
		fs.Put(42)
		s.Run()

		Expect(older.Processed()).To(BeTrue())
		Expect(older.Value()).To(Equal(42))
		Expect(newer.Pending()).To(BeTrue())
		Expect(fs.Size()).To(Equal(0))
		Expect(fs.Waiting()).To(Equal(1))
	})

	It("should skip earlier getters whose predicate rejects the value", func() {
		rejecting := fs.Get(negative)
		accepting := fs.Get(atLeast40)

		s.RunUntil(2)
		fs.Put(42)
		s.Run()

		Expect(accepting.Processed()).To(BeTrue())
		Expect(accepting.Value()).To(Equal(42))
		Expect(rejecting.Pending()).To(BeTrue())
		Expect(fs.Size()).To(Equal(0))
		Expect(fs.Waiting()).To(Equal(1))
	})

	It("should only offer the newest value on put", func() {
		ev := fs.Get(func(v int) bool { return v == 1 })

		fs.Put(2)

		Expect(ev.Pending()).To(BeTrue())
		Expect(fs.Size()).To(Equal(1))

		fs.Put(1)
		s.Run()

		Expect(ev.Processed()).To(BeTrue())
		Expect(ev.Value()).To(Equal(1))
		Expect(fs.Size()).To(Equal(1))
	})

	It("should find older values in the backlog on get", func() {
		fs.Put(2)
		fs.Put(3)

		ev := fs.Get(func(v int) bool { return v == 2 })

		Expect(ev.Triggered()).To(BeTrue())
		Expect(ev.Value()).To(Equal(2))
		Expect(fs.Size()).To(Equal(1))
	})

	It("should keep the value when the getter was aborted", func() {
		ev := fs.Get(atLeast40)

		s.RunUntil(2)

		Expect(ev.Pending()).To(BeTrue())

		ev.Abort()
		fs.Put(42)
		s.Run()

		Expect(fs.Size()).To(Equal(1))
		Expect(ev.Aborted()).To(BeTrue())
		Expect(fs.Waiting()).To(Equal(0))
	})

	It("should propagate a panicking predicate out of get", func() {
		fs.Put(42)

		Expect(func() {
			fs.Get(func(int) bool { panic("bad predicate") })
		}).To(Panic())
	})

	It("should propagate a panicking predicate out of put", func() {
		fs.Get(func(int) bool { panic("bad predicate") })

		Expect(func() { fs.Put(42) }).To(Panic())
	})
})
