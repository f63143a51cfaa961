package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Event", func() {
	var s *Simulation[VTimeInSec]

	BeforeEach(func() {
		s = NewSimulation[VTimeInSec]()
	})

	It("should start pending", func() {
		ev := s.Event()

		Expect(ev.Pending()).To(BeTrue())
		Expect(ev.Triggered()).To(BeFalse())
		Expect(ev.Processed()).To(BeFalse())
		Expect(ev.Aborted()).To(BeFalse())
		Expect(ev.ID()).NotTo(BeEmpty())
	})

	It("should trigger exactly once", func() {
		ev := s.Event()

		Expect(ev.Trigger()).To(BeTrue())
		Expect(ev.Triggered()).To(BeTrue())

		Expect(ev.Trigger()).To(BeFalse())
		Expect(ev.Abort()).To(BeFalse())
		Expect(ev.State()).To(Equal(EventTriggered))
	})

	It("should become processed after its listeners ran", func() {
		ev := s.Event()
		ev.Trigger()

		Expect(ev.Processed()).To(BeFalse())

		s.Run()

		Expect(ev.Processed()).To(BeTrue())
	})

	It("should run listeners in registration order", func() {
		ev := s.Event()
		var order []int
		ev.AddListener(func(*Event[VTimeInSec]) { order = append(order, 1) })
		ev.AddListener(func(*Event[VTimeInSec]) { order = append(order, 2) })

		ev.Trigger()
		s.Run()

		Expect(order).To(Equal([]int{1, 2}))
	})

	It("should not run listeners synchronously when awaiting a completed event",
		func() {
			ev := s.Event()
			ev.Trigger()
			s.Run()

			called := false
			ev.AddListener(func(*Event[VTimeInSec]) { called = true })

			Expect(called).To(BeFalse())

			s.Run()

			Expect(called).To(BeTrue())
		})

	It("should stay aborted forever", func() {
		ev := s.Event()

		Expect(ev.Abort()).To(BeTrue())
		Expect(ev.Aborted()).To(BeTrue())

		Expect(ev.Trigger()).To(BeFalse())
		Expect(ev.Abort()).To(BeFalse())
		Expect(ev.State()).To(Equal(EventAborted))
	})

	It("should never invoke listeners of an aborted event", func() {
		ev := s.Event()
		called := false
		ev.AddListener(func(*Event[VTimeInSec]) { called = true })

		ev.Abort()
		ev.AddListener(func(*Event[VTimeInSec]) { called = true })
		s.Run()

		Expect(called).To(BeFalse())
	})
})

var _ = Describe("ValueEvent", func() {
	var s *Simulation[VTimeInSec]

	BeforeEach(func() {
		s = NewSimulation[VTimeInSec]()
	})

	It("should carry its payload once triggered", func() {
		ev := NewValueEvent[int](s)

		Expect(ev.Trigger(42)).To(BeTrue())
		Expect(ev.Value()).To(Equal(42))

		s.Run()

		Expect(ev.Processed()).To(BeTrue())
		Expect(ev.Value()).To(Equal(42))
	})

	It("should keep the first payload on a second trigger", func() {
		ev := NewValueEvent[int](s)

		ev.Trigger(1)

		Expect(ev.Trigger(2)).To(BeFalse())
		Expect(ev.Value()).To(Equal(1))
	})

	It("should panic when reading the value before the trigger", func() {
		ev := NewValueEvent[int](s)

		Expect(func() { ev.Value() }).To(Panic())
	})

	It("should panic when reading a value that was never set", func() {
		ev := NewValueEvent[int](s)
		ev.Event.Trigger()

		Expect(func() { ev.Value() }).To(Panic())
	})
})
