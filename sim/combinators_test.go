package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Combinators", func() {
	var s *Simulation[VTimeInSec]

	BeforeEach(func() {
		s = NewSimulation[VTimeInSec]()
	})

	It("should keep an any-of event pending if no constituent ever triggers",
		func() {
			combined := s.AnyOf(s.Event(), s.Event())

			s.Run()

			Expect(combined.Pending()).To(BeTrue())
		})

	It("should trigger an any-of event when the first constituent triggers",
		func() {
			var at VTimeInSec

			combined := s.AnyOf(s.Timeout(1), s.Timeout(2))
			combined.AddListener(func(*Event[VTimeInSec]) { at = s.Now() })

			s.Run()

			Expect(combined.Processed()).To(BeTrue())
			Expect(at).To(Equal(VTimeInSec(1)))
		})

	It("should ignore constituents firing after an any-of event triggered",
		func() {
			a := s.Timeout(1)
			b := s.Timeout(2)
			combined := s.AnyOf(a, b)

			s.Run()

			Expect(a.Processed()).To(BeTrue())
			Expect(b.Processed()).To(BeTrue())
			Expect(combined.Processed()).To(BeTrue())
		})

	It("should keep an all-of event pending if one constituent never triggers",
		func() {
			combined := s.AllOf(s.Timeout(1), s.Event())

			s.Run()

			Expect(combined.Pending()).To(BeTrue())
		})

	It("should trigger an all-of event when the last constituent triggers",
		func() {
			var at VTimeInSec

			combined := s.AllOf(s.Timeout(1), s.Timeout(2))
			combined.AddListener(func(*Event[VTimeInSec]) { at = s.Now() })

			s.Run()

			Expect(combined.Processed()).To(BeTrue())
			Expect(at).To(Equal(VTimeInSec(2)))
		})

	It("should trigger an empty all-of event right away", func() {
		combined := s.AllOf()

		s.Run()

		Expect(combined.Processed()).To(BeTrue())
	})

	It("should include already-triggered constituents", func() {
		a := s.Event()
		a.Trigger()
		s.Run()

		combined := s.AllOf(a, s.Timeout(1))

		s.Run()

		Expect(combined.Processed()).To(BeTrue())
	})

	It("should support the binary any-of form", func() {
		var at VTimeInSec

		combined := s.Timeout(1).AnyOf(s.Timeout(2))
		combined.AddListener(func(*Event[VTimeInSec]) { at = s.Now() })

		s.Run()

		Expect(at).To(Equal(VTimeInSec(1)))
	})

	It("should support the binary all-of form", func() {
		var at VTimeInSec

		combined := s.Timeout(1).AllOf(s.Timeout(2))
		combined.AddListener(func(*Event[VTimeInSec]) { at = s.Now() })

		s.Run()

		Expect(at).To(Equal(VTimeInSec(2)))
	})
})
