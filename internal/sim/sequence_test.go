package sim_test

import (
	"iter"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

var _ = Describe("Simulator sequence", func() {
	var (
		s   *sim.Simulator
		cfg dynamo.Config
	)

	BeforeEach(func() {
		cfg = dynamo.Config{G: 1, Dt: 0.01, ValidateState: true}
		sun, err := physics.NewBody(1, 0, 0, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		planet, err := physics.NewBody(1e-6, 1, 0, 0, 1)
		Expect(err).NotTo(HaveOccurred())

		s, err = sim.New([]*physics.Body{sun, planet}, cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("when pulled", func() {
		It("computes exactly one step per pull", func() {
			next, stop := iter.Pull2(s.Run())
			defer stop()

			for i := 1; i <= 10; i++ {
				snap, err, ok := next()
				Expect(ok).To(BeTrue())
				Expect(err).NotTo(HaveOccurred())
				Expect(snap.Step).To(Equal(i))
				Expect(s.Steps()).To(Equal(i))
			}
		})

		It("reports elapsed time as steps times dt", func() {
			next, stop := iter.Pull2(s.Run())
			defer stop()

			last := 0.0
			for i := 1; i <= 100; i++ {
				snap, _, _ := next()
				Expect(snap.Time).To(BeNumerically(">", last))
				Expect(snap.Time).To(BeNumerically("~", float64(i)*cfg.Dt, 1e-12))
				last = snap.Time
			}
		})

		It("yields snapshots the consumer can keep", func() {
			next, stop := iter.Pull2(s.Run())
			defer stop()

			first, _, _ := next()
			kept := first.Bodies[1].Position
			next()
			next()
			Expect(first.Bodies[1].Position).To(Equal(kept))
		})

		It("continues from the current state, not from the start", func() {
			for range 5 {
				Expect(s.Step()).To(Succeed())
			}
			for snap, err := range s.Run() {
				Expect(err).NotTo(HaveOccurred())
				Expect(snap.Step).To(Equal(6))
				break
			}
		})

		It("keeps the planet near its orbit radius", func() {
			next, stop := iter.Pull2(s.Run())
			defer stop()

			var snap sim.Snapshot
			for range 1000 {
				snap, _, _ = next()
			}
			r := r2.Norm(r2.Sub(snap.Bodies[1].Position, snap.Bodies[0].Position))
			Expect(math.Abs(r - 1)).To(BeNumerically("<", 2e-2))
		})
	})

	Context("with coincident bodies", func() {
		BeforeEach(func() {
			a, _ := physics.NewBody(1, 0.5, 0.5, 0, 0)
			b, _ := physics.NewBody(1, 0.5, 0.5, 0, 0)
			var err error
			s, err = sim.New([]*physics.Body{a, b}, cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("fails the first pull with a degenerate configuration error", func() {
			next, stop := iter.Pull2(s.Run())
			defer stop()

			_, err, ok := next()
			Expect(ok).To(BeTrue())
			Expect(err).To(MatchError(dynamo.ErrDegenerateConfiguration))

			var simErr *dynamo.SimulationError
			Expect(err).To(BeAssignableToTypeOf(simErr))

			_, _, ok = next()
			Expect(ok).To(BeFalse())
		})

		It("never produces NaN positions", func() {
			_ = s.Step()
			for _, b := range s.Snapshot().Bodies {
				Expect(math.IsNaN(b.Position.X)).To(BeFalse())
				Expect(math.IsNaN(b.Position.Y)).To(BeFalse())
			}
		})
	})
})
