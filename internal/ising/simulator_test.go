package ising

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Simulator", func() {
	Context("when constructed", func() {
		It("should reject a non-positive size", func() {
			for _, size := range []int{0, -1, -20} {
				_, err := New(size, WithSeed(1))
				Expect(err).To(MatchError(ErrInvalidConfig))
			}
		})

		It("should reject a non-positive temperature", func() {
			for _, t := range []float64{0, -1, math.NaN(), math.Inf(1)} {
				_, err := New(4, WithTemperature(t), WithSeed(1))
				Expect(err).To(MatchError(ErrInvalidConfig))
			}
		})

		It("should default to 300 K", func() {
			s, err := New(4, WithSeed(1))
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Temperature()).To(Equal(300.0))
		})

		It("should start with a zero step counter and a valid lattice", func() {
			s, err := New(16, WithSeed(7))
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Steps()).To(Equal(0))
			Expect(s.Size()).To(Equal(16))
			Expect(s.Snapshot().Valid()).To(BeTrue())
		})

		It("should draw both spin values", func() {
			s, err := New(32, WithSeed(3))
			Expect(err).ToNot(HaveOccurred())
			sum := s.Snapshot().Sum()
			Expect(sum).To(BeNumerically(">", -32*32))
			Expect(sum).To(BeNumerically("<", 32*32))
		})

		It("should reject a lattice of the wrong size", func() {
			l, _ := UniformLattice(3, Up)
			_, err := New(4, WithLattice(l), WithSeed(1))
			Expect(err).To(MatchError(ErrInvalidConfig))
		})

		It("should copy the given lattice", func() {
			l, _ := UniformLattice(4, Up)
			s, err := New(4, WithLattice(l), WithSeed(1))
			Expect(err).ToNot(HaveOccurred())
			l.flip(0, 0)
			Expect(s.Spin(0, 0)).To(Equal(Up))
		})
	})

	Context("when setting the temperature", func() {
		It("should replace the temperature", func() {
			s, _ := New(4, WithSeed(1))
			Expect(s.SetTemperature(1043)).To(Succeed())
			Expect(s.Temperature()).To(Equal(1043.0))
		})

		It("should keep the old temperature on invalid input", func() {
			s, _ := New(4, WithTemperature(500), WithSeed(1))
			Expect(s.SetTemperature(-5)).To(MatchError(ErrInvalidConfig))
			Expect(s.SetTemperature(0)).To(MatchError(ErrInvalidConfig))
			Expect(s.Temperature()).To(Equal(500.0))
		})

		It("should not touch the lattice", func() {
			s, _ := New(8, WithSeed(2))
			before := s.Snapshot().Spins()
			Expect(s.SetTemperature(10)).To(Succeed())
			Expect(s.Snapshot().Spins()).To(Equal(before))
		})
	})

	Context("when measuring", func() {
		DescribeTable("energy of an aligned lattice",
			func(n int) {
				l, _ := UniformLattice(n, Up)
				s, err := New(n, WithLattice(l), WithSeed(1))
				Expect(err).ToNot(HaveOccurred())
				Expect(s.Energy()).To(BeNumerically("~", -2*Coupling*float64(n*n), 1e-9))
			},
			Entry("2x2", 2),
			Entry("5x5", 5),
			Entry("20x20", 20),
		)

		DescribeTable("energy of a checkerboard",
			func(n int) {
				l, _ := CheckerboardLattice(n)
				s, err := New(n, WithLattice(l), WithSeed(1))
				Expect(err).ToNot(HaveOccurred())
				Expect(s.Energy()).To(BeNumerically("~", 2*Coupling*float64(n*n), 1e-9))
			},
			Entry("2x2", 2),
			Entry("4x4", 4),
			Entry("20x20", 20),
		)

		It("should report magnetism of aligned lattices", func() {
			up, _ := UniformLattice(6, Up)
			down, _ := UniformLattice(6, Down)
			board, _ := CheckerboardLattice(6)

			s, _ := New(6, WithLattice(up), WithSeed(1))
			Expect(s.AverageMagnetism()).To(Equal(1.0))
			s, _ = New(6, WithLattice(down), WithSeed(1))
			Expect(s.AverageMagnetism()).To(Equal(-1.0))
			s, _ = New(6, WithLattice(board), WithSeed(1))
			Expect(s.AverageMagnetism()).To(Equal(0.0))
		})

		It("should be idempotent", func() {
			s, _ := New(12, WithTemperature(800), WithSeed(11))
			for i := 0; i < 200; i++ {
				s.Update()
			}
			steps := s.Steps()
			Expect(s.Energy()).To(Equal(s.Energy()))
			Expect(s.AverageMagnetism()).To(Equal(s.AverageMagnetism()))
			Expect(s.Steps()).To(Equal(steps))
		})
	})

	Context("when updating with a scripted source", func() {
		var (
			mockCtrl *gomock.Controller
			src      *MockSource
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			src = NewMockSource(mockCtrl)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		newScripted := func(l *Lattice, t float64) *Simulator {
			s, err := New(l.Size(), WithLattice(l), WithTemperature(t), WithSource(src))
			Expect(err).ToNot(HaveOccurred())
			return s
		}

		It("should draw row, column, then the uniform value", func() {
			l, _ := UniformLattice(4, Up)
			s := newScripted(l, 300)

			gomock.InOrder(
				src.EXPECT().Intn(4).Return(1),
				src.EXPECT().Intn(4).Return(2),
				src.EXPECT().Float64().Return(0.5),
			)

			f := s.Update()
			Expect(f.Row).To(Equal(1))
			Expect(f.Col).To(Equal(2))
			Expect(f.DeltaE).To(BeNumerically("~", 8*Coupling, 1e-12))
		})

		It("should reject an unlikely uphill flip", func() {
			l, _ := UniformLattice(4, Up)
			s := newScripted(l, 300)

			src.EXPECT().Intn(4).Return(1).Times(2)
			src.EXPECT().Float64().Return(0.5)

			f := s.Update()
			Expect(f.Accepted).To(BeFalse())
			Expect(s.Spin(1, 1)).To(Equal(Up))
			Expect(s.Steps()).To(Equal(1))
			Expect(s.Accepted()).To(Equal(0))
		})

		It("should accept an uphill flip when the draw is small enough", func() {
			l, _ := UniformLattice(4, Up)
			s := newScripted(l, 300)

			// exp(-8J/(kB·300)) ≈ 4.75e-6
			src.EXPECT().Intn(4).Return(3).Times(2)
			src.EXPECT().Float64().Return(1e-7)

			f := s.Update()
			Expect(f.Accepted).To(BeTrue())
			Expect(s.Spin(3, 3)).To(Equal(Down))
			Expect(s.Accepted()).To(Equal(1))
		})

		It("should always accept a downhill flip", func() {
			l, _ := CheckerboardLattice(4)
			s := newScripted(l, 1e-6)

			src.EXPECT().Intn(4).Return(0).Times(2)
			src.EXPECT().Float64().Return(0.999999)

			f := s.Update()
			Expect(f.DeltaE).To(BeNumerically("<", 0))
			Expect(f.Accepted).To(BeTrue())
			Expect(s.Spin(0, 0)).To(Equal(Down))
		})

		It("should always accept a neutral flip", func() {
			l, _ := UniformLattice(4, Up)
			l.flip(1, 0)
			l.flip(0, 1)
			s := newScripted(l, 1e-6)

			src.EXPECT().Intn(4).Return(0).Times(2)
			src.EXPECT().Float64().Return(0.999999)

			f := s.Update()
			Expect(f.DeltaE).To(BeZero())
			Expect(f.Accepted).To(BeTrue())
		})

		It("should wrap neighbours around the edges", func() {
			l, _ := UniformLattice(3, Up)
			l.flip(2, 0)
			l.flip(0, 2)
			s := newScripted(l, 300)

			// (0,0) sees (2,0) and (0,2) through the boundary.
			src.EXPECT().Intn(3).Return(0).Times(2)
			src.EXPECT().Float64().Return(0.5)

			f := s.Update()
			Expect(f.DeltaE).To(BeZero())
		})
	})

	Context("when running many updates", func() {
		It("should keep every spin at -1 or +1", func() {
			s, _ := New(10, WithTemperature(1043), WithSeed(5))
			for i := 0; i < 2000; i++ {
				s.Update()
				if i%100 == 0 {
					Expect(s.Snapshot().Valid()).To(BeTrue())
				}
			}
			Expect(s.Snapshot().Valid()).To(BeTrue())
		})

		It("should count every attempt", func() {
			s, _ := New(10, WithTemperature(1043), WithSeed(5))
			for i := 0; i < 100; i++ {
				s.Update()
			}
			start := s.Steps()
			for i := 0; i < 357; i++ {
				s.Update()
			}
			Expect(s.Steps()).To(Equal(start + 357))
			Expect(s.AverageMagnetism()).To(And(
				BeNumerically(">=", -1), BeNumerically("<=", 1)))
		})

		It("should almost never go uphill near zero temperature", func() {
			s, _ := New(20, WithTemperature(1e-6), WithSource(rand.New(rand.NewSource(42))))
			uphill, accepted := 0, 0
			for i := 0; i < 20000; i++ {
				f := s.Update()
				if f.DeltaE > 0 {
					uphill++
					if f.Accepted {
						accepted++
					}
				}
			}
			Expect(uphill).To(BeNumerically(">", 0))
			Expect(float64(accepted) / float64(uphill)).To(BeNumerically("<", 0.01))
		})

		It("should accept nearly everything at very high temperature", func() {
			s, _ := New(20, WithTemperature(1e6), WithSource(rand.New(rand.NewSource(42))))
			accepted := 0
			const trials = 10000
			for i := 0; i < trials; i++ {
				if s.Update().Accepted {
					accepted++
				}
			}
			Expect(float64(accepted) / trials).To(BeNumerically(">", 0.95))
			Expect(s.Accepted()).To(Equal(accepted))
		})

		It("should run the iron example end to end", func() {
			s, err := New(20, WithTemperature(1043), WithSeed(2024))
			Expect(err).ToNot(HaveOccurred())
			for i := 0; i < 1000; i++ {
				s.Update()
			}
			Expect(s.Steps()).To(Equal(1000))
			Expect(s.Snapshot().Valid()).To(BeTrue())
		})

		It("should be reproducible for a fixed seed", func() {
			a, _ := New(16, WithTemperature(900), WithSeed(99))
			b, _ := New(16, WithTemperature(900), WithSeed(99))
			for i := 0; i < 500; i++ {
				Expect(a.Update()).To(Equal(b.Update()))
			}
			Expect(a.Snapshot().Spins()).To(Equal(b.Snapshot().Spins()))
		})
	})
})
