package thermo

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("State", func() {
	var (
		mockCtrl *gomock.Controller
		backend  *MockBackend
		s        *State
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		backend = NewMockBackend(mockCtrl)
		s = NewState("1", "Water", backend)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should start unfixed", func() {
		Expect(s.Fixed()).To(BeFalse())
		Expect(s.X()).To(Equal(-1.0))
		_, ok := s.Quality()
		Expect(ok).To(BeFalse())
	})

	It("should pass quality to the backend as Q", func() {
		backend.EXPECT().
			Props(gomock.Any(), Quality, 0.5, Pressure, 1e5, "Water").
			Return(1.0, nil).
			Times(5)
		backend.EXPECT().
			Phase(Quality, 0.5, Pressure, 1e5, "Water").
			Return(PhaseTwoPhase, nil)

		err := s.Fix("x", 0.5, Pressure, 1e5)

		Expect(err).ToNot(HaveOccurred())
		Expect(s.Fixed()).To(BeTrue())
		Expect(s.P()).To(Equal(1e5))
		x, ok := s.Quality()
		Expect(ok).To(BeTrue())
		Expect(x).To(Equal(0.5))
	})

	It("should invert specific volume to density", func() {
		backend.EXPECT().
			Props(gomock.Any(), Density, 2.0, Temperature, 400.0, "Water").
			Return(3.0, nil).
			Times(5)
		backend.EXPECT().
			Phase(Density, 2.0, Temperature, 400.0, "Water").
			Return(PhaseSuperheatedVapor, nil)

		err := s.Fix(Volume, 0.5, Temperature, 400)

		Expect(err).ToNot(HaveOccurred())
		Expect(s.D()).To(Equal(2.0))
		Expect(s.V()).To(Equal(0.5))
		Expect(s.T()).To(Equal(400.0))
		Expect(s.X()).To(Equal(-1.0), "quality outside the dome")
	})

	It("should expose every core property through Get", func() {
		backend.EXPECT().Props(Density, Temperature, 400.0, Pressure, 1e5, "Water").Return(0.6, nil)
		backend.EXPECT().Props(InternalEnergy, Temperature, 400.0, Pressure, 1e5, "Water").Return(2.5e6, nil)
		backend.EXPECT().Props(Enthalpy, Temperature, 400.0, Pressure, 1e5, "Water").Return(2.7e6, nil)
		backend.EXPECT().Props(Entropy, Temperature, 400.0, Pressure, 1e5, "Water").Return(7.5e3, nil)
		backend.EXPECT().Props(Quality, Temperature, 400.0, Pressure, 1e5, "Water").Return(-1.0, nil)
		backend.EXPECT().Phase(Temperature, 400.0, Pressure, 1e5, "Water").Return(PhaseSuperheatedVapor, nil)

		Expect(s.Fix(Temperature, 400, Pressure, 1e5)).To(Succeed())

		for prop, want := range map[Property]float64{
			Temperature: 400, Pressure: 1e5, Density: 0.6, Volume: 1 / 0.6,
			InternalEnergy: 2.5e6, Enthalpy: 2.7e6, Entropy: 7.5e3, Quality: -1,
		} {
			got, err := s.Get(prop)
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(BeNumerically("~", want, 1e-12), string(prop))
		}
		Expect(s.Phase()).To(Equal(PhaseSuperheatedVapor))
	})

	It("should wrap backend failures in UnresolvedStateError", func() {
		backend.EXPECT().
			Props(gomock.Any(), Pressure, 1e3, Entropy, 1e6, "Water").
			Return(0.0, errors.New("no convergence"))

		err := s.Fix(Pressure, 1e3, Entropy, 1e6)

		Expect(errors.Is(err, ErrUnresolvedState)).To(BeTrue())
		var ue *UnresolvedStateError
		Expect(errors.As(err, &ue)).To(BeTrue())
		Expect(ue.State).To(Equal("1"))
		Expect(ue.Name1).To(Equal(Pressure))
		Expect(ue.Value2).To(Equal(1e6))
		Expect(s.Fixed()).To(BeFalse())
	})

	It("should reject non-finite backend values", func() {
		backend.EXPECT().
			Props(gomock.Any(), Pressure, 1e5, Enthalpy, 1e6, "Water").
			Return(math.NaN(), nil).
			AnyTimes()
		backend.EXPECT().
			Phase(Pressure, 1e5, Enthalpy, 1e6, "Water").
			Return(PhaseTwoPhase, nil).
			AnyTimes()

		err := s.Fix(Pressure, 1e5, Enthalpy, 1e6)

		Expect(errors.Is(err, ErrUnresolvedState)).To(BeTrue())
		Expect(s.Fixed()).To(BeFalse())
	})

	It("should keep backend configuration errors as configuration errors", func() {
		backend.EXPECT().
			Props(gomock.Any(), Temperature, 373.15, Pressure, 101325.0, "Water").
			Return(0.0, Configf("", "dependent pair"))

		err := s.Fix(Temperature, 373.15, Pressure, 101325)

		Expect(errors.Is(err, ErrConfiguration)).To(BeTrue())
		Expect(errors.Is(err, ErrUnresolvedState)).To(BeFalse())
		var ce *ConfigurationError
		Expect(errors.As(err, &ce)).To(BeTrue())
		Expect(ce.Subject).To(Equal("1"))
	})

	DescribeTable("should reject dependent or malformed pairs without calling the backend",
		func(n1 Property, v1 float64, n2 Property, v2 float64) {
			err := s.Fix(n1, v1, n2, v2)
			Expect(errors.Is(err, ErrConfiguration)).To(BeTrue())
			Expect(s.Fixed()).To(BeFalse())
		},
		Entry("temperature and interior quality", Temperature, 373.15, Quality, 0.5),
		Entry("temperature and interior x", Temperature, 373.15, Property("x"), 0.3),
		Entry("same property twice", Pressure, 1e5, Pressure, 2e5),
		Entry("quality above one", Pressure, 1e5, Quality, 1.2),
		Entry("negative volume", Volume, -1.0, Pressure, 1e5),
		Entry("unknown property", Property("Z"), 1.0, Pressure, 1e5),
		Entry("non-finite value", Pressure, math.Inf(1), Enthalpy, 1e6),
	)

	It("should refuse to be fixed twice", func() {
		backend.EXPECT().Props(gomock.Any(), Temperature, 400.0, Pressure, 1e5, "Water").Return(1.0, nil).Times(5)
		backend.EXPECT().Phase(Temperature, 400.0, Pressure, 1e5, "Water").Return(PhaseSuperheatedVapor, nil)
		Expect(s.Fix(Temperature, 400, Pressure, 1e5)).To(Succeed())

		err := s.Fix(Temperature, 500, Pressure, 1e5)

		Expect(errors.Is(err, ErrConfiguration)).To(BeTrue())
		Expect(s.T()).To(Equal(400.0))
	})
})

var _ = Describe("ParseProperty", func() {
	DescribeTable("should accept the usual spellings",
		func(in string, want Property) {
			got, err := ParseProperty(in)
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("x", "x", Quality),
		Entry("q", "q", Quality),
		Entry("rho", "rho", Density),
		Entry("v", "v", Volume),
		Entry("padded T", " t ", Temperature),
	)

	It("should reject unknown names", func() {
		_, err := ParseProperty("enthalpy?")
		Expect(errors.Is(err, ErrConfiguration)).To(BeTrue())
	})
})

var _ = Describe("SaturationTemperature", func() {
	var (
		mockCtrl *gomock.Controller
		backend  *MockBackend
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		backend = NewMockBackend(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should query the saturated liquid line at pressure", func() {
		backend.EXPECT().Props(Temperature, Pressure, 4e6, Quality, 0.0, "Water").Return(523.5, nil)

		t, err := SaturationTemperature(backend, "Water", 4e6)

		Expect(err).ToNot(HaveOccurred())
		Expect(t).To(Equal(523.5))
	})

	It("should wrap a backend failure as unresolved", func() {
		backend.EXPECT().Props(Temperature, Pressure, 30e6, Quality, 0.0, "Water").Return(0.0, errors.New("above critical"))

		_, err := SaturationTemperature(backend, "Water", 30e6)

		Expect(errors.Is(err, ErrUnresolvedState)).To(BeTrue())
		var ue *UnresolvedStateError
		Expect(errors.As(err, &ue)).To(BeTrue())
		Expect(ue.Name1).To(Equal(Pressure))
	})
})
