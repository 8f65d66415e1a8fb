package parallax_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/parallax"
	"github.com/san-kum/parallax/internal/transform"
)

var _ = Describe("SectionSpec", func() {
	summary := parallax.SectionSpec{
		Name:      "summary",
		Threshold: 500,
		Speed:     -0.1,
		Scale:     &parallax.ScaleDecay{Start: 1500, Distance: 1500, Floor: 0.85},
	}

	It("holds still up to the threshold", func() {
		for s := 0.0; s <= 500; s += 50 {
			Expect(summary.Transform(at(s, input.Unset())).TranslateY).To(BeZero())
		}
	})

	It("ramps linearly past the threshold", func() {
		d := summary.Transform(at(2000, input.Unset()))
		Expect(d.TranslateY).To(BeNumerically("~", -150, 1e-9))
	})

	It("is strictly increasing past the threshold for a positive speed", func() {
		rising := parallax.SectionSpec{Name: "rising", Threshold: 300, Speed: 0.05}
		prev := rising.TranslateY(300)
		Expect(prev).To(BeZero())
		for s := 301.0; s < 5000; s += 97 {
			cur := rising.TranslateY(s)
			Expect(cur).To(BeNumerically(">", prev))
			prev = cur
		}
	})

	It("decays to the floor and no further", func() {
		Expect(summary.Transform(at(1500, input.Unset())).Scale).To(Equal(1.0))
		Expect(summary.Transform(at(1650, input.Unset())).Scale).To(BeNumerically("~", 0.9, 1e-12))
		Expect(summary.Transform(at(2250, input.Unset())).Scale).To(Equal(0.85))
		Expect(summary.Transform(at(3000, input.Unset())).Scale).To(BeNumerically("~", 0.85, 1e-12))
		Expect(summary.Transform(at(1e9, input.Unset())).Scale).To(Equal(0.85))
	})

	It("keeps scale at or above the floor for any offset", func() {
		s := parallax.SectionSpec{Name: "c", Scale: &parallax.ScaleDecay{Start: 8500, Distance: 1500, Floor: 0.75}}
		for _, off := range []float64{0, 8500, 9000, 10000, 10_000, 50_000, 1e12} {
			Expect(s.Transform(at(off, input.Unset())).Scale).To(BeNumerically(">=", 0.75))
		}
	})

	It("nudges horizontally with its own threshold", func() {
		s := parallax.SectionSpec{Name: "n", Threshold: 500, Speed: -0.1, Nudge: &parallax.Nudge{Threshold: 500, Speed: 0.05}}
		Expect(s.Transform(at(400, input.Unset())).TranslateX).To(BeZero())
		Expect(s.Transform(at(1500, input.Unset())).TranslateX).To(BeNumerically("~", 50, 1e-9))
	})

	It("caps the tilt without a lower clamp", func() {
		s := parallax.SectionSpec{Name: "t", Tilt: &parallax.Tilt{Axis: parallax.AxisY, Threshold: 1100, Rate: 0.01, Max: 5}}
		Expect(s.Transform(at(0, input.Unset())).RotateY).To(BeNumerically("~", -11, 1e-9))
		Expect(s.Transform(at(1300, input.Unset())).RotateY).To(BeNumerically("~", 2, 1e-9))
		Expect(s.Transform(at(9000, input.Unset())).RotateY).To(Equal(5.0))
		Expect(s.Transform(at(9000, input.Unset())).Includes(transform.RotateX)).To(BeFalse())
	})

	It("renders the perspective tilt first", func() {
		s := parallax.SectionSpec{Name: "p", Tilt: &parallax.Tilt{Axis: parallax.AxisX, Threshold: 600, Rate: -0.01, Max: 5, Perspective: 1000}}
		Expect(s.Transform(at(0, input.Unset())).CSS()).To(Equal("perspective(1000px) translateY(0px) rotateX(5deg)"))
	})

	It("is a pure function of its inputs", func() {
		in := at(2718, input.At(300, 200))
		Expect(summary.Transform(in)).To(Equal(summary.Transform(in)))
	})

	DescribeTable("validation",
		func(s parallax.SectionSpec, ok bool) {
			if ok {
				Expect(s.Validate()).To(Succeed())
			} else {
				Expect(s.Validate()).To(HaveOccurred())
			}
		},
		Entry("plain", parallax.SectionSpec{Name: "a", Threshold: 100, Speed: 0.1}, true),
		Entry("with scale", summary, true),
		Entry("zero decay distance", parallax.SectionSpec{Name: "b", Scale: &parallax.ScaleDecay{Distance: 0, Floor: 0.8}}, false),
		Entry("zero floor", parallax.SectionSpec{Name: "c", Scale: &parallax.ScaleDecay{Distance: 10, Floor: 0}}, false),
		Entry("floor above one", parallax.SectionSpec{Name: "d", Scale: &parallax.ScaleDecay{Distance: 10, Floor: 1.5}}, false),
		Entry("bad tilt axis", parallax.SectionSpec{Name: "e", Tilt: &parallax.Tilt{Axis: "z"}}, false),
		Entry("missing name", parallax.SectionSpec{}, false),
	)
})
