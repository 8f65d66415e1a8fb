package parallax_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/parallax/internal/input"
	"github.com/san-kum/parallax/internal/parallax"
	"github.com/san-kum/parallax/internal/transform"
)

var viewport = parallax.Viewport{Width: 1440, Height: 900}

func at(scroll float64, p input.Pointer) parallax.Inputs {
	return parallax.Inputs{Scroll: scroll, Pointer: p, Viewport: viewport}
}

var _ = Describe("LayerSpec", func() {
	Describe("scroll-driven layers", func() {
		layer := parallax.ScrollLayer("glow", 0.1, 0.15).WithScaleRate(0.0003)

		It("translates and scales linearly with scroll", func() {
			d := layer.Transform(at(1000, input.Unset()))
			Expect(d.TranslateX).To(BeNumerically("~", 100, 1e-9))
			Expect(d.TranslateY).To(BeNumerically("~", 150, 1e-9))
			Expect(d.Scale).To(BeNumerically("~", 1.3, 1e-9))
			Expect(d.Includes(transform.Rotate)).To(BeFalse())
		})

		It("is the plain translate at the top of the page", func() {
			d := layer.Transform(at(0, input.Unset()))
			Expect(d.CSS()).To(Equal("translate(0px, 0px) scale(1)"))
		})

		It("never scales below 1 for a non-negative rate", func() {
			prev := 1.0
			for s := 0.0; s <= 20000; s += 250 {
				sc := layer.Transform(at(s, input.Unset())).Scale
				Expect(sc).To(BeNumerically(">=", 1))
				Expect(sc).To(BeNumerically(">=", prev))
				prev = sc
			}
		})

		It("rotates only when a rotation rate is configured", func() {
			spun := parallax.ScrollLayer("spin", -0.2, 0.25).WithRotateRate(0.05)
			d := spun.Transform(at(1000, input.Unset()))
			Expect(d.Rotate).To(BeNumerically("~", 50, 1e-9))
			Expect(d.Includes(transform.Scale)).To(BeFalse())
			Expect(d.TranslateX).To(BeNumerically("~", -200, 1e-9))
		})

		It("ignores the pointer", func() {
			a := layer.Transform(at(500, input.Unset()))
			b := layer.Transform(at(500, input.At(10, 10)))
			Expect(a).To(Equal(b))
		})

		It("restricts translation to the configured axis", func() {
			grid := parallax.ScrollLayer("grid", 0, 0.1).WithAxes(parallax.AxisY)
			Expect(grid.Transform(at(300, input.Unset())).CSS()).To(Equal("translateY(30px)"))
		})
	})

	Describe("pointer-driven layers", func() {
		orb := parallax.PointerLayer("orb", 0.02)

		It("is exactly the identity before the first pointer move", func() {
			for _, s := range []float64{0, 1, 1000, 1e6} {
				d := orb.Transform(at(s, input.Unset()))
				Expect(d.IsIdentity()).To(BeTrue())
				Expect(d.CSS()).To(BeEmpty())
			}
		})

		It("does not treat a real pointer at (0, 0) as unset", func() {
			d := orb.Transform(at(0, input.At(0, 0)))
			Expect(d.IsIdentity()).To(BeFalse())
			Expect(d.TranslateX).To(BeNumerically("~", -14.4, 1e-9))
			Expect(d.TranslateY).To(BeNumerically("~", -9, 1e-9))
		})

		It("has zero displacement at the viewport centre", func() {
			d := orb.Transform(at(700, input.At(720, 450)))
			Expect(d.TranslateX).To(BeZero())
			Expect(d.TranslateY).To(BeZero())
		})

		It("drifts opposite to the pointer for negative speed", func() {
			d := parallax.PointerLayer("orb2", -0.015).Transform(at(0, input.At(1020, 450)))
			Expect(d.TranslateX).To(BeNumerically("~", -4.5, 1e-9))
			Expect(d.TranslateY).To(BeZero())
		})
	})

	DescribeTable("validation",
		func(l parallax.LayerSpec, ok bool) {
			err := l.Validate()
			if ok {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(HaveOccurred())
				Expect(parallax.Error.Has(err)).To(BeTrue())
			}
		},
		Entry("scroll layer", parallax.ScrollLayer("a", 0.1, 0.2), true),
		Entry("pointer layer", parallax.PointerLayer("b", 0.02), true),
		Entry("missing name", parallax.ScrollLayer("", 0.1, 0.2), false),
		Entry("pointer with scale", parallax.PointerLayer("c", 0.02).WithScaleRate(0.1), false),
		Entry("unknown drive", parallax.LayerSpec{Name: "d", Drive: "tilt"}, false),
		Entry("scroll with pointer speed", parallax.LayerSpec{Name: "e", Speed: 0.1}, false),
		Entry("bad axes", parallax.ScrollLayer("f", 0, 0).WithAxes("z"), false),
	)
})
