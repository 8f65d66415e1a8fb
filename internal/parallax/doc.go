// Package parallax maps scroll and pointer input to per-element transform
// descriptors.
//
// Two kinds of element are supported:
//
//   - [LayerSpec]: decorative background layers. Scroll-driven layers
//     translate linearly with the scroll offset and may scale or rotate;
//     pointer-driven layers drift toward the pointer relative to the
//     viewport centre and render the identity until the pointer is set.
//   - [SectionSpec]: content sections whose motion starts past a scroll
//     threshold. Every threshold term is clamped with max(0, ...) and every
//     scale term with max(floor, ...), so motion stays monotonic and bounded
//     as the offset grows.
//
// Every function here is pure: identical [Inputs] and spec always yield an
// identical descriptor and nothing else changes.
//
// Background layer scale and rotation are deliberately left unclamped.
// Realistic scroll ranges keep them small; the Unbounded metric reports
// samples that leave a sane range instead of clamping here.
package parallax
