// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:   2-point linear interpolation
//   - [Hermite4]:  4-point cubic Hermite (good default)
//   - [Lagrange4]: 4-point cubic Lagrange
//
// The [Mode] enum and the [delay.Line] type allow selecting the
// interpolation algorithm at construction time. Linear interpolation is
// audibly dull under fast delay modulation, so modulated delays should
// stay on [Hermite].
package interp
