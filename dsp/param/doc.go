// Package param provides control values that can change smoothly while
// audio is rendering.
//
// A [Ramped] value is set either instantly or over a number of frames and
// is then sampled once per rendered frame with FrameValue. All methods are
// allocation-free and are intended to be called from the render thread only.
package param
