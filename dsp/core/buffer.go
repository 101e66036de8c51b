package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Planes allocates channels planar buffers of frames samples each.
func Planes(channels, frames int) [][]float64 {
	if channels <= 0 {
		return nil
	}

	frames = max(frames, 0)
	backing := make([]float64, channels*frames)

	planes := make([][]float64, channels)
	for c := range planes {
		planes[c] = backing[c*frames : (c+1)*frames : (c+1)*frames]
	}

	return planes
}

// Deinterleave splits interleaved frames into planar dst and returns the
// number of frames written. dst planes bound the frame count.
func Deinterleave(dst [][]float64, src []float64) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}

	frames := len(src) / channels
	for _, plane := range dst {
		frames = min(frames, len(plane))
	}

	for f := range frames {
		base := f * channels
		for c, plane := range dst {
			plane[f] = src[base+c]
		}
	}

	return frames
}

// Interleave merges the first frames samples of planar src into dst and
// returns the number of frames written.
func Interleave(dst []float64, src [][]float64, frames int) int {
	channels := len(src)
	if channels == 0 {
		return 0
	}

	frames = min(frames, len(dst)/channels)
	for _, plane := range src {
		frames = min(frames, len(plane))
	}

	for f := range frames {
		base := f * channels
		for c, plane := range src {
			dst[base+c] = plane[f]
		}
	}

	return max(frames, 0)
}
