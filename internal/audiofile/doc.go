// Package audiofile decodes audio files into float PCM and writes rendered
// output back as WAV.
//
// Decoders are looked up by format name (the file extension) in a
// Registry. Every decoder yields a Source of interleaved float32 samples in
// [-1, 1]; ReadAll collects a Source into a Clip the hosts can render.
package audiofile
