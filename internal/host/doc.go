// Package host drives a modulation engine outside a plugin host: offline
// over decoded files with scheduled automation, or live on the default
// duplex audio device.
package host
