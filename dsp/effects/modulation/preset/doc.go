// Package preset holds the factory settings shipped for each modulation
// variant.
package preset
