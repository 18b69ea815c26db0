// constants.go - physical and table constants shared across the mesh

package dwm

const (
	// SpeedOfSound is the wave speed used to derive junction density, in m/s.
	SpeedOfSound float32 = 343.0

	// MaxSources bounds the fixed-capacity SourceTable shared between an
	// upstream injector and the realtime driver.
	MaxSources = 32

	// BlockSize is the number of samples processed per audio block by
	// RealtimeDriver and de-interleaved into each SourceRecord's buffer.
	BlockSize = 512
)
