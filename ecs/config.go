package ecs

// Config holds process-wide defaults for Worlds created without explicit
// WorldOptions, mirroring the teacher's package-level Config/Factory idiom.
var Config = config{
	DefaultEntityCapacity: 256,
}

type config struct {
	// DefaultEntityCapacity is applied by NewWorldWithDefaults; it has no
	// effect on NewWorld, which starts with no preallocation.
	DefaultEntityCapacity int
}

// NewWorldWithDefaults builds a World preallocated per the package-level
// Config, then applies any additional opts.
func NewWorldWithDefaults(opts ...WorldOption) *World {
	all := append([]WorldOption{WithInitialEntityCapacity(Config.DefaultEntityCapacity)}, opts...)
	return NewWorld(all...)
}
