package parameter

// Stage recipe defaults
const (
	// Random monster group sizes, each group rolls a count in [Min, Max]
	FreeMonsterMin   = 1
	FreeMonsterMax   = 2
	BoxMonsterMin    = 1
	BoxMonsterMax    = 2
	BossMonsterMin   = 1
	BossMonsterMax   = 1
	RipperMonsterMin = 3
	RipperMonsterMax = 3

	// Obstacles, walls and sticky boxes are "up to" (occupied rolls are skipped)
	WallCount      = 25
	StickyBoxCount = 5

	// BoxCount normal boxes are always placed, retrying until an empty cell is found
	BoxCount = 100
)

// Wall Clustering Noise
const (
	// WallNoiseAlpha is the perlin persistence (smoothing)
	WallNoiseAlpha = 2.0
	// WallNoiseBeta is the perlin frequency multiplier
	WallNoiseBeta = 2.0
	// WallNoiseOctaves is the perlin octave count
	WallNoiseOctaves = 3
	// WallNoiseScale maps cell coordinates into noise space
	WallNoiseScale = 0.15
	// WallNoiseThreshold keeps cells whose normalized noise is at least this value
	WallNoiseThreshold = 0.55
)
