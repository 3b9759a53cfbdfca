package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/core"
	"github.com/lixenwraith/warehouse/parameter"
)

// EnvConfigPath names the config file when no -config flag is given
const EnvConfigPath = "WAREHOUSE_CONFIG"

// Config is the root configuration, every field defaults to the parameter package
type Config struct {
	// Seed drives every random decision, 0 lets the caller pick one
	Seed uint64 `yaml:"seed"`

	Stage     StageConfig     `yaml:"stage"`
	Timing    TimingConfig    `yaml:"timing"`
	Monsters  MonstersConfig  `yaml:"monsters"`
	Obstacles ObstaclesConfig `yaml:"obstacles"`
	Rules     RulesConfig     `yaml:"rules"`
}

type StageConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	PlayerX int `yaml:"player_x"`
	PlayerY int `yaml:"player_y"`
}

type TimingConfig struct {
	Tick time.Duration `yaml:"tick"`

	// Box monster camouflage cycle
	BoxActive    time.Duration `yaml:"box_active"`
	BoxToBox     time.Duration `yaml:"box_to_box"`
	BoxHidden    time.Duration `yaml:"box_hidden"`
	BoxToMonster time.Duration `yaml:"box_to_monster"`

	// Random walk redirect interval bounds, in ticks
	RandomTimerMin int `yaml:"random_timer_min"`
	RandomTimerMax int `yaml:"random_timer_max"`
}

// FixedMonster is a monster placed at a known cell with a known heading
type FixedMonster struct {
	Kind      string `yaml:"kind"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction string `yaml:"direction"`
	Delay     int    `yaml:"delay"`
}

// MonsterGroup rolls a count in [Min, Max] and places that many at random cells
type MonsterGroup struct {
	Kind  string `yaml:"kind"`
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
	Delay int    `yaml:"delay"`
}

type MonstersConfig struct {
	Fixed  []FixedMonster `yaml:"fixed"`
	Groups []MonsterGroup `yaml:"groups"`

	// BoxPolicy is "fixed" or "random", the walk of a box monster while in monster form
	BoxPolicy string `yaml:"box_policy"`
	// Compass4 restricts random walkers to orthogonal directions
	Compass4 bool `yaml:"compass4"`
}

type NoiseConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
	Scale     float64 `yaml:"scale"`
	Threshold float64 `yaml:"threshold"`
}

type ObstaclesConfig struct {
	Walls       int         `yaml:"walls"`
	StickyBoxes int         `yaml:"sticky_boxes"`
	Boxes       int         `yaml:"boxes"`
	WallNoise   NoiseConfig `yaml:"wall_noise"`
}

type RulesConfig struct {
	// MonstersPushBoxes lets monsters push box chains like the player
	MonstersPushBoxes bool `yaml:"monsters_push_boxes"`
	// StickyImmune lists monster kinds never paralyzed by sticky boxes
	StickyImmune []string `yaml:"sticky_immune"`
}

// Default returns the stock stage recipe
func Default() *Config {
	return &Config{
		Stage: StageConfig{
			Width:  parameter.DefaultStageWidth,
			Height: parameter.DefaultStageHeight,
		},
		Timing: TimingConfig{
			Tick:           parameter.GameUpdateInterval,
			BoxActive:      parameter.BoxMonsterActiveDuration,
			BoxToBox:       parameter.BoxMonsterToBoxDuration,
			BoxHidden:      parameter.BoxMonsterBoxDuration,
			BoxToMonster:   parameter.BoxMonsterToMonsterDuration,
			RandomTimerMin: parameter.RandomTimerMin,
			RandomTimerMax: parameter.RandomTimerMax,
		},
		Monsters: MonstersConfig{
			Fixed: []FixedMonster{
				{Kind: "monster_normal", X: 7, Y: 4, Direction: "se", Delay: parameter.NormalMonsterDelayA},
				{Kind: "monster_normal", X: 4, Y: 10, Direction: "se", Delay: parameter.NormalMonsterDelayB},
				{Kind: "monster_normal", X: 5, Y: 19, Direction: "se", Delay: parameter.NormalMonsterDelayC},
			},
			Groups: []MonsterGroup{
				{Kind: "monster_free", Min: parameter.FreeMonsterMin, Max: parameter.FreeMonsterMax, Delay: parameter.FreeMonsterDelay},
				{Kind: "monster_box", Min: parameter.BoxMonsterMin, Max: parameter.BoxMonsterMax, Delay: parameter.BoxMonsterDelay},
				{Kind: "monster_boss", Min: parameter.BossMonsterMin, Max: parameter.BossMonsterMax, Delay: parameter.BossMonsterDelay},
				{Kind: "monster_ripper", Min: parameter.RipperMonsterMin, Max: parameter.RipperMonsterMax, Delay: parameter.RipperMonsterDelay},
			},
			BoxPolicy: "random",
		},
		Obstacles: ObstaclesConfig{
			Walls:       parameter.WallCount,
			StickyBoxes: parameter.StickyBoxCount,
			Boxes:       parameter.BoxCount,
			WallNoise: NoiseConfig{
				Enabled:   true,
				Alpha:     parameter.WallNoiseAlpha,
				Beta:      parameter.WallNoiseBeta,
				Octaves:   parameter.WallNoiseOctaves,
				Scale:     parameter.WallNoiseScale,
				Threshold: parameter.WallNoiseThreshold,
			},
		},
		Rules: RulesConfig{
			MonstersPushBoxes: true,
		},
	}
}

// Load reads a YAML file over Default()
// If path is empty, WAREHOUSE_CONFIG is tried; with neither set the defaults are returned
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Stage.Width <= 0 || c.Stage.Height <= 0 {
		errs = append(errs, fmt.Errorf("stage size %dx%d must be positive", c.Stage.Width, c.Stage.Height))
	}
	if c.Stage.PlayerX < 0 || c.Stage.PlayerX >= c.Stage.Width || c.Stage.PlayerY < 0 || c.Stage.PlayerY >= c.Stage.Height {
		errs = append(errs, fmt.Errorf("player start (%d,%d) outside stage", c.Stage.PlayerX, c.Stage.PlayerY))
	}

	t := c.Timing
	if t.Tick <= 0 {
		errs = append(errs, errors.New("timing.tick must be positive"))
	}
	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"box_active", t.BoxActive},
		{"box_to_box", t.BoxToBox},
		{"box_hidden", t.BoxHidden},
		{"box_to_monster", t.BoxToMonster},
	} {
		if d.val <= 0 {
			errs = append(errs, fmt.Errorf("timing.%s must be positive", d.name))
		}
	}
	if t.RandomTimerMin <= 0 || t.RandomTimerMax < t.RandomTimerMin {
		errs = append(errs, fmt.Errorf("random timer range [%d,%d] invalid", t.RandomTimerMin, t.RandomTimerMax))
	}

	for i, m := range c.Monsters.Fixed {
		if k, ok := component.ParseKind(m.Kind); !ok || !k.IsMonster() {
			errs = append(errs, fmt.Errorf("monsters.fixed[%d]: %q is not a monster kind", i, m.Kind))
		}
		if d, ok := core.ParseDirection(m.Direction); !ok || d == core.DirNone {
			errs = append(errs, fmt.Errorf("monsters.fixed[%d]: bad direction %q", i, m.Direction))
		}
		if m.Delay <= 0 {
			errs = append(errs, fmt.Errorf("monsters.fixed[%d]: delay must be positive", i))
		}
	}
	for i, g := range c.Monsters.Groups {
		if k, ok := component.ParseKind(g.Kind); !ok || !k.IsMonster() {
			errs = append(errs, fmt.Errorf("monsters.groups[%d]: %q is not a monster kind", i, g.Kind))
		}
		if g.Min < 0 || g.Max < g.Min {
			errs = append(errs, fmt.Errorf("monsters.groups[%d]: count range [%d,%d] invalid", i, g.Min, g.Max))
		}
		if g.Delay <= 0 {
			errs = append(errs, fmt.Errorf("monsters.groups[%d]: delay must be positive", i))
		}
	}
	if _, err := ParsePolicy(c.Monsters.BoxPolicy); err != nil {
		errs = append(errs, err)
	}

	o := c.Obstacles
	if o.Walls < 0 || o.StickyBoxes < 0 || o.Boxes < 0 {
		errs = append(errs, errors.New("obstacle counts must not be negative"))
	}
	// Boxes retry until placed, they need guaranteed room next to the player and every monster slot
	if cells := c.Stage.Width * c.Stage.Height; o.Boxes >= cells-c.maxActors() {
		errs = append(errs, fmt.Errorf("%d boxes cannot fit a %d cell stage", o.Boxes, cells))
	}
	if o.WallNoise.Enabled && (o.WallNoise.Octaves <= 0 || o.WallNoise.Scale <= 0) {
		errs = append(errs, errors.New("wall_noise octaves and scale must be positive"))
	}

	for _, name := range c.Rules.StickyImmune {
		if k, ok := component.ParseKind(name); !ok || !k.IsMonster() {
			errs = append(errs, fmt.Errorf("rules.sticky_immune: %q is not a monster kind", name))
		}
	}

	return errors.Join(errs...)
}

// maxActors is the largest number of non-box actors a reset can place
func (c *Config) maxActors() int {
	n := 1 + len(c.Monsters.Fixed) + c.Obstacles.Walls + c.Obstacles.StickyBoxes
	for _, g := range c.Monsters.Groups {
		n += g.Max
	}
	return n
}

// Ticks converts a duration to a tick count, rounding up, at least 1
func (c *Config) Ticks(d time.Duration) int {
	if c.Timing.Tick <= 0 {
		return 1
	}
	return max(1, int((d+c.Timing.Tick-1)/c.Timing.Tick))
}

// ParsePolicy maps box_policy to a monster policy, empty means random
func ParsePolicy(s string) (component.Policy, error) {
	switch s {
	case "", "random":
		return component.PolicyRandom, nil
	case "fixed":
		return component.PolicyFixed, nil
	}
	return component.PolicyFixed, fmt.Errorf("monsters.box_policy: unknown policy %q", s)
}

// StickyImmuneKinds resolves rules.sticky_immune, unknown names are dropped
func (c *Config) StickyImmuneKinds() map[component.Kind]bool {
	out := make(map[component.Kind]bool, len(c.Rules.StickyImmune))
	for _, name := range c.Rules.StickyImmune {
		if k, ok := component.ParseKind(name); ok {
			out[k] = true
		}
	}
	return out
}
