package system

import (
	"github.com/lixenwraith/warehouse/component"
	"github.com/lixenwraith/warehouse/config"
)

// Rules is the tuning the tick systems read, resolved once from config
type Rules struct {
	MonstersPushBoxes bool
	StickyImmune      map[component.Kind]bool

	BoxPolicy component.Policy
	Compass4  bool

	// Random walk interval bounds in ticks
	RandomTimerMin int
	RandomTimerMax int

	// Camouflage cycle state lengths in ticks, indexed by TransformState
	TransformTicks [4]int
}

// RulesFromConfig converts durations to ticks and parses names
func RulesFromConfig(cfg *config.Config) Rules {
	policy, _ := config.ParsePolicy(cfg.Monsters.BoxPolicy)
	return Rules{
		MonstersPushBoxes: cfg.Rules.MonstersPushBoxes,
		StickyImmune:      cfg.StickyImmuneKinds(),
		BoxPolicy:         policy,
		Compass4:          cfg.Monsters.Compass4,
		RandomTimerMin:    cfg.Timing.RandomTimerMin,
		RandomTimerMax:    cfg.Timing.RandomTimerMax,
		TransformTicks: [4]int{
			component.TransformMonster:   cfg.Ticks(cfg.Timing.BoxActive),
			component.TransformToBox:     cfg.Ticks(cfg.Timing.BoxToBox),
			component.TransformBox:       cfg.Ticks(cfg.Timing.BoxHidden),
			component.TransformToMonster: cfg.Ticks(cfg.Timing.BoxToMonster),
		},
	}
}
