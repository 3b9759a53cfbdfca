package component

import "strings"

// Kind is the closed set of actor types on the stage
// Adding a kind requires a row in kindTable; behavior dispatch switches over it exhaustively
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindMonsterNormal
	KindMonsterFree
	KindMonsterBox
	KindMonsterBoss
	KindMonsterRipper
	KindBoxNormal
	KindBoxSticky
	KindWall

	kindCount
)

// Capability is a bit set of behaviors derived from Kind
type Capability uint16

const (
	CapBlocking Capability = 1 << iota
	CapPushable
	CapSticky
	CapPurgeStickyOnDeath
	CapTransforms
	CapMonster
	CapRandomWalk
)

// Has checks if every bit of flag is set
func (c Capability) Has(flag Capability) bool {
	return c&flag == flag
}

type kindInfo struct {
	name string
	caps Capability
}

var kindTable = [kindCount]kindInfo{
	KindNone:          {name: "none"},
	KindPlayer:        {name: "player", caps: CapBlocking},
	KindMonsterNormal: {name: "monster_normal", caps: CapBlocking | CapMonster},
	KindMonsterFree:   {name: "monster_free", caps: CapBlocking | CapMonster | CapRandomWalk},
	KindMonsterBox:    {name: "monster_box", caps: CapBlocking | CapMonster | CapTransforms},
	KindMonsterBoss:   {name: "monster_boss", caps: CapBlocking | CapMonster | CapRandomWalk},
	KindMonsterRipper: {name: "monster_ripper", caps: CapBlocking | CapMonster | CapRandomWalk | CapPurgeStickyOnDeath},
	KindBoxNormal:     {name: "box_normal", caps: CapBlocking | CapPushable},
	KindBoxSticky:     {name: "box_sticky", caps: CapBlocking | CapPushable | CapSticky},
	KindWall:          {name: "wall", caps: CapBlocking},
}

// MonsterKinds lists every monster variant in declaration order
var MonsterKinds = []Kind{KindMonsterNormal, KindMonsterFree, KindMonsterBox, KindMonsterBoss, KindMonsterRipper}

// Capabilities returns the capability set for k, zero for invalid kinds
func (k Kind) Capabilities() Capability {
	if k >= kindCount {
		return 0
	}
	return kindTable[k].caps
}

func (k Kind) Has(c Capability) bool { return k.Capabilities().Has(c) }

func (k Kind) IsMonster() bool  { return k.Has(CapMonster) }
func (k Kind) IsPushable() bool { return k.Has(CapPushable) }
func (k Kind) IsSticky() bool   { return k.Has(CapSticky) }
func (k Kind) IsBlocking() bool { return k.Has(CapBlocking) }

func (k Kind) String() string {
	if k >= kindCount {
		return "invalid"
	}
	return kindTable[k].name
}

// ParseKind resolves a kind by name, case-insensitive
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := KindPlayer; k < kindCount; k++ {
		if kindTable[k].name == name {
			return k, true
		}
	}
	return KindNone, false
}
