package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// HostileTag marks dungeon monsters. FriendlyTag marks the player and
// anything fighting on its side. Perception pairs one against the other.
type HostileTag struct{}

var HostileTagComponent = NewComponent[HostileTag]()

type FriendlyTag struct{}

var FriendlyTagComponent = NewComponent[FriendlyTag]()

// Corpse is a dead agent. Corpses are never targets and rays pass through
// them.
type Corpse struct{}

var CorpseComponent = NewComponent[Corpse]()

// Shield is an active shield effect. Line of sight ignores it.
type Shield struct{}

var ShieldComponent = NewComponent[Shield]()

// Blank is a dispel zone. Line of sight ignores it.
type Blank struct{}

var BlankComponent = NewComponent[Blank]()

// Archetype records which prefab spec built an entity, so tuning can be
// re-applied on reload.
type Archetype struct {
	Name string
}

var ArchetypeComponent = NewComponent[Archetype]()
