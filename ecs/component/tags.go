package component

// PlayerTag marks the actor driven by input. There is at most one.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CreatureTag struct{}

var CreatureTagComponent = NewComponent[CreatureTag]()
