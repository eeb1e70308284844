package component

// Pickup is an item the player can pick up off the floor.
type Pickup struct {
	// Collected is set once the pick up animation took it. The pickup
	// trigger under it reports success once afterwards.
	Collected bool
	// Reported is set after the trigger saw the collection.
	Reported bool
}

var PickupComponent = NewComponent[Pickup]()
