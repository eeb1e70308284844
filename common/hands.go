package common

// HandStatus is what the actor's hands are doing.
type HandStatus int

const (
	HandFree HandStatus = iota
	HandBusy
	HandDraw
	HandUndraw
	HandCombat
)
