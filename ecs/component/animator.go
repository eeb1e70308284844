package component

import "github.com/milk9111/raidercore/anim"

var AnimatorComponent = NewComponent[anim.Animator]()
