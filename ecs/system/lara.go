package system

import "github.com/milk9111/raidercore/anim"

// Player discrete states. The numbering follows the clip tables in
// prefabs/animations/lara.yaml.
const (
	LaraWalk        anim.StateID = 0
	LaraRun         anim.StateID = 1
	LaraStop        anim.StateID = 2
	LaraJumpForward anim.StateID = 3
	LaraRunBack     anim.StateID = 5
	LaraTurnRight   anim.StateID = 6
	LaraTurnLeft    anim.StateID = 7
	LaraDeath       anim.StateID = 8
	LaraFreeFall    anim.StateID = 9
	LaraHang        anim.StateID = 10
	LaraReach       anim.StateID = 11
	LaraSplat       anim.StateID = 12
	LaraJumpPrepare anim.StateID = 15
	LaraWalkBack    anim.StateID = 16
	LaraClimbing    anim.StateID = 19
	LaraTurnFast    anim.StateID = 20
	LaraStepRight   anim.StateID = 21
	LaraStepLeft    anim.StateID = 22
	LaraSlide       anim.StateID = 24
	LaraJumpBack    anim.StateID = 25
	LaraJumpRight   anim.StateID = 26
	LaraJumpLeft    anim.StateID = 27
	LaraJumpUp      anim.StateID = 28
	LaraSlideBack   anim.StateID = 32
	LaraPush        anim.StateID = 36
	LaraPull        anim.StateID = 37
	LaraPPReady     anim.StateID = 38
	LaraPickUp      anim.StateID = 39
	LaraSwitchDown  anim.StateID = 40
	LaraSwitchUp    anim.StateID = 41
	LaraRoll        anim.StateID = 45
)

// Player clips.
const (
	animStand          anim.ID = 0
	animRun            anim.ID = 1
	animWalk           anim.ID = 2
	animHopBack        anim.ID = 3
	animWalkBack       anim.ID = 4
	animTurnRight      anim.ID = 5
	animTurnLeft       anim.ID = 6
	animTurnFast       anim.ID = 7
	animStepRight      anim.ID = 8
	animStepLeft       anim.ID = 9
	animCompress       anim.ID = 10
	animJumpForward    anim.ID = 11
	animFallForward    anim.ID = 12
	animJumpBack       anim.ID = 13
	animFallBack       anim.ID = 14
	animJumpLeft       anim.ID = 15
	animFallLeft       anim.ID = 16
	animJumpRight      anim.ID = 17
	animFallRight      anim.ID = 18
	animJumpUp         anim.ID = 19
	animFallUp         anim.ID = 20
	animFreeFall       anim.ID = 23
	animLand           anim.ID = 24
	animReach          anim.ID = 25
	animHang           anim.ID = 26
	animClimb          anim.ID = 27
	animWallSmashLeft  anim.ID = 28
	animWallSmashRight anim.ID = 29
	animDeath          anim.ID = 30
	animLandHard       anim.ID = 31
	animSlide          anim.ID = 32
	animSlideBack      anim.ID = 33
	animRunStepUpLeft  anim.ID = 34
	animRunStepUpRight anim.ID = 35
	animPPReady        anim.ID = 36
	animPush           anim.ID = 37
	animPull           anim.ID = 38
	animPickUp         anim.ID = 39
	animSwitchDown     anim.ID = 40
	animSwitchUp       anim.ID = 41
	animWalkStepUp     anim.ID = 42
	animWalkStepDown   anim.ID = 43
	animRoll           anim.ID = 45
	animVault2         anim.ID = 46
	animVault3         anim.ID = 47
)
