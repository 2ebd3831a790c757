package component

import "github.com/milk9111/stealth/motion"

// Player carries movement tuning and the last command the controller issued.
type Player struct {
	Motion motion.Settings
	Last   motion.Command
}

var PlayerComponent = NewComponent[Player]()
