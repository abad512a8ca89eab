// Package viz is the terminal frontend of the orrery.
//
// The system is drawn top-down on a braille [Canvas]: orbit guides, the sun
// and its glow, planets and Saturn's ring. A side panel shows the info panel,
// per-planet speed sliders and an asciigraph trace of the selected planet.
// Mouse motion hovers planets and a click focuses the camera on them.
//
// # Key Bindings
//
//	Space     - Pause/Resume
//	O         - Toggle orbit guides
//	T         - Toggle dark/light theme
//	R         - Reset camera
//	Tab       - Select next planet
//	Up/Down   - Adjust selected planet's speed
//	0         - Restore all speeds
//	Enter     - Focus selected planet
//	+/-       - Zoom
//	I/C       - Show info/controls panel
//	M         - Collapse panels
//	?         - Show help overlay
package viz
