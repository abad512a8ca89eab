// Package gui is the raylib window of the orrery.
//
// Bodies are textured sphere models (flat colored when their texture failed
// to load), drawn with their orbit guides, a point starfield, Saturn's ring
// and an additive glow around the sun. The HUD carries the hover label, the
// info and speed panels, the command buttons and the loading overlay.
//
// # Controls
//
//	Left drag   - Orbit the camera
//	Right drag  - Pan
//	Wheel       - Zoom
//	Hover/Click - Show planet info / fly to planet
//	Space       - Pause/Resume
//	O           - Toggle orbit guides
//	T           - Toggle dark/light theme
//	R           - Reset camera
//	0           - Restore all speeds
//	I/C/M       - Info panel / controls panel / collapse menu
package gui
