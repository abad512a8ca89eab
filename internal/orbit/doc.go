// Package orbit advances the orbital and spin angles of every body.
//
// Motion is kinematic, not physical: each body travels a fixed-radius circle
// in the XZ plane and its position is recomputed from the accumulated angle
// on every read, so changing a body's speed never moves it discontinuously.
//
//	sys := orbit.NewSystem(body.Default(), orbit.WithSeed(42))
//	sys.Step(delta, paused)
//	p := sys.Body("Earth").Position()
//
// # Angles
//
// Angles accumulate without wraparound by default. [WithNormalize] reduces
// them modulo 2π after each update for very long sessions.
package orbit
