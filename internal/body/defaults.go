package body

// SolarSystem lists the sun and the eight planets in display order.
var SolarSystem = []Descriptor{
	{
		Name: "Sun", Texture: "sun.png", Size: 10, Distance: 0,
		Speed: 0, RotationSpeed: 0.002, Color: "#fdb813",
		Info: "The star at the center of our solar system, a nearly perfect sphere of hot plasma.",
	},
	{
		Name: "Mercury", Texture: "mercury.png", Size: 0.8, Distance: 28,
		Speed: 0.04, RotationSpeed: 0.004, Color: "#8b8b8b",
		Info: "The smallest planet in our solar system and closest to the Sun.",
	},
	{
		Name: "Venus", Texture: "venus.webp", Size: 1.5, Distance: 44,
		Speed: 0.015, RotationSpeed: 0.002, Color: "#e6c229",
		Info: "Similar in size to Earth, with a toxic atmosphere of carbon dioxide.",
	},
	{
		Name: "Earth", Texture: "earth.png", Size: 1.6, Distance: 62,
		Speed: 0.01, RotationSpeed: 0.01, Color: "#6b93d6",
		Info: "Our home planet, the only known place in the universe with life.",
	},
	{
		Name: "Mars", Texture: "mars.png", Size: 1.2, Distance: 95,
		Speed: 0.008, RotationSpeed: 0.008, Color: "#993d00",
		Info: "Known as the Red Planet due to iron oxide on its surface.",
	},
	{
		Name: "Jupiter", Texture: "jupiter.webp", Size: 3.5, Distance: 130,
		Speed: 0.002, RotationSpeed: 0.02, Color: "#b07f35",
		Info: "The largest planet in our solar system, a gas giant with a Great Red Spot.",
	},
	{
		Name: "Saturn", Texture: "saturn.webp", Size: 3.0, Distance: 160,
		Speed: 0.0009, RotationSpeed: 0.015, Color: "#dcd0a1", HasRing: true,
		Info: "Famous for its beautiful ring system made of ice and rock particles.",
	},
	{
		Name: "Uranus", Texture: "uranus.png", Size: 2.5, Distance: 190,
		Speed: 0.0004, RotationSpeed: 0.005, Color: "#c1e3e3",
		Info: "An ice giant that rotates on its side, with a tilted axis of 98 degrees.",
	},
	{
		Name: "Neptune", Texture: "neptune.webp", Size: 2.5, Distance: 220,
		Speed: 0.0001, RotationSpeed: 0.005, Color: "#5b5ddf",
		Info: "The windiest planet with the strongest winds in the solar system.",
	},
}

// Default returns a registry holding SolarSystem.
func Default() *Registry {
	r, err := NewRegistry(SolarSystem...)
	if err != nil {
		panic(err)
	}
	return r
}
