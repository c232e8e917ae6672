package models

import "math/rand/v2"

// EntryIcons is the fixed set of icon tags the frontend knows how to render.
var EntryIcons = []string{
	"pen", "book", "heart", "star", "lightbulb",
	"feather", "quote", "bookOpen", "scroll", "clock",
	"nature", "sunny", "night", "cloud", "flower",
	"journal", "iobook", "create", "pencil", "bibookopen",
}

// RandomIcon picks an icon tag uniformly from EntryIcons.
func RandomIcon() string {
	return EntryIcons[rand.IntN(len(EntryIcons))]
}
