package rift

// caughtBy returns the index of the first guardian whose square hitbox
// overlaps the player's, or -1. Sprites are circles but hitboxes are squares.
func caughtBy(p Player, guardians []Guardian) int {
	box := p.Box()
	for i, gd := range guardians {
		if box.Intersects(gd.Box()) {
			return i
		}
	}
	return -1
}
