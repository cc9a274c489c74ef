package geom

// ToWorld converts a center-relative pixel offset to a world point for a camera
// centered at position with the given pixels per unit.
func ToWorld(pixel, position Vec2, ppu float64) Vec2 {
	return Vec2{
		X: pixel.X/ppu + position.X,
		Y: pixel.Y/ppu + position.Y,
	}
}

// ToPixel is the inverse of ToWorld.
func ToPixel(world, position Vec2, ppu float64) Vec2 {
	return Vec2{
		X: (world.X - position.X) * ppu,
		Y: (world.Y - position.Y) * ppu,
	}
}

// Truncate converts a pixel coordinate to device pixels, dropping the fraction
// toward zero.
func Truncate(v float64) int {
	return int(v)
}
