// Package physics integrates cell-space motion for falling glyph particles
// and the pong ball. Units are cells and seconds.
package physics

// Kinetic holds continuous position, velocity and acceleration
type Kinetic struct {
	X, Y   float64
	VX, VY float64
	AX, AY float64
}

// Integrate performs semi-implicit Euler: v = v + a*dt; p = p + v*dt
func Integrate(k *Kinetic, dt float64) {
	k.VX += k.AX * dt
	k.VY += k.AY * dt
	k.X += k.VX * dt
	k.Y += k.VY * dt
}

// SetImpulse overrides velocity (hard redirect)
func SetImpulse(k *Kinetic, vx, vy float64) {
	k.VX = vx
	k.VY = vy
}

// ReflectBoundsY clamps Y into [minY, maxY] and reverses VY on contact.
// Returns true if reflection occurred
func ReflectBoundsY(k *Kinetic, minY, maxY float64) bool {
	if k.Y <= minY {
		k.Y = minY
		k.VY = -k.VY
		return true
	}
	if k.Y >= maxY {
		k.Y = maxY
		k.VY = -k.VY
		return true
	}
	return false
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
