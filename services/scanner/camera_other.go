//go:build !linux

package scanner

// NewSystemCamera has no capture backend outside linux; the kiosk then reports that no camera was found.
func NewSystemCamera(width, height int) Camera {
	return NoCamera{}
}
