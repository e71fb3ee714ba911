package camera

// NavigatorOption is a functional option for configuring a Navigator.
type NavigatorOption func(*navigatorImpl)

// WithOrbitSpeed sets the multiplier applied to orbit and examine angles.
//
// Parameters:
//   - speed: angle multiplier
//
// Returns:
//   - NavigatorOption: functional option to set orbit speed
func WithOrbitSpeed(speed float32) NavigatorOption {
	return func(n *navigatorImpl) {
		n.orbitSpeed = speed
	}
}

// WithPanSpeed sets the multiplier applied to translations and pan angles.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - NavigatorOption: functional option to set pan speed
func WithPanSpeed(speed float32) NavigatorOption {
	return func(n *navigatorImpl) {
		n.panSpeed = speed
	}
}

// WithZoomSpeed sets the zoom step multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - NavigatorOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) NavigatorOption {
	return func(n *navigatorImpl) {
		n.zoomSpeed = speed
	}
}
