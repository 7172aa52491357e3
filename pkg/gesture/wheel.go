package gesture

// WheelDelta converts a wheel delta to pixels. Line deltas are scaled by
// lineHeight and page deltas by pageHeight.
func WheelDelta(deltaY float64, mode WheelMode, lineHeight, pageHeight float64) float64 {
	switch mode {
	case WheelLine:
		return deltaY * lineHeight
	case WheelPage:
		return deltaY * pageHeight
	default:
		return deltaY
	}
}
