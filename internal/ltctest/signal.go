// ABOUTME: Synthetic LTC audio for tests
// ABOUTME: Renders serialized frames as biphase-mark coded 8-bit samples
package ltctest

const (
	// High and Low are the default sample levels of rendered signals.
	High uint8 = 228
	Low  uint8 = 28
)

// Biphase renders frames back to back at samplesPerBit samples per bit cell,
// starting at the high level. One extra cell is appended so the final bit of
// the last frame is closed by a transition.
func Biphase(frames [][10]byte, samplesPerBit int) []uint8 {
	return BiphaseLevels(frames, samplesPerBit, High, Low)
}

// BiphaseLevels is Biphase with explicit signal levels.
func BiphaseLevels(frames [][10]byte, samplesPerBit int, high, low uint8) []uint8 {
	out := make([]uint8, 0, (len(frames)*80+1)*samplesPerBit)
	level := true

	emit := func(n int) {
		v := low
		if level {
			v = high
		}
		for i := 0; i < n; i++ {
			out = append(out, v)
		}
	}

	for _, f := range frames {
		for n := 0; n < 80; n++ {
			if f[n/8]>>(n%8)&1 == 1 {
				half := samplesPerBit / 2
				emit(half)
				level = !level
				emit(samplesPerBit - half)
			} else {
				emit(samplesPerBit)
			}
			level = !level
		}
	}
	emit(samplesPerBit)
	return out
}

// Reverse returns samples in reverse order, inverted if needed so the result
// starts at the high level of a signal rendered with high and low.
func Reverse(samples []uint8, high, low uint8) []uint8 {
	out := make([]uint8, len(samples))
	for i, s := range samples {
		out[len(samples)-1-i] = s
	}
	if len(out) > 0 && out[0] == low {
		for i, s := range out {
			out[i] = high + low - s
		}
	}
	return out
}

// Int16 converts centered 8-bit samples to signed 16-bit.
func Int16(samples []uint8) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = int16((int(s) - 128) << 8)
	}
	return out
}

// Float64 converts centered 8-bit samples to floats in [-1, 1].
func Float64(samples []uint8) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(int(s)-128) / 127
	}
	return out
}
