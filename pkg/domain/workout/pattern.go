package workout

// FindRepeatingPattern finds the shortest unit whose repetition accounts
// for the whole input with at least 2 full repetitions. A final chunk
// shorter than the unit is accepted when it is a prefix of the unit; it
// neither counts toward Sets nor invalidates the pattern. Returns nil when
// no unit qualifies.
//
// Shortest-unit-wins is a deliberate tie-break: 8 x 200m reads better than
// 4 x (200, 200).
func FindRepeatingPattern(values []float64) *RepeatingPattern {
	n := len(values)
	for unitLen := 1; unitLen <= n/2; unitLen++ {
		unit := values[:unitLen]
		fullReps := 0
		matched := true

		for start := 0; start < n; start += unitLen {
			end := start + unitLen
			if end > n {
				// Truncated tail: must be a prefix of the unit.
				if !chunksEqual(values[start:], unit[:n-start]) {
					matched = false
				}
				break
			}
			if !chunksEqual(values[start:end], unit) {
				matched = false
				break
			}
			fullReps++
		}

		if matched && fullReps >= 2 {
			return &RepeatingPattern{
				Unit: append([]float64(nil), unit...),
				Sets: fullReps,
			}
		}
	}
	return nil
}

func chunksEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
