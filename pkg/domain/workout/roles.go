package workout

// Lap role thresholds. A work rep is short and fast, a same-set recovery is
// short and slow, a between-set recovery is long and slow but interior to
// the workout, and warmup/cooldown are the long slow laps at the
// boundaries.
const (
	workMinSpeed = 4.3 // m/s
	workMinMeters = 180.0
	workMaxMeters = 600.0

	recoveryMaxSpeed  = 3.5 // m/s
	recoveryMinMeters = 150.0
	recoveryMaxMeters = 600.0

	setRecoveryMaxMeters = 2000.0
	boundaryMinMeters    = 1000.0

	// A between-set recovery must not sit inside the final laps of the
	// run, otherwise it is indistinguishable from a cooldown.
	tailLapWindow = 3
)

// ClassifyRoles assigns exactly one role to every lap. The result is
// index-aligned with the input and the function is pure: a lap's role
// depends only on its own fields and its position within the sequence.
// Empty input yields an empty result.
func ClassifyRoles(laps []Lap) []LapRole {
	roles := make([]LapRole, len(laps))
	if len(laps) == 0 {
		return roles
	}

	// Work laps first: the between-set rule needs to know where they are.
	for i, lap := range laps {
		if isWorkLap(lap) {
			roles[i] = RoleWork
		}
	}

	for i, lap := range laps {
		if roles[i] == RoleWork {
			continue
		}
		switch {
		case isRecoveryLap(lap):
			roles[i] = RoleRecovery
		case isBetweenSetRecovery(lap, i, roles):
			roles[i] = RoleBetweenSetRecovery
		case isBoundaryLap(lap):
			// Slow long lap outside any set structure: warmup if no work
			// has happened yet, cooldown once the hard running is done.
			if !anyWorkBefore(roles, i) {
				roles[i] = RoleWarmup
			} else {
				roles[i] = RoleCooldown
			}
		}
	}

	return roles
}

func isWorkLap(lap Lap) bool {
	return lap.AverageSpeed > workMinSpeed &&
		lap.Distance >= workMinMeters && lap.Distance <= workMaxMeters
}

func isRecoveryLap(lap Lap) bool {
	return lap.AverageSpeed < recoveryMaxSpeed &&
		lap.Distance >= recoveryMinMeters && lap.Distance <= recoveryMaxMeters
}

// isBetweenSetRecovery distinguishes the long jog separating two sets from
// a warmup or cooldown, which are also slow and often long. It requires
// work laps strictly before and after, an interior index, and distance in
// the 600-2000m band.
func isBetweenSetRecovery(lap Lap, idx int, roles []LapRole) bool {
	if lap.AverageSpeed >= recoveryMaxSpeed {
		return false
	}
	if lap.Distance <= recoveryMaxMeters || lap.Distance > setRecoveryMaxMeters {
		return false
	}
	if idx == 0 || idx >= len(roles)-tailLapWindow {
		return false
	}
	return anyWorkBefore(roles, idx) && anyWorkAfter(roles, idx)
}

func isBoundaryLap(lap Lap) bool {
	return lap.AverageSpeed < recoveryMaxSpeed && lap.Distance > boundaryMinMeters
}

func anyWorkBefore(roles []LapRole, idx int) bool {
	for i := 0; i < idx; i++ {
		if roles[i] == RoleWork {
			return true
		}
	}
	return false
}

func anyWorkAfter(roles []LapRole, idx int) bool {
	for i := idx + 1; i < len(roles); i++ {
		if roles[i] == RoleWork {
			return true
		}
	}
	return false
}
