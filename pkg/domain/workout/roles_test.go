package workout

import "testing"

func TestClassifyRoles_Empty(t *testing.T) {
	roles := ClassifyRoles(nil)
	if len(roles) != 0 {
		t.Errorf("expected empty roles for empty input, got %v", roles)
	}
}

func TestClassifyRoles_AllUnclassifiedWhenNothingMatches(t *testing.T) {
	// Moderate steady laps: too long for work/recovery, too fast for a
	// warmup or cooldown.
	laps := []Lap{
		{Distance: 1000, MovingTime: 270, AverageSpeed: 3.7},
		{Distance: 1000, MovingTime: 270, AverageSpeed: 3.7},
	}
	for i, role := range ClassifyRoles(laps) {
		if role != RoleUnclassified {
			t.Errorf("lap %d: expected unclassified, got %s", i, role)
		}
	}
}

func TestClassifyRoles_WorkAndRecoveryBands(t *testing.T) {
	cases := []struct {
		name string
		lap  Lap
		want LapRole
	}{
		{"fast 200 is work", Lap{Distance: 200, MovingTime: 36, AverageSpeed: 5.5}, RoleWork},
		{"fast 600 is work", Lap{Distance: 600, MovingTime: 120, AverageSpeed: 5.0}, RoleWork},
		{"fast but too short", Lap{Distance: 150, MovingTime: 27, AverageSpeed: 5.5}, RoleUnclassified},
		{"fast but too long", Lap{Distance: 700, MovingTime: 140, AverageSpeed: 5.0}, RoleUnclassified},
		{"slow 200 is recovery", Lap{Distance: 200, MovingTime: 80, AverageSpeed: 2.5}, RoleRecovery},
		{"slow but too short for recovery", Lap{Distance: 100, MovingTime: 40, AverageSpeed: 2.5}, RoleUnclassified},
		{"moderate speed is neither", Lap{Distance: 400, MovingTime: 100, AverageSpeed: 4.0}, RoleUnclassified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Surround with work laps so interior rules are reachable.
			laps := []Lap{workLap(200), tc.lap, workLap(200), jogLap(200), jogLap(200), jogLap(200)}
			roles := ClassifyRoles(laps)
			if roles[1] != tc.want {
				t.Errorf("expected %s, got %s", tc.want, roles[1])
			}
		})
	}
}

func TestClassifyRoles_BetweenSetRecovery(t *testing.T) {
	a := twoSetRepetitionActivity()
	roles := ClassifyRoles(a.Laps)

	if roles[0] != RoleWarmup {
		t.Errorf("first lap: expected warmup, got %s", roles[0])
	}
	if roles[len(roles)-1] != RoleCooldown {
		t.Errorf("last lap: expected cooldown, got %s", roles[len(roles)-1])
	}
	if roles[17] != RoleBetweenSetRecovery {
		t.Errorf("lap 17: expected between_set_recovery, got %s", roles[17])
	}

	work, recovery := 0, 0
	for _, r := range roles {
		switch r {
		case RoleWork:
			work++
		case RoleRecovery:
			recovery++
		}
	}
	if work != 16 {
		t.Errorf("expected 16 work laps, got %d", work)
	}
	if recovery != 16 {
		t.Errorf("expected 16 recovery laps, got %d", recovery)
	}
}

// A slow long lap at the very end must not become a between-set recovery
// even when work laps exist on both sides of the sequence midpoint.
func TestClassifyRoles_TailLapIsCooldownNotSetBreak(t *testing.T) {
	laps := []Lap{slowLap(1609)}
	for i := 0; i < 6; i++ {
		laps = append(laps, workLap(200), jogLap(200))
	}
	laps = append(laps, jogLap(1200)) // third lap from the end
	laps = append(laps, workLap(200), slowLap(1609))

	roles := ClassifyRoles(laps)
	idx := len(laps) - 3
	if roles[idx] == RoleBetweenSetRecovery {
		t.Errorf("lap %d sits in the tail window and must not be a set break", idx)
	}
	if roles[len(laps)-1] != RoleCooldown {
		t.Errorf("expected final cooldown, got %s", roles[len(laps)-1])
	}
}

func TestClassifyRoles_SlowLongLapWithoutWorkAroundIsBoundary(t *testing.T) {
	// No work laps at all: long slow laps fall to warmup (nothing hard has
	// happened yet), never between-set.
	laps := []Lap{slowLap(1500), slowLap(1500), slowLap(1500), slowLap(1500), slowLap(1500)}
	for i, role := range ClassifyRoles(laps) {
		if role != RoleWarmup {
			t.Errorf("lap %d: expected warmup, got %s", i, role)
		}
	}
}
