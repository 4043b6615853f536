package workout

// Shared activity fixtures. Distances/speeds are chosen to mirror real
// GPS-recorded track sessions: reps are slightly noisy, standard distances
// only after rounding.

func workLap(meters float64) Lap {
	return Lap{Distance: meters, MovingTime: meters / 5.5, AverageSpeed: 5.5, AverageHeartrate: 148}
}

func jogLap(meters float64) Lap {
	return Lap{Distance: meters, MovingTime: meters / 2.5, AverageSpeed: 2.5, AverageHeartrate: 125}
}

func slowLap(meters float64) Lap {
	return Lap{Distance: meters, MovingTime: meters / 3.0, AverageSpeed: 3.0, AverageHeartrate: 120}
}

// twoSetRepetitionActivity is 2 x (8 x 200m w/200m jog) with an 800m
// between-set jog, bracketed by a mile warmup and cooldown.
func twoSetRepetitionActivity() *Activity {
	laps := []Lap{slowLap(1609)}
	for i := 0; i < 8; i++ {
		laps = append(laps, workLap(205), jogLap(198))
	}
	laps = append(laps, jogLap(810))
	for i := 0; i < 8; i++ {
		laps = append(laps, workLap(203), jogLap(201))
	}
	laps = append(laps, slowLap(1609))

	var dist, dur float64
	for _, l := range laps {
		dist += l.Distance
		dur += l.MovingTime
	}
	return &Activity{
		ID:               101,
		Name:             "Afternoon Run",
		Distance:         dist,
		MovingTime:       dur,
		AverageHeartrate: 138,
		Laps:             laps,
	}
}

// easyZonedActivity mirrors the 11-mile zone-1/2 run: long by aggregate
// distance, but unambiguously easy by lap pace zones.
func easyZonedActivity() *Activity {
	laps := make([]Lap, 11)
	for i := range laps {
		laps[i] = Lap{
			Distance:         1609.3,
			MovingTime:       539,
			AverageSpeed:     2.99,
			AverageHeartrate: 130,
			PaceZone:         1 + i%2,
		}
	}
	return &Activity{
		ID:               102,
		Distance:         17714.6,
		MovingTime:       5930,
		AverageHeartrate: 130,
		AverageSpeed:     2.99,
		Laps:             laps,
	}
}

// cruiseIntervalActivity is 4 x 1600m at threshold with 60s standing
// recoveries.
func cruiseIntervalActivity(zone int) *Activity {
	laps := []Lap{slowLap(1609)}
	for i := 0; i < 4; i++ {
		laps = append(laps, Lap{
			Distance:         1600,
			MovingTime:       381,
			AverageSpeed:     4.2,
			AverageHeartrate: 162,
			PaceZone:         zone,
		})
		if i < 3 {
			laps = append(laps, Lap{Distance: 90, MovingTime: 60, AverageSpeed: 1.5, AverageHeartrate: 140})
		}
	}
	laps = append(laps, slowLap(1609))

	var dist, dur float64
	for _, l := range laps {
		dist += l.Distance
		dur += l.MovingTime
	}
	return &Activity{ID: 103, Distance: dist, MovingTime: dur, AverageHeartrate: 150, Laps: laps}
}

// tempoActivity is a 30-minute continuous block at threshold between an
// easy warmup and cooldown.
func tempoActivity() *Activity {
	laps := []Lap{
		{Distance: 1609, MovingTime: 536, AverageSpeed: 3.0, AverageHeartrate: 121, PaceZone: 1},
		{Distance: 2500, MovingTime: 900, AverageSpeed: 2.78, AverageHeartrate: 158, PaceZone: 3},
		{Distance: 2500, MovingTime: 900, AverageSpeed: 2.78, AverageHeartrate: 160, PaceZone: 3},
		{Distance: 1609, MovingTime: 536, AverageSpeed: 3.0, AverageHeartrate: 126, PaceZone: 1},
	}
	var dist, dur float64
	for _, l := range laps {
		dist += l.Distance
		dur += l.MovingTime
	}
	return &Activity{ID: 104, Distance: dist, MovingTime: dur, AverageHeartrate: 146, Laps: laps}
}

// longActivity is an 11+ mile run with no pace-zone data recorded.
func longActivity() *Activity {
	laps := make([]Lap, 12)
	for i := range laps {
		laps[i] = Lap{Distance: 1500, MovingTime: 455, AverageSpeed: 3.3, AverageHeartrate: 140}
	}
	return &Activity{
		ID:               105,
		Distance:         18000,
		MovingTime:       5454,
		AverageHeartrate: 140,
		Laps:             laps,
	}
}
