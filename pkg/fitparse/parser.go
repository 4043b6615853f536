// Package fitparse decodes Garmin FIT files into the domain activity model.
// Only the lap and session summaries matter for classification; record-level
// samples are skipped.
package fitparse

import (
	"bytes"
	"fmt"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"

	"github.com/lapwise/server/pkg/domain/workout"
)

// FIT message order: FileId -> DeviceInfo -> Records -> Lap -> Session -> Activity.
// Laps arrive before the session summary, so collect both and reconcile after.

// ParseActivity parses FIT bytes into a workout activity. Multi-session files
// are flattened: laps from every session in file order, totals summed.
func ParseActivity(data []byte) (*workout.Activity, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty FIT data")
	}

	fitDec := decoder.New(bytes.NewReader(data))

	activity := &workout.Activity{}
	var sessions int

	for fitDec.Next() {
		fitData, err := fitDec.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIT file: %w", err)
		}

		for _, msg := range fitData.Messages {
			switch msg.Num {
			case typedef.MesgNumLap:
				lapMsg := mesgdef.NewLap(&msg)
				activity.Laps = append(activity.Laps, convertLap(lapMsg))

			case typedef.MesgNumSession:
				sessionMsg := mesgdef.NewSession(&msg)
				sessions++
				if sessionMsg.TotalDistance != 0xFFFFFFFF {
					activity.Distance += float64(sessionMsg.TotalDistance) / 100
				}
				if sessionMsg.TotalTimerTime != 0xFFFFFFFF {
					activity.MovingTime += float64(sessionMsg.TotalTimerTime) / 1000
				}
				if activity.AverageHeartrate == 0 && sessionMsg.AvgHeartRate != 0xFF {
					activity.AverageHeartrate = float64(sessionMsg.AvgHeartRate)
				}
				if activity.MaxHeartrate == 0 && sessionMsg.MaxHeartRate != 0xFF {
					activity.MaxHeartrate = float64(sessionMsg.MaxHeartRate)
				}
				if activity.Name == "" && sessionMsg.SportProfileName != "" {
					activity.Name = sessionMsg.SportProfileName
				}
			}
		}
	}

	if sessions == 0 {
		return nil, fmt.Errorf("no sessions found in FIT file")
	}
	if activity.MovingTime > 0 {
		activity.AverageSpeed = activity.Distance / activity.MovingTime
	}
	return activity, nil
}

func convertLap(lapMsg *mesgdef.Lap) workout.Lap {
	lap := workout.Lap{}
	if lapMsg.TotalDistance != 0xFFFFFFFF {
		lap.Distance = float64(lapMsg.TotalDistance) / 100
	}
	if lapMsg.TotalTimerTime != 0xFFFFFFFF {
		lap.MovingTime = float64(lapMsg.TotalTimerTime) / 1000
	}
	if lapMsg.AvgSpeed != 0xFFFF { // 0xFFFF is invalid
		lap.AverageSpeed = float64(lapMsg.AvgSpeed) / 1000
	} else if lap.MovingTime > 0 {
		lap.AverageSpeed = lap.Distance / lap.MovingTime
	}
	if lapMsg.AvgHeartRate != 0xFF {
		lap.AverageHeartrate = float64(lapMsg.AvgHeartRate)
	}
	if lapMsg.MaxHeartRate != 0xFF {
		lap.MaxHeartrate = float64(lapMsg.MaxHeartRate)
	}
	return lap
}
