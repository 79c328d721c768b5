package reporttemplar

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/tormoder/fit"
)

// Lap — отрезок тренировки из файла часов.
type Lap struct {
	Seconds float64
	Meters  float64
	Ascent  float64 // набор высоты, м; 0 — нет данных
}

// LapsFromFIT читает отрезки из FIT-файла активности.
func LapsFromFIT(r io.Reader) ([]Lap, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	laps := lapsFromActivity(activity)
	log.Printf("⌚ Отрезков в активности: %d", len(laps))
	return laps, nil
}

func lapsFromActivity(activity *fit.ActivityFile) []Lap {
	if activity == nil {
		return nil
	}
	laps := make([]Lap, 0, len(activity.Laps))
	for _, lap := range activity.Laps {
		if lap == nil {
			continue
		}
		sec := lap.GetTotalTimerTimeScaled()
		if math.IsNaN(sec) || sec <= 0 {
			sec = lap.GetTotalElapsedTimeScaled()
		}
		meters := lap.GetTotalDistanceScaled()
		l := Lap{Seconds: finiteOrZero(sec), Meters: finiteOrZero(meters)}
		if lap.TotalAscent != 0xFFFF {
			l.Ascent = float64(lap.TotalAscent)
		}
		laps = append(laps, l)
	}
	return laps
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// LapValues раскладывает отрезки по списочным полям шаблона: время, дистанция, набор.
// Пустой ключ означает "не заполнять".
func LapValues(laps []Lap, timeKey, distKey, ascentKey string) Values {
	out := Values{}
	times := make([]interface{}, 0, len(laps))
	dists := make([]interface{}, 0, len(laps))
	ascents := make([]interface{}, 0, len(laps))
	for _, l := range laps {
		times = append(times, textFromSeconds(round1(l.Seconds)))
		dists = append(dists, formatNumber(math.Round(l.Meters))+" м")
		ascents = append(ascents, formatNumber(math.Round(l.Ascent)))
	}
	if timeKey != "" {
		out[timeKey] = times
	}
	if distKey != "" {
		out[distKey] = dists
	}
	if ascentKey != "" {
		out[ascentKey] = ascents
	}
	return out
}
