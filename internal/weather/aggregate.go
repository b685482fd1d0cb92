package weather

import "math"

// ComputeForecastTemperatureStats reduces a daily forecast to period bounds
// and min/max/mean temperature.
//
// An empty input returns the zero-valued sentinel (PeriodDays 0, nil
// bounds), not an error. A non-finite day temperature counts as 0 for that
// day rather than excluding the day, so a corrupt day pulls the aggregate
// toward zero instead of aborting the computation. Period bounds come from
// the first and last elements as given; the input order is trusted and
// never re-sorted.
func ComputeForecastTemperatureStats(forecast []DailyForecast) ForecastTemperatureStats {
	if len(forecast) == 0 {
		return ForecastTemperatureStats{}
	}

	var (
		minTemp = math.Inf(1)
		maxTemp = math.Inf(-1)
		sum     float64
	)

	for _, day := range forecast {
		dayMax := finiteOrZero(day.MaxTempC)
		dayMin := finiteOrZero(day.MinTempC)

		if dayMax > maxTemp {
			maxTemp = dayMax
		}
		// Both substituted values feed the running minimum: a corrupt max
		// zeroed for the day can undercut every finite min.
		if dayMin < minTemp {
			minTemp = dayMin
		}
		if dayMax < minTemp {
			minTemp = dayMax
		}
		sum += (dayMax + dayMin) / 2
	}

	days := len(forecast)
	avg := sum / float64(days)

	start := forecast[0].DateISO
	end := forecast[days-1].DateISO

	return ForecastTemperatureStats{
		PeriodDays:     days,
		PeriodStartISO: &start,
		PeriodEndISO:   &end,
		MinTempC:       finiteOrZero(minTemp),
		MaxTempC:       finiteOrZero(maxTemp),
		AvgTempC:       finiteOrZero(avg),
	}
}

// ComputeBundleTemperatureStats unwraps a ForecastBundle and aggregates its
// forecast days. Same semantics as ComputeForecastTemperatureStats.
func ComputeBundleTemperatureStats(bundle ForecastBundle) ForecastTemperatureStats {
	return ComputeForecastTemperatureStats(bundle.Forecast)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
