package weather

// FilterSamples returns the subsequence of samples whose instant falls
// inside the window, interpreted as [Start 00:00:00, End 23:59:59] UTC.
// The provider's epoch timestamps and the window bounds share the same
// naive civil-time convention, so no timezone conversion happens here.
//
// The filter is stable: input order is preserved, nothing is duplicated,
// and an empty result is a valid outcome (the provider's horizon may not
// cover the requested window at all).
func FilterSamples(samples []ForecastSample, window DateWindow) []ForecastSample {
	// Exclusive upper bound: midnight of the day after End.
	upper := window.End.AddDate(0, 0, 1)

	out := make([]ForecastSample, 0, len(samples))
	for _, s := range samples {
		t := s.Time()
		if t.Before(window.Start) || !t.Before(upper) {
			continue
		}
		out = append(out, s)
	}
	return out
}
