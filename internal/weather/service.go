package weather

import (
	"context"
	"log"
	"time"
)

// Service orchestrates the record lifecycle: validate the date window,
// resolve the location, fetch the forecast, filter it to the window, and
// persist the result. Reads, deletes and exports pass straight through to
// the store.
type Service struct {
	store    Store
	resolver LocationResolver
	source   ForecastSource
	current  CurrentSource
}

// NewService creates a new Service.
func NewService(store Store, resolver LocationResolver, source ForecastSource, current CurrentSource) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		source:   source,
		current:  current,
	}
}

// buildSnapshot runs the shared front half of create and update:
// validate -> resolve -> fetch -> filter. Stages are strictly sequential;
// the first failure wins and carries its typed reason.
func (s *Service) buildSnapshot(ctx context.Context, locationText, startDate, endDate string) (ResolvedLocation, DateWindow, []ForecastSample, error) {
	window, err := ValidateRange(startDate, endDate)
	if err != nil {
		return ResolvedLocation{}, DateWindow{}, nil, err
	}

	loc, err := s.resolver.Resolve(ctx, locationText)
	if err != nil {
		return ResolvedLocation{}, DateWindow{}, nil, err
	}

	samples, err := s.source.FetchForecast(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return ResolvedLocation{}, DateWindow{}, nil, err
	}

	// Filtering cannot fail; an empty snapshot just means the provider's
	// horizon does not reach the requested window.
	snapshot := FilterSamples(samples, window)
	return loc, window, snapshot, nil
}

// CreateRecord runs the full create flow and persists a new record.
func (s *Service) CreateRecord(ctx context.Context, locationText, startDate, endDate string) (SearchRecord, error) {
	loc, window, snapshot, err := s.buildSnapshot(ctx, locationText, startDate, endDate)
	if err != nil {
		return SearchRecord{}, err
	}
	return s.store.Create(ctx, loc.Name, loc.Lat, loc.Lon, window, snapshot)
}

// UpdateRecord re-resolves and re-fetches for an existing record id and
// overwrites all of its mutable fields. It never patches individual fields.
func (s *Service) UpdateRecord(ctx context.Context, id int64, locationText, startDate, endDate string) (SearchRecord, error) {
	loc, window, snapshot, err := s.buildSnapshot(ctx, locationText, startDate, endDate)
	if err != nil {
		return SearchRecord{}, err
	}
	return s.store.Update(ctx, id, loc.Name, loc.Lat, loc.Lon, window, snapshot)
}

// ListRecords delegates to the underlying store.
func (s *Service) ListRecords(ctx context.Context) ([]SearchRecord, error) {
	return s.store.List(ctx)
}

// DeleteRecord delegates to the underlying store. Deleting an id twice
// fails the second time with ErrRecordNotFound.
func (s *Service) DeleteRecord(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// ExportCSV serializes the full history and names the download after the
// export instant.
func (s *Service) ExportCSV(ctx context.Context) (string, string, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return "", "", err
	}
	return ExportFilename(time.Now()), ExportCSV(records), nil
}

// CurrentWeather passes a search query through to the current-conditions
// source. Lookups never create history records; only an explicit create
// call does.
func (s *Service) CurrentWeather(ctx context.Context, query LocationQuery) (CurrentConditions, error) {
	return s.current.FetchCurrent(ctx, query)
}

// RefreshRecord re-runs resolve/fetch/filter for a stored record with its
// own location and window, so the snapshot tracks the provider's rolling
// horizon.
func (s *Service) RefreshRecord(ctx context.Context, rec SearchRecord) (SearchRecord, error) {
	return s.UpdateRecord(ctx, rec.ID, rec.Location, rec.StartDate, rec.EndDate)
}

// RefreshAll refreshes every stored record sequentially. Per-record
// failures are logged and skipped; the first store-level list failure
// aborts the sweep.
func (s *Service) RefreshAll(ctx context.Context) error {
	records, err := s.store.List(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if _, err := s.RefreshRecord(ctx, rec); err != nil {
			log.Printf("refresh failed for record %d (%s): %v", rec.ID, rec.Location, err)
		}
	}
	return nil
}
