package weather

import (
	"context"
)

// LocationResolver maps a free-text location to a canonical name and
// coordinates. Implementations return ErrLocationNotFound (wrapped) when
// the provider has zero matches and ErrUpstream on transport failures.
type LocationResolver interface {
	Resolve(ctx context.Context, text string) (ResolvedLocation, error)
}

// ForecastSource fetches the provider's forecast horizon for a coordinate
// pair, ordered by ascending timestamp. The horizon is provider-defined and
// not guaranteed to cover any particular requested window.
type ForecastSource interface {
	FetchForecast(ctx context.Context, lat, lon float64) ([]ForecastSample, error)
}

// CurrentSource serves the current-conditions lookup for a search query.
type CurrentSource interface {
	FetchCurrent(ctx context.Context, query LocationQuery) (CurrentConditions, error)
}

// Store is the contract the persistent record store must satisfy. Ids are
// store-assigned and never reused; created/updated timestamps are owned by
// the store. Implementations return ErrRecordNotFound for absent ids and
// ErrStoreUnavailable for backing-store failures.
type Store interface {
	List(ctx context.Context) ([]SearchRecord, error)
	Create(ctx context.Context, location string, lat, lon float64, window DateWindow, snapshot []ForecastSample) (SearchRecord, error)
	Update(ctx context.Context, id int64, location string, lat, lon float64, window DateWindow, snapshot []ForecastSample) (SearchRecord, error)
	Delete(ctx context.Context, id int64) error
}
