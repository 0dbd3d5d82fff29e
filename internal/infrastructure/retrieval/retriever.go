package retrieval

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"tripmind/internal/config"
	"tripmind/internal/domain/candidate"
	"tripmind/internal/infrastructure/metrics"
	"tripmind/internal/infrastructure/places"
	"tripmind/internal/infrastructure/travelsearch"
	"tripmind/internal/utils/platformerrors"
	"tripmind/internal/utils/stringutils"
)

// CachedRetriever fronts the search providers with an LRU cache so a
// clarification loop or a modify turn does not re-hit the paid APIs for
// the same destination.
type CachedRetriever struct {
	places *places.Client
	travel *travelsearch.Client
	cache  *lru.Cache
	ttl    time.Duration
	now    func() time.Time
}

var _ candidate.Retriever = (*CachedRetriever)(nil)

type cacheEntry struct {
	candidates []candidate.Candidate
	expiresAt  time.Time
}

func NewCachedRetriever(placesClient *places.Client, travelClient *travelsearch.Client, cfg *config.Config) (*CachedRetriever, error) {
	cache, err := lru.New(cfg.CandidateCacheSize)
	if err != nil {
		return nil, err
	}
	return &CachedRetriever{
		places: placesClient,
		travel: travelClient,
		cache:  cache,
		ttl:    cfg.CandidateCacheTTL,
		now:    time.Now,
	}, nil
}

// Places implements candidate.Retriever.
func (r *CachedRetriever) Places(ctx context.Context, destination string, category candidate.Category) ([]candidate.Candidate, error) {
	key := fmt.Sprintf("places|%s|%s", stringutils.NormalizeKey(destination), category)
	if cached, ok := r.lookup(key); ok {
		return cached, nil
	}

	found, err := r.places.Search(ctx, destination, category)
	if err != nil {
		metrics.RecordProviderError("places", errorType(err))
		return nil, err
	}
	r.store(key, found)
	return found, nil
}

// Hotels implements candidate.Retriever.
func (r *CachedRetriever) Hotels(ctx context.Context, destination string, checkIn, checkOut time.Time) ([]candidate.Candidate, error) {
	key := fmt.Sprintf("hotels|%s|%s|%s",
		stringutils.NormalizeKey(destination), checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
	if cached, ok := r.lookup(key); ok {
		return cached, nil
	}

	found, err := r.travel.SearchHotels(ctx, destination, checkIn, checkOut)
	if err != nil {
		metrics.RecordProviderError("travelsearch", errorType(err))
		return nil, err
	}
	r.store(key, found)
	return found, nil
}

// Flights implements candidate.Retriever.
func (r *CachedRetriever) Flights(ctx context.Context, origin, destination string, departure time.Time) ([]candidate.Candidate, error) {
	key := fmt.Sprintf("flights|%s|%s|%s",
		stringutils.NormalizeKey(origin), stringutils.NormalizeKey(destination), departure.Format("2006-01-02"))
	if cached, ok := r.lookup(key); ok {
		return cached, nil
	}

	found, err := r.travel.SearchFlights(ctx, origin, destination, departure)
	if err != nil {
		metrics.RecordProviderError("travelsearch", errorType(err))
		return nil, err
	}
	r.store(key, found)
	return found, nil
}

func errorType(err error) string {
	if platformErr := platformerrors.GetPlatformError(err); platformErr != nil {
		return string(platformErr.Type)
	}
	return "unknown"
}

func (r *CachedRetriever) lookup(key string) ([]candidate.Candidate, bool) {
	value, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}
	entry := value.(cacheEntry)
	if r.now().After(entry.expiresAt) {
		r.cache.Remove(key)
		return nil, false
	}
	return entry.candidates, true
}

func (r *CachedRetriever) store(key string, candidates []candidate.Candidate) {
	r.cache.Add(key, cacheEntry{candidates: candidates, expiresAt: r.now().Add(r.ttl)})
}
