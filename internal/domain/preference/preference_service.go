package preference

import (
	"context"
	"math"
	"time"

	"tripmind/internal/utils/platformerrors"
)

// Default signal strengths per signal type. Explicit statements carry the
// most weight, implicit engagement less, and modifications are weaker still
// since removing an item only hints at dislike.
var defaultScores = map[SignalType]float64{
	SignalExplicitAsk:     2.0,
	SignalItineraryClick:  1.0,
	SignalRestaurantAdded: 1.5,
	SignalPlanModified:    0.5,
}

// Service derives preference vectors from the append-only signal log.
type Service struct {
	repo              SignalRepository
	decayHalfLifeDays float64
	now               func() time.Time
}

func NewService(repo SignalRepository, decayHalfLifeDays float64) *Service {
	return &Service{
		repo:              repo,
		decayHalfLifeDays: decayHalfLifeDays,
		now:               time.Now,
	}
}

// Record appends a signal with the default strength for its type.
// A negative strength (e.g. an explicit "không thích") is expressed by the
// caller via RecordScore.
func (s *Service) Record(ctx context.Context, userID uint, tag string, signalType SignalType) error {
	return s.RecordScore(ctx, userID, tag, defaultScores[signalType], signalType)
}

// RecordScore appends a signal with an explicit strength.
func (s *Service) RecordScore(ctx context.Context, userID uint, tag string, score float64, signalType SignalType) error {
	if tag == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"preference tag must not be empty", nil, "")
	}

	signal := &Signal{
		UserID:    userID,
		Tag:       tag,
		Score:     score,
		Type:      signalType,
		CreatedAt: s.now(),
	}
	if err := s.repo.Append(ctx, signal); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to append preference signal")
	}
	return nil
}

// Vector sums the user's signals per tag and normalizes to [0,1].
// When a decay half-life is configured, older signals contribute
// exponentially less. Tags with a non-positive sum read as zero; a user
// with no signals gets an empty vector.
func (s *Service) Vector(ctx context.Context, userID uint) (Vector, error) {
	signals, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load preference signals")
	}

	sums := make(map[string]float64)
	now := s.now()
	for _, signal := range signals {
		weight := 1.0
		if s.decayHalfLifeDays > 0 {
			ageDays := now.Sub(signal.CreatedAt).Hours() / 24
			if ageDays > 0 {
				weight = math.Pow(0.5, ageDays/s.decayHalfLifeDays)
			}
		}
		sums[signal.Tag] += signal.Score * weight
	}

	var maxSum float64
	for _, sum := range sums {
		if sum > maxSum {
			maxSum = sum
		}
	}

	vector := make(Vector, len(sums))
	if maxSum <= 0 {
		return vector, nil
	}
	for tag, sum := range sums {
		if sum <= 0 {
			continue
		}
		vector[tag] = sum / maxSum
	}
	return vector, nil
}
