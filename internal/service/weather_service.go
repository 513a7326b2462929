package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"life-dashboard/internal/model"
	"life-dashboard/internal/repository"
)

// ErrWeatherUnavailable is returned when the provider failed and no stored
// snapshot exists for the city.
var ErrWeatherUnavailable = errors.New("weather unavailable")

// WeatherProvider fetches live conditions.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (model.WeatherSnapshot, error)
	Forecast(ctx context.Context, city string) ([]model.ForecastDay, error)
}

// SnapshotInput represents a manually recorded observation.
type SnapshotInput struct {
	City        string
	Temperature *float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
	Description string
	Icon        string
	ObservedAt  time.Time
}

// WeatherService serves lookups and keeps snapshots of every result.
type WeatherService struct {
	repo        *repository.WeatherRepository
	provider    WeatherProvider
	defaultCity string
	now         func() time.Time
	logger      *log.Logger
}

// NewWeatherService builds the service; provider may be nil, in which case
// lookups only serve stored snapshots.
func NewWeatherService(repo *repository.WeatherRepository, provider WeatherProvider, defaultCity string, now func() time.Time, logger *log.Logger) *WeatherService {
	if now == nil {
		now = time.Now
	}
	return &WeatherService{repo: repo, provider: provider, defaultCity: defaultCity, now: now, logger: logger}
}

// Lookup returns current conditions and forecast for city. When the provider
// fails the newest stored snapshot is returned marked stale.
func (s *WeatherService) Lookup(ctx context.Context, city string) (*model.Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = s.defaultCity
	}
	if city == "" {
		return nil, invalid("city is required")
	}

	if s.provider != nil {
		w, err := s.live(ctx, city)
		if err == nil {
			return w, nil
		}
		s.logger.Warn("weather provider failed, falling back to stored snapshot", "city", city, "err", err)
	}

	snap, err := s.repo.Latest(ctx, city)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWeatherUnavailable, city)
		}
		return nil, err
	}
	return &model.Weather{Current: *snap, Forecast: []model.ForecastDay{}, Stale: true}, nil
}

func (s *WeatherService) live(ctx context.Context, city string) (*model.Weather, error) {
	current, err := s.provider.Current(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}
	forecast, err := s.provider.Forecast(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	if forecast == nil {
		forecast = []model.ForecastDay{}
	}

	if err := s.repo.Save(ctx, &current); err != nil {
		// The live answer is still good; only the history misses a row.
		s.logger.Error("storing weather snapshot", "city", city, "err", err)
	}
	return &model.Weather{Current: current, Forecast: forecast}, nil
}

// Record stores a snapshot supplied by the client.
func (s *WeatherService) Record(ctx context.Context, input SnapshotInput) (*model.WeatherSnapshot, error) {
	city := strings.TrimSpace(input.City)
	if city == "" || input.Temperature == nil {
		return nil, invalid("city and temperature are required")
	}
	observed := input.ObservedAt
	if observed.IsZero() {
		observed = s.now()
	}
	snap := model.WeatherSnapshot{
		City:        city,
		Temperature: *input.Temperature,
		FeelsLike:   input.FeelsLike,
		Humidity:    input.Humidity,
		WindSpeed:   input.WindSpeed,
		Description: input.Description,
		Icon:        input.Icon,
		ObservedAt:  observed,
	}
	if err := s.repo.Save(ctx, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Refresh looks up the default city so a fresh snapshot is on file.
func (s *WeatherService) Refresh(ctx context.Context) error {
	if s.provider == nil || s.defaultCity == "" {
		return nil
	}
	w, err := s.live(ctx, s.defaultCity)
	if err != nil {
		return err
	}
	s.logger.Debug("weather refreshed", "city", w.Current.City, "temperature", w.Current.Temperature)
	return nil
}
