package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"life-dashboard/internal/config"
	"life-dashboard/internal/handler"
	"life-dashboard/internal/repository"
	"life-dashboard/internal/service"
	"life-dashboard/internal/weather"
)

// app is the wired object graph shared by the commands.
type app struct {
	db       *gorm.DB
	loc      *time.Location
	now      func() time.Time
	services handler.Services
}

func newApp(cfg config.Config, logger *log.Logger) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	now := func() time.Time { return time.Now().In(loc) }

	db, err := repository.NewDB(cfg.Database.Path, logger.WithPrefix("gorm"))
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	var provider service.WeatherProvider
	if cfg.Weather.APIKey != "" {
		provider = weather.NewClient(weather.Options{
			BaseURL: cfg.Weather.BaseURL,
			APIKey:  cfg.Weather.APIKey,
			Units:   cfg.Weather.Units,
			Lang:    cfg.Weather.Lang,
		})
	} else {
		logger.Warn("weather.api_key not set: weather lookups serve stored snapshots only")
	}

	chores := service.NewChoreService(repository.NewChoreRepository(db), now, logger.WithPrefix("chores"))
	plants := service.NewPlantService(repository.NewPlantRepository(db), cfg.Plants.DefaultWaterInterval, now, logger.WithPrefix("plants"))

	return &app{
		db:  db,
		loc: loc,
		now: now,
		services: handler.Services{
			Chores:   chores,
			Plants:   plants,
			Calendar: service.NewCalendarService(repository.NewEventRepository(db)),
			Finance:  service.NewFinanceService(repository.NewFinanceRepository(db)),
			Weather: service.NewWeatherService(repository.NewWeatherRepository(db), provider,
				cfg.Weather.DefaultCity, now, logger.WithPrefix("weather")),
			Chat:    service.NewChatService(),
			Reports: service.NewReminderService(chores, plants, now),
		},
	}, nil
}

func (a *app) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
