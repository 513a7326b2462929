package model

import "time"

// WeatherSnapshot stores the current conditions seen for a city.
type WeatherSnapshot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	City        string    `gorm:"not null;index" json:"city"`
	Temperature float64   `gorm:"not null" json:"temperature"`
	FeelsLike   float64   `json:"feelsLike"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	ObservedAt  time.Time `gorm:"index" json:"timestamp"`
	CreatedAt   time.Time `json:"-"`
}

// ForecastDay is the first forecast slot seen for a calendar day.
type ForecastDay struct {
	Date        time.Time `json:"date"`
	Temperature float64   `json:"temperature"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Humidity    int       `json:"humidity"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
}

// Weather is the combined lookup result returned to the dashboard.
type Weather struct {
	Current  WeatherSnapshot `json:"current"`
	Forecast []ForecastDay   `json:"forecast"`
	Stale    bool            `json:"stale"`
}
