package routing

import (
	"fmt"
	"math"
	"time"

	"github.com/shenikar/incident_dispatch/internal/models"
)

// Band - ступень шкалы: значение не больше UpTo получает Score
type Band struct {
	UpTo  float64
	Score float64
}

// Weights - веса компонент итоговой оценки, в сумме 1.0
type Weights struct {
	Distance     float64
	Workload     float64
	ResponseTime float64
	TypeMatch    float64
}

// Sum возвращает сумму весов
func (w Weights) Sum() float64 {
	return w.Distance + w.Workload + w.ResponseTime + w.TypeMatch
}

// Travel - допущения о движении к месту происшествия
type Travel struct {
	SpeedKMH    float64
	PrepMinutes float64
}

// Config - неизменяемый набор таблиц маршрутизации.
// Передается по значению в NewScorer/NewEligibilityFilter, которые делают собственную копию.
type Config struct {
	TypeMapping   map[models.IncidentCategory][]models.AuthorityType
	FallbackTypes []models.AuthorityType
	PerfectMatch  map[models.IncidentCategory]models.AuthorityType

	Weights Weights

	MaxDistanceKM        float64
	DistanceBands        []Band
	DistanceFloorScore   float64
	UnknownDistanceScore float64
	// AllowUnknownLocation - допускать ли к выбору подразделения без координат станции
	AllowUnknownLocation bool

	// WorkloadScores[i] - оценка при i активных назначениях, последний элемент для всех больших значений
	WorkloadScores []float64

	ResponseWindow     time.Duration
	ResponseBands      []Band
	ResponseFloorScore float64
	NoHistoryScore     float64

	TypeMatchPerfect  float64
	TypeMatchEligible float64
	TypeMatchOther    float64

	CriticalBoost float64
	// CriticalBoostMaxWorkload - усиление применяется при загрузке строго меньше этого значения
	CriticalBoostMaxWorkload int

	NormalTravel   Travel
	CriticalTravel Travel
}

// DefaultConfig возвращает стандартные таблицы маршрутизации
func DefaultConfig() Config {
	return Config{
		TypeMapping: map[models.IncidentCategory][]models.AuthorityType{
			models.CategoryFire:     {models.AuthorityFire},
			models.CategoryMedical:  {models.AuthorityAmbulance, models.AuthorityHospital},
			models.CategoryCrime:    {models.AuthorityPolice},
			models.CategoryAccident: {models.AuthorityPolice, models.AuthorityAmbulance},
			models.CategoryDisaster: {models.AuthorityFire, models.AuthorityPolice, models.AuthorityAmbulance},
			models.CategoryOther:    {models.AuthorityPolice},
		},
		FallbackTypes: []models.AuthorityType{models.AuthorityPolice},
		PerfectMatch: map[models.IncidentCategory]models.AuthorityType{
			models.CategoryFire:    models.AuthorityFire,
			models.CategoryMedical: models.AuthorityAmbulance,
			models.CategoryCrime:   models.AuthorityPolice,
		},

		Weights: Weights{
			Distance:     0.40,
			Workload:     0.30,
			ResponseTime: 0.20,
			TypeMatch:    0.10,
		},

		MaxDistanceKM: 50,
		DistanceBands: []Band{
			{UpTo: 5, Score: 1.0},
			{UpTo: 10, Score: 0.9},
			{UpTo: 20, Score: 0.7},
			{UpTo: 30, Score: 0.5},
			{UpTo: 40, Score: 0.3},
		},
		DistanceFloorScore:   0.1,
		UnknownDistanceScore: 0.5,
		AllowUnknownLocation: true,

		WorkloadScores: []float64{1.0, 0.8, 0.5, 0.3, 0.1},

		ResponseWindow: 30 * 24 * time.Hour,
		ResponseBands: []Band{
			{UpTo: 15, Score: 1.0},
			{UpTo: 25, Score: 0.8},
			{UpTo: 40, Score: 0.6},
		},
		ResponseFloorScore: 0.4,
		NoHistoryScore:     0.7,

		TypeMatchPerfect:  1.0,
		TypeMatchEligible: 0.8,
		TypeMatchOther:    0.5,

		CriticalBoost:            1.2,
		CriticalBoostMaxWorkload: 3,

		NormalTravel:   Travel{SpeedKMH: 40, PrepMinutes: 5},
		CriticalTravel: Travel{SpeedKMH: 60, PrepMinutes: 3},
	}
}

// Validate проверяет согласованность таблиц
func (c Config) Validate() error {
	if math.Abs(c.Weights.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("routing: weights must sum to 1.0, got %v", c.Weights.Sum())
	}
	if c.MaxDistanceKM <= 0 {
		return fmt.Errorf("routing: max distance must be positive")
	}
	if err := validateBands("distance", c.DistanceBands); err != nil {
		return err
	}
	if err := validateBands("response", c.ResponseBands); err != nil {
		return err
	}
	if len(c.WorkloadScores) == 0 {
		return fmt.Errorf("routing: workload scores are empty")
	}
	if c.NormalTravel.SpeedKMH <= 0 || c.CriticalTravel.SpeedKMH <= 0 {
		return fmt.Errorf("routing: travel speed must be positive")
	}
	if c.ResponseWindow <= 0 {
		return fmt.Errorf("routing: response window must be positive")
	}
	return nil
}

func validateBands(name string, bands []Band) error {
	for i := 1; i < len(bands); i++ {
		if bands[i].UpTo <= bands[i-1].UpTo {
			return fmt.Errorf("routing: %s bands must be strictly ascending", name)
		}
	}
	return nil
}

// TypesFor возвращает допустимые специализации для категории происшествия
func (c Config) TypesFor(category models.IncidentCategory) []models.AuthorityType {
	if types, ok := c.TypeMapping[category]; ok {
		return append([]models.AuthorityType(nil), types...)
	}
	return append([]models.AuthorityType(nil), c.FallbackTypes...)
}

func (c Config) clone() Config {
	out := c
	out.TypeMapping = make(map[models.IncidentCategory][]models.AuthorityType, len(c.TypeMapping))
	for k, v := range c.TypeMapping {
		out.TypeMapping[k] = append([]models.AuthorityType(nil), v...)
	}
	out.PerfectMatch = make(map[models.IncidentCategory]models.AuthorityType, len(c.PerfectMatch))
	for k, v := range c.PerfectMatch {
		out.PerfectMatch[k] = v
	}
	out.FallbackTypes = append([]models.AuthorityType(nil), c.FallbackTypes...)
	out.DistanceBands = append([]Band(nil), c.DistanceBands...)
	out.ResponseBands = append([]Band(nil), c.ResponseBands...)
	out.WorkloadScores = append([]float64(nil), c.WorkloadScores...)
	return out
}

func bandScore(bands []Band, v, floor float64) float64 {
	for _, b := range bands {
		if v <= b.UpTo {
			return b.Score
		}
	}
	return floor
}
