package astro

import (
	"time"

	"github.com/tartampluch/go-salat/internal/config"
)

// Method is a named parameter set controlling the solar depression angles
// used to derive Fajr and Isha. Isha is either angle-based or a fixed
// interval after Maghrib (Umm al-Qura convention).
type Method struct {
	Name         string
	FajrAngle    float64 // degrees below the horizon
	IshaAngle    float64 // degrees below the horizon, ignored if IshaInterval > 0
	IshaInterval time.Duration
	AsrShadow    float64 // shadow-length factor (1 = standard, 2 = Hanafi)
}

var methods = map[string]Method{
	config.MethodEgyptian: {
		Name:      config.MethodEgyptian,
		FajrAngle: 19.5,
		IshaAngle: 17.5,
		AsrShadow: 1,
	},
	config.MethodUmmAlQura: {
		Name:         config.MethodUmmAlQura,
		FajrAngle:    18.5,
		IshaInterval: 90 * time.Minute,
		AsrShadow:    1,
	},
	config.MethodMWL: {
		Name:      config.MethodMWL,
		FajrAngle: 18,
		IshaAngle: 17,
		AsrShadow: 1,
	},
}

// MethodByName resolves a calculation method selector.
// Unknown names fall back to the default method rather than erroring.
func MethodByName(name string) Method {
	if m, ok := methods[name]; ok {
		return m
	}
	return methods[config.DefaultMethod]
}
