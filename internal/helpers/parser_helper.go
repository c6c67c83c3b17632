package helpers

import (
	"fmt"
	"strconv"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func ParseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func ParseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func ParseBoolOrDefault(s string, fallback bool) (bool, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.ParseBool(s)
}

// ValidateCoordinates checks latitude and longitude ranges when present.
func ValidateCoordinates(latitude, longitude *float64) error {
	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}
