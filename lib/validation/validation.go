package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/icco/sunburst/lib/dataset"
)

// ErrUnknownSeason is returned for season names outside the dataset.
var ErrUnknownSeason = errors.New("unknown season")

// ValidateSeason checks that a season name is one of Winter, Spring, Summer
// or Fall. Matching is case-sensitive.
func ValidateSeason(name string) (dataset.Season, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownSeason)
	}
	season, ok := dataset.ParseSeason(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSeason, name)
	}
	return season, nil
}

// ValidateCanvas checks chart dimensions.
func ValidateCanvas(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("canvas must be at least 1x1, got %dx%d", width, height)
	}
	if width > 10000 || height > 10000 {
		return fmt.Errorf("canvas must be at most 10000x10000, got %dx%d", width, height)
	}
	return nil
}

// WriteError writes a validation error response to the HTTP response writer.
// It takes a response writer, error message, and HTTP status code.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		slog.Error("Failed to encode error response", slog.Any("error", err))
	}
}
