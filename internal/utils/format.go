package utils

import (
	"fmt"
	"unicode/utf8"
)

const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60

	DescriptionLimit  = 200
	DescriptionMarker = "..."

	unknownValue = "Unknown"
)

// FormatDuration renders seconds as HH:MM:SS when at least an hour long and
// MM:SS otherwise. Zero renders as "Unknown".
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return unknownValue
	}

	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatViews renders a view count with M/K suffixes. Zero renders as "Unknown".
func FormatViews(count int64) string {
	switch {
	case count == 0:
		return unknownValue
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM views", float64(count)/1_000_000)
	case count >= 1_000:
		return fmt.Sprintf("%.1fK views", float64(count)/1_000)
	default:
		return fmt.Sprintf("%d views", count)
	}
}

// FormatSizeMB renders a byte count in megabytes with two decimals.
func FormatSizeMB(size int64) string {
	return fmt.Sprintf("%.2f MB", SizeMB(size))
}

func SizeMB(size int64) float64 {
	return float64(size) / (1024 * 1024)
}

// TruncateDescription keeps the first DescriptionLimit runes and always
// appends DescriptionMarker, even when nothing was cut.
func TruncateDescription(description string) string {
	if utf8.RuneCountInString(description) > DescriptionLimit {
		runes := []rune(description)
		description = string(runes[:DescriptionLimit])
	}
	return description + DescriptionMarker
}
