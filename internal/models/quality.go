package models

import (
	"regexp"
	"strconv"
	"strings"
)

// Quality is the user-selected download quality. Values outside the fixed
// list are accepted and treated as QualityHighest.
type Quality string

const (
	QualityHighest   Quality = "Highest Quality"
	Quality1080p     Quality = "1080p"
	Quality720p      Quality = "720p"
	Quality480p      Quality = "480p"
	Quality360p      Quality = "360p"
	QualityAudioOnly Quality = "Audio Only (MP3)"
)

var heightPattern = regexp.MustCompile(`^(\d+)p$`)

// Qualities returns the options offered by the UI in display order.
func Qualities() []Quality {
	return []Quality{QualityHighest, Quality1080p, Quality720p, Quality480p, Quality360p, QualityAudioOnly}
}

// ParseQuality normalises user input. An empty string selects QualityHighest.
func ParseQuality(value string) Quality {
	value = strings.TrimSpace(value)
	if value == "" {
		return QualityHighest
	}
	if strings.EqualFold(value, "Audio Only") {
		return QualityAudioOnly
	}
	return Quality(value)
}

func (q Quality) String() string {
	return string(q)
}

// IsAudioOnly reports whether the quality selects the audio track only.
func (q Quality) IsAudioOnly() bool {
	return q == QualityAudioOnly
}

// Height returns the vertical resolution cap for "Np" qualities.
func (q Quality) Height() (int, bool) {
	matches := heightPattern.FindStringSubmatch(string(q))
	if len(matches) < 2 {
		return 0, false
	}
	height, err := strconv.Atoi(matches[1])
	if err != nil || height <= 0 {
		return 0, false
	}
	return height, true
}
