package moderation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxTimeout is the longest sanction Discord accepts for a member timeout.
const MaxTimeout = 28 * 24 * time.Hour

var (
	ErrNoDuration    = errors.New("no duration tokens found")
	ErrDurationRange = errors.New("duration must be between 1 second and 28 days")
)

var durationPattern = regexp.MustCompile(`(\d+)([smhd])`)

var unitSeconds = map[string]int64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
}

// ParseDuration turns human input like "30m", "2h" or "1h30m" into a span.
// Text between tokens is ignored; repeated units accumulate, so "1h1h" is
// two hours. Zero matched tokens is an error, as is any total outside
// (0, MaxTimeout].
func ParseDuration(input string) (time.Duration, error) {
	matches := durationPattern.FindAllStringSubmatch(strings.ToLower(input), -1)
	if len(matches) == 0 {
		return 0, ErrNoDuration
	}

	maxSeconds := int64(MaxTimeout / time.Second)
	var total int64
	for _, match := range matches {
		amount, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil || amount > maxSeconds {
			return 0, ErrDurationRange
		}
		total += amount * unitSeconds[match[2]]
		if total > maxSeconds {
			return 0, ErrDurationRange
		}
	}
	if total <= 0 {
		return 0, ErrDurationRange
	}
	return time.Duration(total) * time.Second, nil
}
