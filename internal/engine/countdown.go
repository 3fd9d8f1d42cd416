package engine

import (
	"fmt"
	"time"

	"github.com/raushan22882917/f-7556/internal/models"
)

// CountdownPlaceholder is displayed when there is no upcoming event to
// count down to.
const CountdownPlaceholder = "N/A"

// Remaining is the duration left until target, clamped at zero so callers
// never see a negative countdown.
func Remaining(target, now time.Time) time.Duration {
	d := target.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatRemaining renders a remaining duration as e.g. "2d 3h 14m". Leading
// zero units are dropped; a duration of zero renders as "Starting now".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "Starting now"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// CountdownDisplay produces the countdown string for the nearest upcoming
// hackathon, or the "N/A" placeholder when target is nil.
func CountdownDisplay(target *models.Hackathon, now time.Time) string {
	if target == nil {
		return CountdownPlaceholder
	}
	return FormatRemaining(Remaining(target.StartDate, now))
}
