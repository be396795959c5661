package display

import (
	"fmt"
	"strings"
	"time"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with binary units: whole bytes, then one
// decimal place from KB upwards.
func FormatSize(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d%s", bytes, sizeUnits[0])
	}
	return fmt.Sprintf("%.1f%s", size, sizeUnits[unit])
}

// FormatTimeAgo renders an elapsed duration in the largest whole unit.
func FormatTimeAgo(elapsed time.Duration) string {
	secs := int64(elapsed / time.Second)
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds ago", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh ago", secs/3600)
	default:
		return fmt.Sprintf("%dd ago", secs/86400)
	}
}

// FormatCompactNumber shortens large counts: 1234 -> 1.2k.
func FormatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000_000.0)) + "B"
	case n >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000.0)) + "M"
	case n >= 1_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000.0)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

// FormatDuration renders how long a search took.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	case d < time.Minute:
		return trimTrailingZero(fmt.Sprintf("%.1f", d.Seconds())) + "s"
	default:
		return trimTrailingZero(fmt.Sprintf("%.1f", d.Minutes())) + "m"
	}
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimSuffix(s, "0"), ".")
}
