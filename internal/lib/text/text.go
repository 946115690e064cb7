package text

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Fmt formats only when there are args, so a message with a literal % is
// left untouched.
func Fmt(format string, args ...any) string {
	if len(args) > 0 {
		// the conversion keeps vet from checking a dynamic format
		return fmt.Sprintf(any(format).(string), args...)
	}
	return format
}

// CompactNumber renders counters the way the result badges show them:
// 12300 is "12.3k", 12999 rounds to "13.0k" and 1000000000 is "1.0b".
func CompactNumber(n int) string {
	if n < 0 {
		return "-" + CompactNumber(-n)
	}
	value, prefix := humanize.ComputeSI(float64(n))
	switch prefix {
	case "":
		return fmt.Sprintf("%.0f", value)
	case "M":
		prefix = "m"
	case "G":
		prefix = "b"
	}
	return fmt.Sprintf("%.1f%s", value, strings.ToLower(prefix))
}

// Size renders a file size in bytes, e.g. "1.2 MB".
func Size(bytes int64) string {
	if bytes <= 0 {
		return "?"
	}
	return humanize.Bytes(uint64(bytes))
}
