package https

import (
	"strconv"
	"time"

	"github.com/quintans/wallfetch/internal/lib/fails"
)

const RetryAfter = "retry-after"

// DelayFunc waits for as long as a throttled response asked for,
// defaulting to one second.
func DelayFunc(retry int, err error) time.Duration {
	if v, ok := fails.Value(err, RetryAfter); ok {
		if s, ok := v.(string); ok {
			if i, err := strconv.Atoi(s); err == nil {
				return time.Duration(i) * time.Second
			}
		}
	}

	return time.Second
}
