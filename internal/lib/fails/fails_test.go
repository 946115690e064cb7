package fails_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/quintans/faults"
	"github.com/quintans/wallfetch/internal/lib/fails"
	"github.com/stretchr/testify/assert"
)

func TestValuerError(t *testing.T) {
	err := errors.New("error")
	err2 := fails.NewWithErr(err, "wrap1", "key", "value")
	err = faults.Errorf("something: %w", err2)
	err2 = fails.NewWithErr(err, "wrap2", "key2", "value2")

	assert.Equal(t, "wrap2 (key2=value2): something: wrap1 (key=value): error", fmt.Sprintf("%v", err2))
	assert.Equal(t, map[string]any{"key": "value", "key2": "value2"}, err2.Values())
}

func TestValue(t *testing.T) {
	err := faults.Errorf("searching: %w", fails.New("too many requests", "retry-after", "3"))

	v, ok := fails.Value(err, "retry-after")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	_, ok = fails.Value(errors.New("plain"), "retry-after")
	assert.False(t, ok)
}
