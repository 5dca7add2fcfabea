package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDrainTime(t *testing.T) {
	require.Equal(t, time.Duration(0), drainTime(0))
	// 960 bytes per second at 9600 baud with 10 bits per byte
	require.Equal(t, time.Second, drainTime(960))
	require.Equal(t, 25*time.Millisecond, drainTime(24))
}
