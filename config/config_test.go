package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	require.Equal(t, 10*time.Second, SampleInterval())
	require.Equal(t, 30*time.Second, PositionMaxAge())
	require.Equal(t, 0.15, PlatformFeeRate())
	require.Equal(t, 10, AppConfig.TrailWindow)
	require.Equal(t, 30, AppConfig.ReminderLeadMin)
	require.Equal(t, "8080", AppConfig.AppPort)
}
