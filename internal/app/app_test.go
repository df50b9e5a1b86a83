package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfigValidate(t *testing.T) {
	cfg := &AppConfig{
		Host:      "0.0.0.0",
		Port:      8080,
		VideoPath: "/srv/video.mp4",
		LogLevel:  "INFO",
	}
	require.NoError(t, cfg.Validate())
}

func TestAppConfigValidateMissing(t *testing.T) {
	tests := []struct {
		name string
		cfg  AppConfig
	}{
		{
			name: "missing host",
			cfg:  AppConfig{Port: 8080, VideoPath: "/srv/video.mp4"},
		},
		{
			name: "missing port",
			cfg:  AppConfig{Host: "0.0.0.0", VideoPath: "/srv/video.mp4"},
		},
		{
			name: "missing video path",
			cfg:  AppConfig{Host: "0.0.0.0", Port: 8080},
		},
		{
			name: "port out of range",
			cfg:  AppConfig{Host: "0.0.0.0", Port: 70000, VideoPath: "/srv/video.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
