package settings

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.LogLevel != LogLevelInfo {
		t.Errorf("Expected default log level %q, got %q", LogLevelInfo, s.LogLevel)
	}
	if s.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", s.Port)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9090")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.LogLevel != LogLevelDebug {
		t.Errorf("Expected log level %q, got %q", LogLevelDebug, s.LogLevel)
	}
	if s.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", s.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{
			name:     "valid settings",
			settings: Settings{LogLevel: LogLevelInfo, Port: 8080},
			wantErr:  false,
		},
		{
			name:     "unknown log level",
			settings: Settings{LogLevel: "verbose", Port: 8080},
			wantErr:  true,
		},
		{
			name:     "port out of range",
			settings: Settings{LogLevel: LogLevelInfo, Port: 70000},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
