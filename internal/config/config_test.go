package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("OUTPUT_DIR")
	os.Unsetenv("TTS_TLD")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("METRICS_ENABLED")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() failed: %v", err)
	}

	if cfg.OutputDir != "output" {
		t.Errorf("Expected default OutputDir 'output', got '%s'", cfg.OutputDir)
	}

	if cfg.TTSTLD != "com" {
		t.Errorf("Expected default TTSTLD 'com', got '%s'", cfg.TTSTLD)
	}

	if cfg.CatalogURL != "" {
		t.Errorf("Expected empty default CatalogURL, got '%s'", cfg.CatalogURL)
	}

	if cfg.LogFile != "ttsdesk.log" {
		t.Errorf("Expected default LogFile 'ttsdesk.log', got '%s'", cfg.LogFile)
	}

	if cfg.MetricsPort != "9464" {
		t.Errorf("Expected default MetricsPort '9464', got '%s'", cfg.MetricsPort)
	}
}

func TestLoad(t *testing.T) {
	os.Setenv("OUTPUT_DIR", "clips")
	os.Setenv("TTS_TLD", "co.uk")
	os.Setenv("TTS_DEFAULT_LANGUAGE", "fr")
	defer os.Unsetenv("OUTPUT_DIR")
	defer os.Unsetenv("TTS_TLD")
	defer os.Unsetenv("TTS_DEFAULT_LANGUAGE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OutputDir != "clips" {
		t.Errorf("Expected OutputDir 'clips', got '%s'", cfg.OutputDir)
	}

	if cfg.TTSTLD != "co.uk" {
		t.Errorf("Expected TTSTLD 'co.uk', got '%s'", cfg.TTSTLD)
	}

	if cfg.DefaultLanguage != "fr" {
		t.Errorf("Expected DefaultLanguage 'fr', got '%s'", cfg.DefaultLanguage)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "loud")
	defer os.Unsetenv("LOG_LEVEL")

	_, err := LoadFromEnv()
	if err == nil {
		t.Error("Expected error for invalid LOG_LEVEL")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{OutputDir: "output", TTSTLD: "com", LogLevel: "info"},
		},
		{
			name:    "empty output dir",
			cfg:     Config{OutputDir: "  ", TTSTLD: "com", LogLevel: "info"},
			wantErr: true,
		},
		{
			name:    "no endpoint",
			cfg:     Config{OutputDir: "output", LogLevel: "info"},
			wantErr: true,
		},
		{
			name: "base url without tld",
			cfg:  Config{OutputDir: "output", TTSBaseURL: "http://localhost:1234", LogLevel: "debug"},
		},
		{
			name:    "bad metrics port",
			cfg:     Config{OutputDir: "output", TTSTLD: "com", LogLevel: "info", MetricsEnabled: true, MetricsPort: "abc"},
			wantErr: true,
		},
		{
			name: "metrics port ignored when disabled",
			cfg:  Config{OutputDir: "output", TTSTLD: "com", LogLevel: "info", MetricsPort: "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
