package observe

import (
	"context"
	"testing"
)

// TestConfig_Validate exercises validation rules.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			"missing service name",
			Config{},
			true,
		},
		{
			"all disabled",
			Config{ServiceName: "queryops"},
			false,
		},
		{
			"valid tracing",
			Config{
				ServiceName: "queryops",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 0.5},
			},
			false,
		},
		{
			"unknown tracing exporter",
			Config{
				ServiceName: "queryops",
				Tracing:     TracingConfig{Enabled: true, Exporter: "bogus"},
			},
			true,
		},
		{
			"sample pct out of range",
			Config{
				ServiceName: "queryops",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.5},
			},
			true,
		},
		{
			"unknown metrics exporter",
			Config{
				ServiceName: "queryops",
				Metrics:     MetricsConfig{Enabled: true, Exporter: "bogus"},
			},
			true,
		},
		{
			"unknown log level",
			Config{
				ServiceName: "queryops",
				Logging:     LoggingConfig{Enabled: true, Level: "shout"},
			},
			true,
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

// TestNewObserver_Disabled verifies disabled subsystems yield working no-ops.
func TestNewObserver_Disabled(t *testing.T) {
	cfg := Config{
		ServiceName: "observe-test",
		Tracing:     TracingConfig{Enabled: false, Exporter: "none"},
		Metrics:     MetricsConfig{Enabled: false, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: false, Level: "info"},
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	if obs.Tracer() == nil {
		t.Fatal("expected non-nil tracer")
	}
	if obs.Meter() == nil {
		t.Fatal("expected non-nil meter")
	}
	if obs.Logger() == nil {
		t.Fatal("expected non-nil logger")
	}

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

// TestNewObserver_InvalidConfig verifies validation runs before setup.
func TestNewObserver_InvalidConfig(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected error for empty config")
	}
}
