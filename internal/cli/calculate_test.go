package cli

import (
	"bytes"
	"testing"

	"github.com/agbru/bigpi/internal/config"
	"github.com/agbru/bigpi/internal/engine"
	"github.com/agbru/bigpi/internal/orchestration"
)

// TestPrintExecutionConfig tests the PrintExecutionConfig function.
func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{
		Digits:       1000,
		Timeout:      60000000000, // 1 minute
		Threshold:    4096,
		SSAThreshold: 1000000,
	}

	PrintExecutionConfig(cfg, &buf)

	output := buf.String()

	// Check that output contains expected components
	if output == "" {
		t.Error("PrintExecutionConfig should produce output")
	}
	if len(output) < 50 {
		t.Errorf("PrintExecutionConfig output seems too short: %s", output)
	}
}

// TestPrintExecutionMode tests the PrintExecutionMode function.
func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := engine.NewDefaultFactory()

	t.Run("Single calculator mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		calc, err := factory.Get("karatsuba")
		if err != nil {
			t.Fatalf("factory.Get: %v", err)
		}
		calculators := []engine.Calculator{calc}

		PrintExecutionMode(calculators, &buf)

		output := buf.String()
		if output == "" {
			t.Error("PrintExecutionMode should produce output")
		}
	})

	t.Run("Multiple calculators mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		cfg := config.AppConfig{Algo: "all"}
		calculators := orchestration.GetCalculatorsToRun(cfg, factory)

		PrintExecutionMode(calculators, &buf)

		output := buf.String()
		if output == "" {
			t.Error("PrintExecutionMode should produce output for multiple calculators")
		}
	})
}
