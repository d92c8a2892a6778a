package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestReporter_Report(t *testing.T) {
	result := &Result{}
	result.AddError("app.window_width", "value 10 is out of range [800, 10000]", 10)
	result.AddWarning("app.legacy", "unknown key ignored", "some val")
	result.AddInfo("version", "document will be migrated to 1.1.0", "0.9.0")
	result.Issues[0].Context = map[string]string{"file": "config.json"}

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText)
		if err := reporter.Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"1 error(s)",
			"1 warning(s)",
			"app.window_width: value 10 is out of range",
			"(file=config.json)",
			"[some val]",
			"Notes:",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatJSON)
		if err := reporter.Report(result); err != nil {
			t.Fatalf("Report() error: %v", err)
		}

		var decoded Result
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode JSON output: %v", err)
		}

		if len(decoded.Issues) != 3 {
			t.Errorf("decoded issues count = %d, want 3", len(decoded.Issues))
		}
		if decoded.Issues[0].Field != "app.window_width" {
			t.Errorf("first issue field = %q, want app.window_width", decoded.Issues[0].Field)
		}
	})

	t.Run("empty result text", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(&buf, FormatText)
		if err := reporter.Report(&Result{}); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "Settings are valid") {
			t.Error("output missing success message")
		}
	})

	t.Run("long values are truncated", func(t *testing.T) {
		long := &Result{}
		long.AddError("ui_state.open_tabs", "bad", strings.Repeat("x", 200))

		var buf bytes.Buffer
		if err := NewReporter(&buf, FormatText).Report(long); err != nil {
			t.Fatalf("Report() error: %v", err)
		}
		if !strings.Contains(buf.String(), "...") {
			t.Error("expected truncated value")
		}
		if strings.Contains(buf.String(), strings.Repeat("x", 60)) {
			t.Error("value was not truncated")
		}
	})
}
