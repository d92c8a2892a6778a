package doctor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCheck struct {
	mock.Mock
}

func (m *mockCheck) Name() string     { return m.Called().String(0) }
func (m *mockCheck) Category() string { return m.Called().String(0) }
func (m *mockCheck) Run() *CheckResult {
	return m.Called().Get(0).(*CheckResult)
}

type fixableCheck struct {
	mockCheck
	fixes []FixResult
}

func (f *fixableCheck) CanFix() bool      { return len(f.fixes) > 0 }
func (f *fixableCheck) Fix() []FixResult { return f.fixes }

func newMockCheck(name string, result *CheckResult) *mockCheck {
	m := &mockCheck{}
	m.On("Name").Return(name).Maybe()
	m.On("Category").Return("test").Maybe()
	m.On("Run").Return(result).Once()
	return m
}

func TestRunner_Run(t *testing.T) {
	r := NewRunner()
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	r.now = func() time.Time { return fixed }

	checks := []*mockCheck{
		newMockCheck("a", &CheckResult{Status: SeverityPass}),
		newMockCheck("b", &CheckResult{Name: "custom", Status: SeverityInfo}),
		newMockCheck("c", &CheckResult{Status: SeverityWarning}),
		newMockCheck("d", &CheckResult{Status: SeverityError}),
		newMockCheck("e", &CheckResult{Status: SeverityError}),
	}
	for _, c := range checks {
		r.AddCheck(c)
	}

	report := r.Run()

	assert.Equal(t, fixed.UTC(), report.Timestamp)
	require.Len(t, report.Results, 5)
	assert.Equal(t, "a", report.Results[0].Name, "missing names are filled from the check")
	assert.Equal(t, "test", report.Results[0].Category)
	assert.Equal(t, "custom", report.Results[1].Name)
	assert.Equal(t, Summary{Passed: 1, Info: 1, Warnings: 1, Errors: 2}, report.Summary)
	assert.True(t, report.HasErrors())
	assert.True(t, report.HasWarnings())

	for _, c := range checks {
		c.AssertExpectations(t)
	}
}

func TestRunner_Empty(t *testing.T) {
	report := NewRunner().Run()
	assert.Empty(t, report.Results)
	assert.False(t, report.HasErrors())
	assert.False(t, report.HasWarnings())
}

func TestRunner_Fix(t *testing.T) {
	r := NewRunner()
	plain := newMockCheck("plain", &CheckResult{})
	nothing := &fixableCheck{}
	some := &fixableCheck{fixes: []FixResult{{Path: "/x", Fixed: true, Description: "chmod 0600"}}}
	r.AddCheck(plain)
	r.AddCheck(nothing)
	r.AddCheck(some)

	assert.Equal(t, []FixResult{{Path: "/x", Fixed: true, Description: "chmod 0600"}}, r.Fix())
	assert.Len(t, r.Checks(), 3)
}

func TestSeverity_String(t *testing.T) {
	tests := map[Severity]string{
		SeverityPass:    "pass",
		SeverityInfo:    "info",
		SeverityWarning: "warning",
		SeverityError:   "error",
		Severity(42):    "unknown",
	}
	for s, want := range tests {
		assert.Equal(t, want, s.String())
		text, err := s.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, want, string(text))
	}
}
