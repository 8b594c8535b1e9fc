package model

import "testing"

func TestSeverityString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		severity Severity
		want     string
	}{
		{name: "low", severity: SeverityLow, want: "Leve"},
		{name: "moderate", severity: SeverityModerate, want: "Moderado"},
		{name: "serious", severity: SeveritySerious, want: "Grave"},
		{name: "critical", severity: SeverityCritical, want: "Crítico"},
		{name: "unknown", severity: Severity(99), want: "Desconhecido"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeverityWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		severity Severity
		want     int
	}{
		{name: "low", severity: SeverityLow, want: 1},
		{name: "moderate", severity: SeverityModerate, want: 2},
		{name: "serious", severity: SeveritySerious, want: 5},
		{name: "critical", severity: SeverityCritical, want: 10},
		{name: "unknown", severity: Severity(99), want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.severity.Weight(); got != tt.want {
				t.Errorf("Severity.Weight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	if !(SeverityLow < SeverityModerate &&
		SeverityModerate < SeveritySerious &&
		SeveritySerious < SeverityCritical) {
		t.Error("severity constants must be ordered from low to critical")
	}
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Severity
	}{
		{name: "critical", input: "Crítico", want: SeverityCritical},
		{name: "serious", input: "Grave", want: SeveritySerious},
		{name: "moderate", input: "Moderado", want: SeverityModerate},
		{name: "low", input: "Leve", want: SeverityLow},
		{name: "unknown maps to low", input: "whatever", want: SeverityLow},
		{name: "empty maps to low", input: "", want: SeverityLow},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseSeverity(tt.input); got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetCriterionInfo(t *testing.T) {
	t.Parallel()

	t.Run("known criterion carries both references", func(t *testing.T) {
		t.Parallel()
		info := GetCriterionInfo("1.1.1")
		if info.Level != LevelA {
			t.Errorf("Level = %v, want %v", info.Level, LevelA)
		}
		if info.WCAGRef != "WCAG 2.2 - 1.1.1" {
			t.Errorf("unexpected WCAGRef: %q", info.WCAGRef)
		}
		if info.ABNTRef != "ABNT 5.1 - Alternativas em texto" {
			t.Errorf("unexpected ABNTRef: %q", info.ABNTRef)
		}
	})

	t.Run("contrast is level AA", func(t *testing.T) {
		t.Parallel()
		if got := GetCriterionInfo("1.4.3").Level; got != LevelAA {
			t.Errorf("Level = %v, want %v", got, LevelAA)
		}
	})

	t.Run("unknown criterion defaults to level A", func(t *testing.T) {
		t.Parallel()
		info := GetCriterionInfo("9.9.9")
		if info.Level != LevelA {
			t.Errorf("Level = %v, want %v", info.Level, LevelA)
		}
		if info.WCAGRef != "" || info.ABNTRef != "" {
			t.Error("unknown criterion should have empty references")
		}
	})
}

func TestCriterionID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "full label", label: "1.1.1 - Alternativas em Texto", want: "1.1.1"},
		{name: "bare id", label: "2.4.2", want: "2.4.2"},
		{name: "extra spaces", label: " 3.1.1  - Idioma da Página", want: "3.1.1"},
		{name: "empty", label: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CriterionID(tt.label); got != tt.want {
				t.Errorf("CriterionID(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}
