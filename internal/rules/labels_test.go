package rules

import (
	"reflect"
	"testing"
)

func TestRequiredLabels_Evaluate(t *testing.T) {
	tests := []struct {
		name         string
		required     []string
		labels       []string
		labelsKnown  bool
		wantSkipped  string
		wantMessages []string
	}{
		{
			name:        "all present",
			required:    []string{"reviewed", "qa"},
			labels:      []string{"qa", "reviewed", "extra"},
			labelsKnown: true,
		},
		{
			name:        "one missing",
			required:    []string{"reviewed", "qa"},
			labels:      []string{"reviewed"},
			labelsKnown: true,
			wantMessages: []string{
				"Required label 'qa' is missing",
			},
		},
		{
			name:        "all missing",
			required:    []string{"reviewed", "qa"},
			labels:      nil,
			labelsKnown: true,
			wantMessages: []string{
				"Required label 'reviewed' is missing",
				"Required label 'qa' is missing",
			},
		},
		{
			name:        "nothing required",
			required:    nil,
			labels:      nil,
			labelsKnown: false,
		},
		{
			name:        "labels unknown",
			required:    []string{"reviewed"},
			labelsKnown: false,
			wantSkipped: "required labels",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := requiredLabels{required: tt.required}
			res := e.Evaluate(&PullRequest{Labels: tt.labels, LabelsKnown: tt.labelsKnown})

			if res.Skipped != tt.wantSkipped {
				t.Errorf("Skipped = %q, want %q", res.Skipped, tt.wantSkipped)
			}

			var got []string
			for _, f := range res.Findings {
				if f.Severity != SeverityFailure {
					t.Errorf("Severity = %v, want failure", f.Severity)
				}
				got = append(got, f.Message)
			}
			if !reflect.DeepEqual(got, tt.wantMessages) {
				t.Errorf("messages = %v, want %v", got, tt.wantMessages)
			}
		})
	}
}
