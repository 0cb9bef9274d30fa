package site

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport_Outcome(t *testing.T) {
	tests := []struct {
		name string
		fill func(*Report)
		want BuildOutcome
	}{
		{"clean run", func(*Report) {}, OutcomeSuccess},
		{"warning", func(r *Report) { r.AddWarning(errors.New("w")) }, OutcomeWarning},
		{"fatal", func(r *Report) { r.AddError(NewFatalStageError(StagePages, errors.New("x"))) }, OutcomeFailed},
		{"canceled", func(r *Report) {
			r.AddError(NewCanceledStageError(StageClean, context.Canceled))
		}, OutcomeCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport("id")
			tt.fill(r)
			r.Finish()
			assert.Equal(t, tt.want, r.Outcome)
		})
	}
}

func TestReport_Summary(t *testing.T) {
	r := NewReport("id")
	r.Pages = 3
	r.Listings = 1
	r.Finish()

	s := r.Summary()
	assert.Contains(t, s, "pages=3")
	assert.Contains(t, s, "listings=1")
	assert.Contains(t, s, "outcome=success")
}
