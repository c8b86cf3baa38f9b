package contrat

import (
	"testing"
	"time"
)

var today = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeStatut(t *testing.T) {
	tests := []struct {
		name    string
		resilie bool
		dateFin time.Time
		want    string
	}{
		{"future end date is active", false, day(2027, 1, 1), StatutActif},
		{"past end date is expired", false, day(2026, 1, 1), StatutExpire},
		{"ends today is still active", false, day(2026, 3, 15), StatutActif},
		{"no end date is active", false, time.Time{}, StatutActif},
		{"resilie wins over future date", true, day(2027, 1, 1), StatutResilie},
		{"resilie wins over past date", true, day(2020, 1, 1), StatutResilie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStatut(tt.resilie, tt.dateFin, today); got != tt.want {
				t.Errorf("ComputeStatut() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpiresWithin(t *testing.T) {
	tests := []struct {
		name    string
		resilie bool
		dateFin time.Time
		months  int
		want    bool
	}{
		{"90 days out is inside 6 months", false, today.AddDate(0, 0, 90), 6, true},
		{"400 days out is outside 6 months", false, today.AddDate(0, 0, 400), 6, false},
		{"exactly at the horizon", false, day(2026, 9, 15), 6, true},
		{"one day past the horizon", false, day(2026, 9, 16), 6, false},
		{"already expired does not alert", false, day(2026, 1, 1), 6, false},
		{"resilie does not alert", true, today.AddDate(0, 0, 30), 6, false},
		{"no end date does not alert", false, time.Time{}, 6, false},
		{"narrow window", false, today.AddDate(0, 0, 90), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpiresWithin(tt.resilie, tt.dateFin, today, tt.months); got != tt.want {
				t.Errorf("ExpiresWithin() = %v, want %v", got, tt.want)
			}
		})
	}
}
