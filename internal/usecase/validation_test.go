package usecase

import (
	"reflect"
	"testing"
)

func TestValidShowtime(t *testing.T) {
	showtimes := []string{"10:00 AM", "1:00 PM", "4:00 PM", "7:00 PM", "10:00 PM"}

	tests := []struct {
		name     string
		showtime string
		want     bool
	}{
		{"exact match", "10:00 AM", true},
		{"trimmed match", "  7:00 PM  ", true},
		{"no fuzzy case", "10:00am", false},
		{"unknown time", "2:00 PM", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidShowtime(tt.showtime, showtimes); got != tt.want {
				t.Errorf("ValidShowtime(%q) = %v, want %v", tt.showtime, got, tt.want)
			}
		})
	}
}

func TestNormalizeSeats(t *testing.T) {
	tests := []struct {
		name    string
		seats   []string
		want    []string
		wantErr bool
	}{
		{"single seat", []string{"A1"}, []string{"A1"}, false},
		{"lowercase accepted", []string{"a1", "b5"}, []string{"A1", "B5"}, false},
		{"edge seats", []string{"A10", "H1", "H10"}, []string{"A10", "H1", "H10"}, false},
		{"whitespace trimmed", []string{" C3 ", "D4"}, []string{"C3", "D4"}, false},
		{"duplicates dropped order kept", []string{"B2", "A1", "B2"}, []string{"B2", "A1"}, false},
		{"blank entries skipped", []string{"", "A1", "  "}, []string{"A1"}, false},
		{"row zero rejected", []string{"A0"}, nil, true},
		{"seat eleven rejected", []string{"A11"}, nil, true},
		{"row I rejected", []string{"I1"}, nil, true},
		{"reversed code rejected", []string{"1A"}, nil, true},
		{"all blank", []string{"", " "}, nil, true},
		{"empty list", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSeats(tt.seats)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeSeats(%v) error = %v, wantErr %v", tt.seats, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeSeats(%v) = %v, want %v", tt.seats, got, tt.want)
			}
		})
	}
}
