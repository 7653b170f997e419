package services

import "testing"

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name     string
		month    int
		year     int
		from, to string
	}{
		{"december", 11, 2024, "2024-12-01", "2024-12-31"},
		{"february leap", 1, 2024, "2024-02-01", "2024-02-29"},
		{"february non leap", 1, 2025, "2025-02-01", "2025-02-28"},
		{"underflow to previous year", -1, 2025, "2024-12-01", "2024-12-31"},
		{"overflow to next year", 12, 2024, "2025-01-01", "2025-01-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := MonthWindow(tt.month, tt.year)
			if from.Key() != tt.from || to.Key() != tt.to {
				t.Errorf("MonthWindow(%d, %d) = %s..%s, want %s..%s",
					tt.month, tt.year, from.Key(), to.Key(), tt.from, tt.to)
			}
		})
	}
}
