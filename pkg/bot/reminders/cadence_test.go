package reminders

import (
	"reflect"
	"testing"
	"time"
)

func TestSlotHours(t *testing.T) {
	tests := []struct {
		perDay int
		want   []int
	}{
		{1, []int{11}},
		{2, []int{11, 15}},
		{3, []int{11, 15, 19}},
		{0, nil},
		{4, nil},
	}
	for _, tt := range tests {
		if got := SlotHours(tt.perDay); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("SlotHours(%d) = %v, want %v", tt.perDay, got, tt.want)
		}
	}
}

func TestInCadenceNeverOutsideTable(t *testing.T) {
	for perDay := 0; perDay <= 4; perDay++ {
		for hour := 0; hour < 24; hour++ {
			want := false
			for _, h := range SlotHours(perDay) {
				if h == hour {
					want = true
				}
			}
			if got := InCadence(perDay, hour); got != want {
				t.Fatalf("InCadence(%d, %d) = %v, want %v", perDay, hour, got, want)
			}
		}
	}
}

func TestLatestSlot(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	now := time.Date(2025, 6, 1, 15, 10, 0, 0, loc)
	hour, at, ok := LatestSlot(now, loc)
	if !ok || hour != 15 {
		t.Fatalf("expected 15:00 slot, got %d ok=%v", hour, ok)
	}
	if !at.Equal(time.Date(2025, 6, 1, 15, 0, 0, 0, loc)) {
		t.Fatalf("unexpected slot instant %v", at)
	}

	// 13:30 UTC is 15:30 in Berlin summer time.
	hour, _, ok = LatestSlot(time.Date(2025, 6, 1, 13, 30, 0, 0, time.UTC), loc)
	if !ok || hour != 15 {
		t.Fatalf("expected local 15:00 slot, got %d ok=%v", hour, ok)
	}

	if _, _, ok := LatestSlot(time.Date(2025, 6, 1, 10, 59, 0, 0, loc), loc); ok {
		t.Fatal("expected no slot before 11:00")
	}
}
