package reminders

import "time"

var cadence = map[int][]int{
	1: {11},
	2: {11, 15},
	3: {11, 15, 19},
}

// allSlotHours is every hour any cadence can fire at, ascending.
var allSlotHours = []int{11, 15, 19}

// SlotHours returns the local hours reminders are sent at for the given
// reminders-per-day value, or nil for a value outside the table.
func SlotHours(remindersPerDay int) []int {
	hours := cadence[remindersPerDay]
	if hours == nil {
		return nil
	}
	out := make([]int, len(hours))
	copy(out, hours)
	return out
}

func InCadence(remindersPerDay, hour int) bool {
	for _, h := range cadence[remindersPerDay] {
		if h == hour {
			return true
		}
	}
	return false
}

// SlotTime is the instant of the given hour on now's calendar day in loc.
func SlotTime(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	year, month, day := local.Date()
	return time.Date(year, month, day, hour, 0, 0, 0, loc)
}

// LatestSlot returns the most recent slot of today in loc that is not after now.
func LatestSlot(now time.Time, loc *time.Location) (int, time.Time, bool) {
	for i := len(allSlotHours) - 1; i >= 0; i-- {
		at := SlotTime(now, allSlotHours[i], loc)
		if !now.Before(at) {
			return allSlotHours[i], at, true
		}
	}
	return 0, time.Time{}, false
}
