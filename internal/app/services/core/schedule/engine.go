package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"medisync-service/internal/app/models"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)?$`)

// parseClockFlex parses "14:30", "02:30 PM", "2:30pm" and the legacy
// convention that bare hours 2-5 with no meridiem are afternoon times
// (02:00 in stored slot data means 14:00). Inherited from the existing
// booking data; callers must apply it consistently or slots misclassify
// as past/future.
func parseClockFlex(s string) (clock, bool) {
	m := clockPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return clock{}, false
	}

	hours, err1 := strconv.Atoi(m[1])
	mins, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil || mins < 0 || mins > 59 || hours < 0 || hours > 23 {
		return clock{}, false
	}

	switch m[3] {
	case "AM", "PM":
		if hours < 1 || hours > 12 {
			return clock{}, false
		}
		if m[3] == "PM" && hours != 12 {
			hours += 12
		}
		if m[3] == "AM" && hours == 12 {
			hours = 0
		}
	default:
		// No meridiem: 24-hour values pass through, legacy afternoon hours
		// shift to PM.
		if hours >= 2 && hours <= 5 {
			hours += 12
		}
	}

	return clock{H: hours, M: mins}, true
}

// parseSlotWindow parses "HH:mm" or "HH:mm-HH:mm". A missing end defaults to
// start plus slotMinutes.
func parseSlotWindow(raw string, slotMinutes int) (slotWindow, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return slotWindow{}, fmt.Errorf("empty slot string")
	}

	startStr, endStr, hasEnd := strings.Cut(trimmed, "-")
	start, ok := parseClockFlex(startStr)
	if !ok {
		return slotWindow{}, fmt.Errorf("invalid slot start %q", raw)
	}

	var end clock
	if hasEnd {
		end, ok = parseClockFlex(endStr)
		if !ok {
			return slotWindow{}, fmt.Errorf("invalid slot end %q", raw)
		}
	} else {
		total := start.minutes() + slotMinutes
		end = clock{H: (total / 60) % 24, M: total % 60}
	}

	if end.minutes() <= start.minutes() {
		return slotWindow{}, fmt.Errorf("slot end before start %q", raw)
	}

	return slotWindow{Raw: trimmed, Start: start, End: end}, nil
}

// ComputeAvailableSlots returns the bookable subset of a doctor's configured
// slots for the target date, preserving the configured order. When date is
// today (relative to now), slots whose window has already started are
// dropped; a patient cannot book into a consultation that is underway.
// Malformed entries are skipped, never fatal; callers that need to surface
// them should log via the usecase.
//
// skipped receives the raw value of every malformed entry; pass nil to
// ignore them.
func ComputeAvailableSlots(slots []string, date string, now time.Time, slotMinutes int, skipped func(raw string, err error)) []string {
	out := make([]string, 0, len(slots))
	isToday := now.Format(models.DateLayout) == date
	nowMinutes := now.Hour()*60 + now.Minute()

	for _, raw := range slots {
		w, err := parseSlotWindow(raw, slotMinutes)
		if err != nil {
			if skipped != nil {
				skipped(raw, err)
			}
			continue
		}
		if isToday && w.Start.minutes() <= nowMinutes {
			continue
		}
		out = append(out, w.Raw)
	}
	return out
}

// SlotInPast reports whether a slot's window has fully elapsed for the given
// date relative to now. Dates compare lexically in the calendar layout.
func SlotInPast(slot, date string, now time.Time, slotMinutes int) (bool, error) {
	w, err := parseSlotWindow(slot, slotMinutes)
	if err != nil {
		return false, err
	}
	today := now.Format(models.DateLayout)
	if date != today {
		return date < today, nil
	}
	return w.End.minutes() <= now.Hour()*60+now.Minute(), nil
}

// ClassifySlotAvailability maps the booking count for a slot to its
// selectability. remaining <= 0 is full, 1-2 is limited, 3+ is available.
// Remaining reports capacity minus count clamped at zero: an overbooked
// slot reads as full with nothing left rather than a negative number.
func ClassifySlotAvailability(slot string, bookingCounts map[string]int, capacity int) SlotClassification {
	remaining := capacity - bookingCounts[slot]
	cls := SlotClassification{Remaining: remaining}
	switch {
	case remaining <= 0:
		cls.Status = SlotStatusFull
		cls.Remaining = 0
	case remaining <= 2:
		cls.Status = SlotStatusLimited
	default:
		cls.Status = SlotStatusAvailable
	}
	return cls
}

// CanBook reports whether a new appointment may be submitted for the slot.
// This is advisory on the read path; the creation path re-checks under a
// lock and remains the final arbiter.
func CanBook(slot string, bookingCounts map[string]int, capacity int) bool {
	return ClassifySlotAvailability(slot, bookingCounts, capacity).Remaining > 0
}
