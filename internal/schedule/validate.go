package schedule

import "sort"

// Normalize validates a doctor's declared availability and produces the
// canonical weekly schedule.
//
// Only the declared days are considered: a day present in the slot map but not
// declared is dropped without validation. For each declared day the slot list
// is checked for textual duplicates, sorted ascending by start time, and then
// walked pairwise so that no slot ends after the next one starts. Touching
// slots are permitted.
func Normalize(days []string, slots map[string][]Slot) (Week, error) {
	var week Week
	for _, label := range days {
		day, err := ParseWeekday(label)
		if err != nil {
			return Week{}, err
		}
		canonical, err := normalizeDay(day, slots[label])
		if err != nil {
			return Week{}, err
		}
		week[day] = canonical
	}
	return week, nil
}

func normalizeDay(day Weekday, slots []Slot) ([]Slot, error) {
	seen := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return nil, err
		}
		key := slot.String()
		if _, found := seen[key]; found {
			return nil, &DuplicateSlotError{Day: day, Slot: slot}
		}
		seen[key] = struct{}{}
	}
	canonical := make([]Slot, len(slots))
	copy(canonical, slots)
	starts := make(map[string]int, len(canonical))
	for _, slot := range canonical {
		// Validate above guarantees both ends parse.
		minutes, _ := slot.StartMinutes()
		starts[slot.Start] = minutes
	}
	sort.SliceStable(canonical, func(i, j int) bool {
		return starts[canonical[i].Start] < starts[canonical[j].Start]
	})
	for i := 0; i < len(canonical)-1; i++ {
		first, second := canonical[i], canonical[i+1]
		firstEnd, _ := first.EndMinutes()
		secondStart, _ := second.StartMinutes()
		if firstEnd > secondStart {
			return nil, &OverlappingSlotsError{Day: day, First: first, Second: second}
		}
	}
	return canonical, nil
}
