package schedule

// clock holds a local wall time (hour and minute).
type clock struct {
	H int
	M int
}

func (c clock) minutes() int { return c.H*60 + c.M }

// slotWindow is a parsed bookable window within a single day.
type slotWindow struct {
	Raw   string
	Start clock
	End   clock
}

// SlotStatus classifies how much capacity remains in a slot.
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusLimited   SlotStatus = "limited"
	SlotStatusFull      SlotStatus = "full"
)

// SlotClassification is the result of checking a slot against its booking
// count. It is a pure function of the count and capacity.
type SlotClassification struct {
	Status    SlotStatus `json:"status"`
	Remaining int        `json:"remaining"`
}
