package models

import "time"

// CheckoutState represents where a checkout session is in its lifecycle
type CheckoutState string

const (
	CheckoutEditing    CheckoutState = "editing"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutDone       CheckoutState = "done"
	CheckoutFailed     CheckoutState = "failed"
)

// CheckoutSession drives the sequential, gated disclosure of participant
// forms. Only the currently open slot accepts input; a slot unlocks once its
// predecessor has validated, and earlier filled slots may be reopened for
// edits without disturbing the rest.
type CheckoutSession struct {
	ID        string              `json:"id"`
	State     CheckoutState       `json:"state"`
	Open      int                 `json:"open"` // index of the currently open slot
	Slots     []ParticipantSlot   `json:"slots"`
	Filled    map[int]bool        `json:"filled"` // slots that have validated at least once
	Errors    map[int]FieldErrors `json:"errors,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// ExpandSelection expands cart quantities into an ordered list of empty
// participant slots, one per unit purchased. Units of one ticket are emitted
// contiguously, tickets in catalog order; downstream grouping and gating
// rely on this ordering being stable for a fixed selection.
func ExpandSelection(selection []Ticket) []ParticipantSlot {
	var slots []ParticipantSlot
	for _, t := range selection {
		for i := 0; i < t.Quantity; i++ {
			slots = append(slots, ParticipantSlot{
				TicketID:   t.ID,
				TicketName: t.Name,
			})
		}
	}
	return slots
}

// NewCheckoutSession creates a fresh session over the given slots, editing
// from the first one
func NewCheckoutSession(id string, slots []ParticipantSlot) *CheckoutSession {
	return &CheckoutSession{
		ID:        id,
		State:     CheckoutEditing,
		Open:      0,
		Slots:     slots,
		Filled:    make(map[int]bool),
		Errors:    make(map[int]FieldErrors),
		CreatedAt: time.Now(),
	}
}

// CanOpen reports whether slot j may become the open slot: the first slot is
// always openable, a filled slot may be revisited, and the slot right after
// the last filled one is the next to unlock.
func (cs *CheckoutSession) CanOpen(j int) bool {
	if j < 0 || j >= len(cs.Slots) {
		return false
	}
	return j == 0 || cs.Filled[j] || cs.Filled[j-1]
}

// Reopen moves the open pointer to slot j without altering the filled state
// of any slot
func (cs *CheckoutSession) Reopen(j int) error {
	if cs.State != CheckoutEditing {
		return ErrNotEditing
	}
	if j < 0 || j >= len(cs.Slots) {
		return ErrSlotIndexOutOfRange
	}
	if !cs.CanOpen(j) {
		return ErrSlotLocked
	}
	cs.Open = j
	return nil
}

// Advance validates the open slot. On failure the session stays where it is
// and the ordered error list is recorded and returned. On success the slot
// is marked filled and the next slot opens; advancing past the last slot
// moves the session to submitting.
func (cs *CheckoutSession) Advance() (FieldErrors, error) {
	if cs.State != CheckoutEditing {
		return nil, ErrNotEditing
	}

	// Errors is dropped from the JSON encoding when empty, so a session
	// loaded from the store may carry a nil map.
	if cs.Errors == nil {
		cs.Errors = make(map[int]FieldErrors)
	}
	if cs.Filled == nil {
		cs.Filled = make(map[int]bool)
	}

	i := cs.Open
	errs := cs.Slots[i].Validate()
	if len(errs) > 0 {
		cs.Errors[i] = errs
		return errs, nil
	}

	delete(cs.Errors, i)
	cs.Filled[i] = true
	if i == len(cs.Slots)-1 {
		cs.State = CheckoutSubmitting
	} else {
		cs.Open = i + 1
	}
	return nil, nil
}

// ValidateAll re-validates every slot regardless of prior filled status and
// records the error map. It returns the first failing index, or -1 when all
// slots pass.
func (cs *CheckoutSession) ValidateAll() int {
	if cs.Errors == nil {
		cs.Errors = make(map[int]FieldErrors)
	}
	if cs.Filled == nil {
		cs.Filled = make(map[int]bool)
	}
	first := -1
	for i := range cs.Slots {
		errs := cs.Slots[i].Validate()
		if len(errs) > 0 {
			cs.Errors[i] = errs
			if first == -1 {
				first = i
			}
		} else {
			delete(cs.Errors, i)
			cs.Filled[i] = true
		}
	}
	return first
}

// TotalUnits returns the number of participant slots
func (cs *CheckoutSession) TotalUnits() int {
	return len(cs.Slots)
}

// Clone returns a deep copy sharing no slots or maps with the receiver
func (cs *CheckoutSession) Clone() *CheckoutSession {
	out := *cs
	out.Slots = make([]ParticipantSlot, len(cs.Slots))
	copy(out.Slots, cs.Slots)
	out.Filled = make(map[int]bool, len(cs.Filled))
	for k, v := range cs.Filled {
		out.Filled[k] = v
	}
	out.Errors = make(map[int]FieldErrors, len(cs.Errors))
	for k, v := range cs.Errors {
		errs := make(FieldErrors, len(v))
		copy(errs, v)
		out.Errors[k] = errs
	}
	return &out
}
