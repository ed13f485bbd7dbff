package recipient

// Batch is the ordered, pre-submission recipient list. Insertion
// order is display/export order. A batch always keeps at least one
// row so the editing surface never collapses to nothing.
type Batch struct {
	ID         string       `json:"batch_id"`
	Recipients []*Recipient `json:"recipients"`
}

// Find returns the recipient with the given id, or nil.
func (b *Batch) Find(id string) *Recipient {
	for _, r := range b.Recipients {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Remove drops the recipient with the given id. Removing the last
// remaining row is a no-op; reports whether a row was removed.
func (b *Batch) Remove(id string) bool {
	if len(b.Recipients) <= 1 {
		return false
	}
	for i, r := range b.Recipients {
		if r.ID == id {
			b.Recipients = append(b.Recipients[:i], b.Recipients[i+1:]...)
			return true
		}
	}
	return false
}

// TotalAmount recomputes the batch total from the live rows; it is
// never cached, so it cannot drift from the row amounts.
func (b *Batch) TotalAmount() float64 {
	var sum float64
	for _, r := range b.Recipients {
		sum += r.Amount
	}
	return sum
}

// AllValid reports readiness: a non-empty batch where every row has a
// name, a phone number, a positive amount, and a Valid status.
func (b *Batch) AllValid() bool {
	if len(b.Recipients) == 0 {
		return false
	}
	for _, r := range b.Recipients {
		if r.Name == "" || r.PhoneNumber == "" || r.Amount <= 0 || r.Status != StatusValid {
			return false
		}
	}
	return true
}
