package booking

import "barberbook/internal/model"

// BookedIndices returns the catalog indices treated as already booked on d,
// in the order they are produced. There is no schedule behind this: the
// result is a fixed function of the date so every visitor sees the same
// "taken" slots.
//
//	seed  = day-of-month + zero-based month
//	count = seed%5 + 3
//	index = seed*(i+1)*7 % catalogLen, for i in [0, count)
//
// Repeated indices collapse, so fewer than count slots may come back.
func BookedIndices(d model.Date, catalogLen int) []int {
	if catalogLen <= 0 {
		return nil
	}
	seed := d.Day + int(d.Month) - 1
	count := seed%5 + 3

	out := make([]int, 0, count)
	seen := make(map[int]struct{}, count)
	for i := 0; i < count; i++ {
		idx := (seed * (i + 1) * 7) % catalogLen
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}

// Booked returns the labels of the unavailable slots on d.
func (c *Catalog) Booked(d model.Date) []string {
	idx := BookedIndices(d, len(c.slots))
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.slots[i].Label)
	}
	return out
}

// Availability reports, per catalog position, whether the slot can be chosen on d.
func (c *Catalog) Availability(d model.Date) []bool {
	avail := make([]bool, len(c.slots))
	for i := range avail {
		avail[i] = true
	}
	for _, i := range BookedIndices(d, len(c.slots)) {
		avail[i] = false
	}
	return avail
}

// Available reports whether label names a catalog slot that is free on d.
func (c *Catalog) Available(d model.Date, label string) bool {
	_, i, ok := c.Lookup(label)
	if !ok {
		return false
	}
	return c.Availability(d)[i]
}
