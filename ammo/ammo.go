// Package ammo implements the slotted ammunition operations: consume,
// switch, auto-switch on empty, and read-only derivations.
package ammo

import "github.com/ttu/skirmish-sim/ecs"

// ConsumeAmmo subtracts 1 from the current slot's quantity. Returns
// the updated component and false if the current slot was already
// empty (no quantity is taken).
func ConsumeAmmo(a ecs.AmmoComponent) (ecs.AmmoComponent, bool) {
	if a.CurrentSlot < 0 || a.CurrentSlot >= len(a.Slots) {
		return a, false
	}
	if a.Slots[a.CurrentSlot].Quantity <= 0 {
		return a, false
	}
	a.Slots[a.CurrentSlot].Quantity--
	return a, true
}

// SwitchAmmoSlot sets the active slot, rejecting an out-of-range
// index.
func SwitchAmmoSlot(a ecs.AmmoComponent, index int) (ecs.AmmoComponent, bool) {
	if index < 0 || index >= len(a.Slots) {
		return a, false
	}
	a.CurrentSlot = index
	return a, true
}

// AutoSwitchIfEmpty switches to the first non-empty slot if the
// current slot is empty. Returns the updated component and whether a
// switch happened.
func AutoSwitchIfEmpty(a ecs.AmmoComponent) (ecs.AmmoComponent, bool) {
	if a.CurrentSlot >= 0 && a.CurrentSlot < len(a.Slots) && a.Slots[a.CurrentSlot].Quantity > 0 {
		return a, false
	}
	idx, ok := FindSlotWithAmmo(a)
	if !ok {
		return a, false
	}
	a.CurrentSlot = idx
	return a, true
}

// FindSlotWithAmmo returns the index of the first slot with
// quantity > 0.
func FindSlotWithAmmo(a ecs.AmmoComponent) (int, bool) {
	for i, slot := range a.Slots {
		if slot.Quantity > 0 {
			return i, true
		}
	}
	return 0, false
}

// GetTotalAmmo sums quantity across every slot.
func GetTotalAmmo(a ecs.AmmoComponent) int {
	total := 0
	for _, slot := range a.Slots {
		total += slot.Quantity
	}
	return total
}

// HasAmmo reports whether any slot has ammunition remaining.
func HasAmmo(a ecs.AmmoComponent) bool {
	return GetTotalAmmo(a) > 0
}
