// Package farmctx accumulates durable facts about the farmer across the
// whole conversation and renders them for advisor prompts.
package farmctx

import (
	"strings"
)

// Slot names, also used as keys in serialized context maps.
const (
	SlotSoilType     = "soil_type"
	SlotLocation     = "location"
	SlotPreviousCrop = "previous_crop"
	SlotFarmerType   = "farmer_type"
	SlotCurrentCrop  = "current_crop"
)

// slotOrder fixes the rendering and snapshot order.
var slotOrder = []string{SlotSoilType, SlotLocation, SlotPreviousCrop, SlotFarmerType, SlotCurrentCrop}

// Slots returns the slot names in canonical order.
func Slots() []string {
	out := make([]string, len(slotOrder))
	copy(out, slotOrder)
	return out
}

// FarmerContext holds what the farmer has told us so far. Empty string means
// the slot is still unknown.
type FarmerContext struct {
	SoilType     string
	Location     string
	PreviousCrop string
	FarmerType   string
	CurrentCrop  string
}

func New(farmerType string) *FarmerContext {
	return &FarmerContext{FarmerType: farmerType}
}

func (c *FarmerContext) Clone() *FarmerContext {
	cp := *c
	return &cp
}

func (c *FarmerContext) Get(slot string) string {
	switch slot {
	case SlotSoilType:
		return c.SoilType
	case SlotLocation:
		return c.Location
	case SlotPreviousCrop:
		return c.PreviousCrop
	case SlotFarmerType:
		return c.FarmerType
	case SlotCurrentCrop:
		return c.CurrentCrop
	}
	return ""
}

func (c *FarmerContext) set(slot, value string) {
	switch slot {
	case SlotSoilType:
		c.SoilType = value
	case SlotLocation:
		c.Location = value
	case SlotPreviousCrop:
		c.PreviousCrop = value
	case SlotFarmerType:
		c.FarmerType = value
	case SlotCurrentCrop:
		c.CurrentCrop = value
	}
}

func (c *FarmerContext) SetCurrentCrop(crop string) {
	c.CurrentCrop = crop
}

// Empty reports whether no slot carries a value yet.
func (c *FarmerContext) Empty() bool {
	for _, slot := range slotOrder {
		if c.Get(slot) != "" {
			return false
		}
	}
	return true
}

// Map returns the known slots for inclusion in results. Unknown slots are
// omitted.
func (c *FarmerContext) Map() map[string]string {
	m := make(map[string]string)
	for _, slot := range slotOrder {
		if v := c.Get(slot); v != "" {
			m[slot] = v
		}
	}
	return m
}

// Snapshot returns a deterministic key of the current slot values. Two
// contexts with the same knowledge produce the same snapshot.
func (c *FarmerContext) Snapshot() string {
	var b strings.Builder
	for i, slot := range slotOrder {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(slot)
		b.WriteByte('=')
		b.WriteString(c.Get(slot))
	}
	return b.String()
}

// PromptBlock renders the known facts as a system-prompt section that tells
// advisors not to ask for them again. Returns "" when nothing is known.
func (c *FarmerContext) PromptBlock() string {
	if c.Empty() {
		return ""
	}

	bar := strings.Repeat("=", 44)
	var b strings.Builder
	b.WriteString("\n\n" + bar + "\n")
	b.WriteString("CRITICAL FARMER INFORMATION (DO NOT ASK AGAIN):\n")
	b.WriteString(bar + "\n\n")

	for _, slot := range slotOrder {
		if v := c.Get(slot); v != "" {
			b.WriteString(strings.ToUpper(strings.ReplaceAll(slot, "_", " ")))
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteByte('\n')
		}
	}

	b.WriteString("\n" + bar + "\n")
	b.WriteString("YOU ALREADY KNOW THIS INFORMATION - DO NOT ASK FOR IT AGAIN!\n")
	b.WriteString("Use this information directly in your responses!\n")
	b.WriteString(bar + "\n")
	return b.String()
}
