package ir

// This file implements GetEffects() for every instruction type, one
// function per type, the way the rest of this corpus separates effect
// classification from control flow. Effects here describe only
// slot (local-variable) reads/writes; the register file itself is
// pure SSA and never needs tracking.

// EffectKind classifies an instruction's interaction with local slots.
type EffectKind int

const (
	EffectPure EffectKind = iota
	EffectSlotRead
	EffectSlotWrite
)

// Effect pairs a kind with the slot name it concerns (empty for pure).
type Effect struct {
	Kind EffectKind
	Slot string
}

// Effectful is implemented by every instruction type via GetEffects;
// callers that only care about slot reads/writes (not opcode-specific
// fields) can go through this instead of a full type switch.
type Effectful interface {
	GetEffects() []Effect
}

func (i *AllocSlotInst) GetEffects() []Effect {
	return []Effect{{Kind: EffectSlotWrite, Slot: i.Local}}
}

func (i *StoreInst) GetEffects() []Effect {
	return []Effect{{Kind: EffectSlotWrite, Slot: i.Slot}}
}

func (i *LoadInst) GetEffects() []Effect {
	return []Effect{{Kind: EffectSlotRead, Slot: i.Slot}}
}

func (i *BinaryInst) GetEffects() []Effect {
	return []Effect{{Kind: EffectPure}}
}

func (i *ICmpInst) GetEffects() []Effect {
	return []Effect{{Kind: EffectPure}}
}

func (i *JumpInst) GetEffects() []Effect {
	return []Effect{{Kind: EffectPure}}
}

func (i *BranchInst) GetEffects() []Effect {
	return []Effect{{Kind: EffectPure}}
}

func (i *RetInst) GetEffects() []Effect {
	return []Effect{{Kind: EffectPure}}
}
