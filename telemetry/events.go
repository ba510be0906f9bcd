// Package telemetry provides ecosystem health tracking, statistics and experiment output.
package telemetry

import (
	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/traits"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventKill
	EventFoodSpawned
	EventFoodEaten
)

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int
	EntityID uint64
	Class    traits.ColorClass

	// Optional fields depending on event type
	TargetID uint64                // prey for kills, parent for births
	Amount   float64               // energy gained
	Cause    components.DeathCause // deaths only
	Age      int                   // age at death
}

// NewBirthEvent creates a birth event.
func NewBirthEvent(tick int, childID, parentID uint64, class traits.ColorClass) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		Class:    class,
		TargetID: parentID, // parent ID stored in TargetID
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int, entityID uint64, class traits.ColorClass, cause components.DeathCause, age int) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: entityID,
		Class:    class,
		Cause:    cause,
		Age:      age,
	}
}

// NewKillEvent creates a kill event. Amount is the energy harvested.
func NewKillEvent(tick int, predatorID, preyID uint64, amount float64) Event {
	return Event{
		Type:     EventKill,
		Tick:     tick,
		EntityID: predatorID,
		Class:    traits.Predator,
		TargetID: preyID,
		Amount:   amount,
	}
}

// NewFoodSpawnedEvent creates a food spawn event.
func NewFoodSpawnedEvent(tick int, energy float64) Event {
	return Event{Type: EventFoodSpawned, Tick: tick, Amount: energy}
}

// NewFoodEatenEvent creates a food consumption event.
func NewFoodEatenEvent(tick int, eaterID uint64, class traits.ColorClass, energy float64) Event {
	return Event{
		Type:     EventFoodEaten,
		Tick:     tick,
		EntityID: eaterID,
		Class:    class,
		Amount:   energy,
	}
}
