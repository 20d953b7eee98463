package domain

import "time"

// ID is used across domain entities.
type ID int64

// Direction tells which way a leg is travelled relative to the requested pair.
type Direction uint8

const (
	DirectionOnward Direction = iota
	DirectionReturn
)

func (d Direction) String() string {
	if d == DirectionReturn {
		return "return"
	}
	return "onward"
}

// Orient returns the start and end city of a leg. A return leg runs from the
// requested dropoff back to the requested pickup.
func Orient(pickup, dropoff ID, dir Direction) (from, to ID) {
	if dir == DirectionReturn {
		return dropoff, pickup
	}
	return pickup, dropoff
}

// Leg is one directional trip between two cities on one calendar date.
// PickupCityID and DropoffCityID are always the pair as the customer asked for
// it; Direction decides which one the bus leaves from.
type Leg struct {
	PickupCityID  ID
	DropoffCityID ID
	Date          time.Time
	Direction     Direction
}

func (l Leg) From() ID {
	from, _ := Orient(l.PickupCityID, l.DropoffCityID, l.Direction)
	return from
}

func (l Leg) To() ID {
	_, to := Orient(l.PickupCityID, l.DropoffCityID, l.Direction)
	return to
}
