package model

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a surplus item.
// It only moves forward: Available -> Claimed -> Collected.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusClaimed   Status = "Claimed"
	StatusCollected Status = "Collected"
)

var statusRank = map[Status]int{
	StatusAvailable: 0,
	StatusClaimed:   1,
	StatusCollected: 2,
}

// ParseStatus accepts the canonical names case-insensitively.
func ParseStatus(s string) (Status, error) {
	for st := range statusRank {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether next is exactly one step after s.
func (s Status) CanAdvanceTo(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// Reached reports whether s is at or past target.
func (s Status) Reached(target Status) bool {
	return statusRank[s] >= statusRank[target]
}

// Coordinate is a geocoded pickup position.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lng)
}

// SurplusItem is one donor-submitted lot of food available for pickup.
// The json names are the persisted record layout.
type SurplusItem struct {
	ID            string      `json:"id"`
	Description   string      `json:"description"`
	Quantity      int         `json:"quantity"`
	ExpiryDate    string      `json:"expiryDate"`
	PickupAddress string      `json:"pickupAddress"`
	Location      *Coordinate `json:"location,omitempty"`
	DonorName     string      `json:"donorName"`
	Status        Status      `json:"status"`
}

// HasLocation is false until geocoding succeeded. Such items never get a marker.
func (i SurplusItem) HasLocation() bool { return i.Location != nil }

// ExpiryLabel formats the expiry date for display, falling back to the raw text.
func (i SurplusItem) ExpiryLabel() string {
	t, err := time.Parse(DateLayout, strings.TrimSpace(i.ExpiryDate))
	if err != nil {
		return i.ExpiryDate
	}
	return t.Format("2 Jan 2006")
}

// Clone returns a copy that shares no pointers with i.
func (i SurplusItem) Clone() SurplusItem {
	out := i
	if i.Location != nil {
		loc := *i.Location
		out.Location = &loc
	}
	return out
}

// DateLayout is the calendar date format used for expiry dates and report names.
const DateLayout = "2006-01-02"
