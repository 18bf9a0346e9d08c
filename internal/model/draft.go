package model

import (
	"strconv"
	"strings"
)

// Draft holds the raw donation form fields as typed by the donor.
type Draft struct {
	Description   string `json:"description" validate:"required"`
	Quantity      string `json:"quantity"`
	ExpiryDate    string `json:"expiryDate"`
	PickupAddress string `json:"pickupAddress" validate:"required"`
	DonorName     string `json:"donorName"`
}

// Normalize trims the text fields and parses the quantity.
// Quantity is permissive: non-numeric or non-positive input is passed through.
func (d Draft) Normalize() SurplusItem {
	return SurplusItem{
		Description:   strings.TrimSpace(d.Description),
		Quantity:      ParseInt(d.Quantity),
		ExpiryDate:    strings.TrimSpace(d.ExpiryDate),
		PickupAddress: strings.TrimSpace(d.PickupAddress),
		DonorName:     strings.TrimSpace(d.DonorName),
		Status:        StatusAvailable,
	}
}

// ParseInt reads the leading base-10 integer of s, ignoring leading spaces.
// "12 boxes" is 12, "-3" is -3 and anything without leading digits is 0.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ParseIntStrict is ParseInt that also reports whether any digits were found.
func ParseIntStrict(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	if i >= len(s) || s[i] < '0' || s[i] > '9' {
		return 0, false
	}
	return ParseInt(s), true
}
