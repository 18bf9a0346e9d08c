package geocode

import (
	"context"
	"strings"

	"github.com/Makepad-fr/wegive/internal/model"
)

// StaticGateway answers from a fixed address table. It backs offline sessions.
type StaticGateway struct {
	table map[string]model.Coordinate
}

func NewStaticGateway(table map[string]model.Coordinate) *StaticGateway {
	s := &StaticGateway{table: make(map[string]model.Coordinate, len(table))}
	for addr, c := range table {
		s.table[normalizeAddress(addr)] = c
	}
	return s
}

func (s *StaticGateway) Len() int { return len(s.table) }

func (s *StaticGateway) Resolve(_ context.Context, address string) (model.Coordinate, error) {
	c, ok := s.table[normalizeAddress(address)]
	if !ok {
		return model.Coordinate{}, ErrNoResult
	}
	return c, nil
}

// normalizeAddress folds case and collapses whitespace.
func normalizeAddress(a string) string {
	return strings.ToLower(strings.Join(strings.Fields(a), " "))
}
