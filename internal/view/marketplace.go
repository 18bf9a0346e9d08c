package view

import "github.com/Makepad-fr/wegive/internal/model"

const EmptyPlaceholder = "No surplus items currently available."

// Card is one item as listed in the marketplace.
type Card struct {
	ID          string
	Description string
	Quantity    int
	Expiry      string
	Donor       string
	Status      model.Status
}

type MarketplaceModel struct {
	Cards []Card
	Empty bool
}

// Marketplace builds one card per item in catalog order.
func Marketplace(items []model.SurplusItem) MarketplaceModel {
	if len(items) == 0 {
		return MarketplaceModel{Empty: true}
	}
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		cards = append(cards, Card{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Expiry:      it.ExpiryLabel(),
			Donor:       it.DonorName,
			Status:      it.Status,
		})
	}
	return MarketplaceModel{Cards: cards}
}
