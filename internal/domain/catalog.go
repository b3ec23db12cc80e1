package domain

import (
	"github.com/vitrineapp/vitrine"
)

// Product is one catalog item belonging to a store. The grid renderer and
// the public page consume products read-only; mutation happens through the
// catalog usecase.
type Product struct {
	ID          string                 `json:"id"`
	StoreID     string                 `json:"storeId"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Price       float64                `json:"price"`
	Currency    string                 `json:"currency"`
	Active      bool                   `json:"active"`
	Gallery     vitrine.ProductGallery `json:"gallery"`
}
