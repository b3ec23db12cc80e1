package vitrine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

// NewID generates an identifier for stores, sections and products.
func NewID() string {
	return uuid.New().String()
}

// AssetID derives a media asset identifier from the encoded payload bytes,
// so identical uploads collapse to the same asset.
func AssetID(payload []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(payload))
}
