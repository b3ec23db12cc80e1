package vitrine

// ProductGallery is the ordered photo list attached to one product, plus a
// single designated primary photo. Same capacity rules as hero media, with
// the extra invariant that a non-empty gallery always has a primary that is
// a member of the list.
type ProductGallery struct {
	Photos  []MediaAsset `json:"photos"`
	Primary string       `json:"primary,omitempty"` // asset ID
}

func (g ProductGallery) clone() ProductGallery {
	photos := make([]MediaAsset, len(g.Photos))
	copy(photos, g.Photos)
	g.Photos = photos
	return g
}

// Append adds up to capacity-current photos, dropping overflow. Appending
// into an empty gallery designates the first photo as primary.
func (g ProductGallery) Append(assets []MediaAsset, capacity int) ProductGallery {
	out := g.clone()
	room := capacity - len(out.Photos)
	if room <= 0 {
		return out
	}
	if len(assets) > room {
		assets = assets[:room]
	}
	out.Photos = append(out.Photos, assets...)
	if out.Primary == "" && len(out.Photos) > 0 {
		out.Primary = out.Photos[0].ID
	}
	return out
}

// Remove deletes the photo at index. Removing the current primary reassigns
// primary to the new first photo, or clears it if the gallery became empty.
// Out-of-range indexes are no-ops.
func (g ProductGallery) Remove(index int) ProductGallery {
	out := g.clone()
	if index < 0 || index >= len(out.Photos) {
		return out
	}
	removed := out.Photos[index]
	out.Photos = append(out.Photos[:index], out.Photos[index+1:]...)
	if removed.ID == out.Primary {
		if len(out.Photos) > 0 {
			out.Primary = out.Photos[0].ID
		} else {
			out.Primary = ""
		}
	}
	return out
}

// SetPrimary designates an existing photo as primary. A non-member ID is a
// no-op.
func (g ProductGallery) SetPrimary(id string) ProductGallery {
	out := g.clone()
	for _, p := range out.Photos {
		if p.ID == id {
			out.Primary = id
			break
		}
	}
	return out
}

// PrimaryPhoto resolves the primary reference, falling back to the first
// photo if the reference is somehow stale.
func (g ProductGallery) PrimaryPhoto() (MediaAsset, bool) {
	if len(g.Photos) == 0 {
		return MediaAsset{}, false
	}
	for _, p := range g.Photos {
		if p.ID == g.Primary {
			return p, true
		}
	}
	return g.Photos[0], true
}
