package domain

// Upload is one raw user-selected file before normalization.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MediaProfile bounds what the normalizer produces: max longest-edge pixels,
// max encoded-size budget and the quality ladder for the re-encode loop.
type MediaProfile struct {
	Name         string
	MaxEdge      int
	MaxBytes     int
	Capacity     int
	StartQuality int
	QualityStep  int
	MinQuality   int
}

// The three call sites of the normalizer share one implementation and
// differ only by profile.
var (
	StoreMediaProfile = MediaProfile{
		Name:         "store-media",
		MaxEdge:      1600,
		MaxBytes:     2_700_000,
		Capacity:     5,
		StartQuality: 85,
		QualityStep:  10,
		MinQuality:   25,
	}

	ProductGalleryProfile = MediaProfile{
		Name:         "product-gallery",
		MaxEdge:      1200,
		MaxBytes:     1_500_000,
		Capacity:     5,
		StartQuality: 85,
		QualityStep:  10,
		MinQuality:   25,
	}

	TicketAttachmentProfile = MediaProfile{
		Name:         "ticket-attachment",
		MaxEdge:      2000,
		MaxBytes:     4_000_000,
		Capacity:     3,
		StartQuality: 90,
		QualityStep:  15,
		MinQuality:   30,
	}
)
