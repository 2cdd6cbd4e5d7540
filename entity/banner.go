package entity

// Banner is a home-page banner. Image is uploaded as a file and read back as a storage path.
type Banner struct {
	ID      int64   `json:"id"`
	Image   *string `json:"image"`
	CTAText string  `json:"CTA_text"`
	CTALink string  `json:"CTA_link"`
	Status  bool    `json:"status"`
	Order   *int    `json:"order"`
}
