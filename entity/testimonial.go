package entity

type Testimonial struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Review   string  `json:"review"`
	Rating   *int    `json:"rating"`
	Image    *string `json:"image"`
	Category int64   `json:"category"`
}
