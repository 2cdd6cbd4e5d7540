package entity

type CourseCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Course carries three independent attachments; each is a storage path on read.
type Course struct {
	ID              int64           `json:"id"`
	Category        int64           `json:"category"`
	CategoryDetails *CourseCategory `json:"category_details,omitempty"`
	Name            string          `json:"name"`
	Text            string          `json:"text"`
	Image           *string         `json:"image"`
	BannerImg       *string         `json:"banner_img"`
	PdfFile         *string         `json:"pdf_file"`
}

func (c Course) CategoryName() string {
	if c.CategoryDetails == nil {
		return ""
	}
	return c.CategoryDetails.Name
}
