package resources

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/imageurl"
	"HayatAdmin/internal/screen"
	"HayatAdmin/internal/service/backend"
	"strconv"
)

const excerptLen = 40

var CourseAPI = backend.Descriptor{
	Name:     "course",
	BasePath: "/course/",
	Encoding: backend.EncodingMultipart,
}

var courseFiles = []string{"image", "banner_img", "pdf_file"}

func CourseScreen(resolver *imageurl.Resolver) screen.Descriptor[entity.Course] {
	return screen.Descriptor[entity.Course]{
		Name:  CourseAPI.Name,
		Title: "Courses",
		Fields: []screen.Field{
			{Name: "category", Label: "Category", Kind: screen.KindNumber, Required: true},
			{Name: "name", Label: "Name", Kind: screen.KindText, Required: true},
			{Name: "text", Label: "Description", Kind: screen.KindTextArea},
			{Name: "image", Label: "Image", Kind: screen.KindFile},
			{Name: "banner_img", Label: "Banner Image", Kind: screen.KindFile},
			{Name: "pdf_file", Label: "PDF", Kind: screen.KindFile},
		},
		Defaults: screen.Values{
			"category": "",
			"name":     "",
			"text":     "",
		},
		Detail: true,
		ID:     func(c entity.Course) int64 { return c.ID },
		Prefill: func(c entity.Course) screen.Values {
			return screen.Values{
				"category": strconv.FormatInt(c.Category, 10),
				"name":     c.Name,
				"text":     c.Text,
			}
		},
		Payload: func(v screen.Values, files screen.Files, _ bool) *backend.Payload {
			p := backend.NewPayload().
				Set("category", v["category"]).
				Set("name", v["name"]).
				Set("text", v["text"])
			attachChosen(p, files, courseFiles...)
			return p
		},
		Row: func(c entity.Course) screen.Row {
			return screen.Row{
				"id":            c.ID,
				"name":          c.Name,
				"category":      c.Category,
				"category_name": c.CategoryName(),
				"text":          c.Text,
				"excerpt":       excerpt(c.Text, excerptLen),
				"image_url":     resolver.ResolveOptional(c.Image),
				"banner_url":    resolver.ResolveOptional(c.BannerImg),
				"pdf_url":       resolver.ResolveOptional(c.PdfFile),
			}
		},
	}
}

func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
