package resources

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/imageurl"
	"HayatAdmin/internal/screen"
	"HayatAdmin/internal/service/backend"
	"strconv"
)

var TestimonialAPI = backend.Descriptor{
	Name:     "testimonial",
	BasePath: "/testimonials/",
	Encoding: backend.EncodingMultipart,
}

// TestimonialScreen files every testimonial under one fixed category.
// The rating goes out exactly as typed.
func TestimonialScreen(resolver *imageurl.Resolver, category int64) screen.Descriptor[entity.Testimonial] {
	return screen.Descriptor[entity.Testimonial]{
		Name:  TestimonialAPI.Name,
		Title: "Testimonials",
		Fields: []screen.Field{
			{Name: "name", Label: "Name", Kind: screen.KindText, Required: true},
			{Name: "rating", Label: "Rating (1-5)", Kind: screen.KindNumber, Required: true},
			{Name: "review", Label: "Review", Kind: screen.KindTextArea, Required: true},
			{Name: "image", Label: "Image", Kind: screen.KindFile},
		},
		Defaults: screen.Values{
			"name":     "",
			"review":   "",
			"rating":   "",
			"category": strconv.FormatInt(category, 10),
		},
		ID: func(t entity.Testimonial) int64 { return t.ID },
		Prefill: func(t entity.Testimonial) screen.Values {
			return screen.Values{
				"name":     t.Name,
				"review":   t.Review,
				"rating":   optionalInt(t.Rating),
				"category": strconv.FormatInt(t.Category, 10),
			}
		},
		Payload: func(v screen.Values, files screen.Files, _ bool) *backend.Payload {
			p := backend.NewPayload().
				Set("name", v["name"]).
				Set("review", v["review"]).
				Set("rating", v["rating"]).
				Set("category_id", category)
			attachChosen(p, files, "image")
			return p
		},
		Row: func(t entity.Testimonial) screen.Row {
			return screen.Row{
				"id":        t.ID,
				"image_url": resolver.ResolveOptional(t.Image),
				"name":      t.Name,
				"review":    t.Review,
				"rating":    intValue(t.Rating),
			}
		},
	}
}
