package resources

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/imageurl"
	"HayatAdmin/internal/screen"
	"HayatAdmin/internal/service/backend"
	"strconv"
	"strings"
)

var BannerAPI = backend.Descriptor{
	Name:     "banner",
	BasePath: "/banners/",
	Encoding: backend.EncodingMultipart,
}

func BannerScreen(resolver *imageurl.Resolver) screen.Descriptor[entity.Banner] {
	return screen.Descriptor[entity.Banner]{
		Name:  BannerAPI.Name,
		Title: "Banners",
		Fields: []screen.Field{
			{Name: "CTA_text", Label: "CTA Text", Kind: screen.KindText},
			{Name: "CTA_link", Label: "CTA Link", Kind: screen.KindText},
			{Name: "order", Label: "Order", Kind: screen.KindNumber},
			{Name: "status", Label: "Status", Kind: screen.KindSelect, Options: []screen.Option{
				{Value: "true", Label: "Active"},
				{Value: "false", Label: "Inactive"},
			}},
			{Name: "image", Label: "Image", Kind: screen.KindFile},
		},
		Defaults: screen.Values{
			"CTA_text": "",
			"CTA_link": "",
			"status":   "true",
			"order":    "",
		},
		ID: func(b entity.Banner) int64 { return b.ID },
		Prefill: func(b entity.Banner) screen.Values {
			return screen.Values{
				"CTA_text": b.CTAText,
				"CTA_link": b.CTALink,
				"status":   strconv.FormatBool(b.Status),
				"order":    optionalInt(b.Order),
			}
		},
		Payload: func(v screen.Values, files screen.Files, _ bool) *backend.Payload {
			p := backend.NewPayload()
			attachChosen(p, files, "image")
			p.Set("CTA_text", v["CTA_text"]).
				Set("CTA_link", v["CTA_link"]).
				Set("status", v["status"])
			// a blank order would be rejected as a number
			if order := strings.TrimSpace(v["order"]); order != "" {
				p.Set("order", order)
			}
			return p
		},
		Row: func(b entity.Banner) screen.Row {
			status := "Inactive"
			if b.Status {
				status = "Active"
			}
			return screen.Row{
				"id":        b.ID,
				"image_url": resolver.ResolveOptional(b.Image),
				"CTA_text":  b.CTAText,
				"CTA_link":  b.CTALink,
				"status":    status,
				"active":    b.Status,
				"order":     intValue(b.Order),
			}
		},
	}
}
