package resources

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/screen"
	"HayatAdmin/internal/service/backend"
)

var BedAPI = backend.Descriptor{
	Name:     "bed",
	BasePath: "/bed/",
	Encoding: backend.EncodingJSON,
}

func BedScreen() screen.Descriptor[entity.Bed] {
	return screen.Descriptor[entity.Bed]{
		Name:  BedAPI.Name,
		Title: "Bed Management",
		Fields: []screen.Field{
			{Name: "name", Label: "Ward / Unit", Kind: screen.KindText, Required: true},
			{Name: "bed_number", Label: "Bed Number", Kind: screen.KindText, Required: true},
			{Name: "status", Label: "Status", Kind: screen.KindSelect, Options: []screen.Option{
				{Value: string(entity.BedVacant), Label: "Vacant"},
				{Value: string(entity.BedOccupied), Label: "Occupied"},
			}},
		},
		Defaults: screen.Values{
			"name":       "",
			"bed_number": "",
			"status":     string(entity.BedVacant),
		},
		Detail: true,
		ID:     func(b entity.Bed) int64 { return b.ID },
		Prefill: func(b entity.Bed) screen.Values {
			return screen.Values{
				"name":       b.Name,
				"bed_number": b.BedNumber,
				"status":     string(b.Status),
			}
		},
		Payload: func(v screen.Values, _ screen.Files, _ bool) *backend.Payload {
			return backend.NewPayload().
				Set("name", v["name"]).
				Set("bed_number", v["bed_number"]).
				Set("status", v["status"])
		},
		Row: func(b entity.Bed) screen.Row {
			return screen.Row{
				"id":         b.ID,
				"name":       b.Name,
				"bed_number": b.BedNumber,
				"status":     b.Status,
				"badge":      statusBadge(b),
			}
		},
	}
}

func statusBadge(b entity.Bed) string {
	if b.IsOccupied() {
		return "danger"
	}
	return "success"
}
