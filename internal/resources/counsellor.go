package resources

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/screen"
	"HayatAdmin/internal/service/backend"
	"strings"
)

var CounsellorAPI = backend.Descriptor{
	Name:     "counsellor",
	BasePath: "/counsellors/",
	Encoding: backend.EncodingJSON,
}

// CounsellorScreen never prefills the password: the backend echoes a hash,
// and sending it back would overwrite the real password.
func CounsellorScreen(school int64) screen.Descriptor[entity.Counsellor] {
	return screen.Descriptor[entity.Counsellor]{
		Name:  CounsellorAPI.Name,
		Title: "Counsellors",
		Fields: []screen.Field{
			{Name: "full_name", Label: "Full Name", Kind: screen.KindText, Required: true},
			{Name: "mobile", Label: "Mobile", Kind: screen.KindText, Required: true},
			{Name: "email", Label: "Email", Kind: screen.KindText, Required: true},
			{Name: "password", Label: "Password", Kind: screen.KindPassword},
			{Name: "role", Label: "Role", Kind: screen.KindSelect, Options: []screen.Option{
				{Value: entity.RoleCounsellor, Label: "Counsellor"},
				{Value: entity.RoleFrontDesk, Label: "Front-desk"},
			}},
			{Name: "language_known", Label: "Languages Known", Kind: screen.KindText},
		},
		Defaults: screen.Values{
			"full_name":      "",
			"mobile":         "",
			"email":          "",
			"password":       "",
			"role":           entity.RoleCounsellor,
			"language_known": "",
		},
		ID: func(c entity.Counsellor) int64 { return c.ID },
		Prefill: func(c entity.Counsellor) screen.Values {
			return screen.Values{
				"full_name":      c.FullName,
				"mobile":         c.Mobile,
				"email":          c.Email,
				"role":           c.Role,
				"language_known": c.LanguageKnown,
			}
		},
		Payload: func(v screen.Values, _ screen.Files, editing bool) *backend.Payload {
			p := backend.NewPayload().
				Set("full_name", v["full_name"]).
				Set("mobile", v["mobile"]).
				Set("email", v["email"])
			// keep the stored password unless a new one was typed
			if !editing || strings.TrimSpace(v["password"]) != "" {
				p.Set("password", v["password"])
			}
			return p.
				Set("role", v["role"]).
				Set("language_known", v["language_known"]).
				Set("school", school)
		},
		Row: func(c entity.Counsellor) screen.Row {
			return screen.Row{
				"id":             c.ID,
				"full_name":      c.FullName,
				"mobile":         c.Mobile,
				"email":          c.Email,
				"role":           c.Role,
				"language_known": c.LanguageKnown,
			}
		},
	}
}
