package entity

const (
	RoleCounsellor = "counsellor"
	RoleFrontDesk  = "front-desk"
)

type Counsellor struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"` // write-only, the backend may echo a hash
	Role          string `json:"role"`
	LanguageKnown string `json:"language_known"`
	School        int64  `json:"school"`
}
