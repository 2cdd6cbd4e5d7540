package screen

import "fmt"

// View is the part of a screen currently shown. Exactly one is active.
type View int

const (
	ViewList View = iota
	ViewForm
	ViewDetail
)

func (v View) String() string {
	switch v {
	case ViewForm:
		return "form"
	case ViewDetail:
		return "detail"
	default:
		return "list"
	}
}

func (v View) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *View) UnmarshalText(text []byte) error {
	switch string(text) {
	case "list":
		*v = ViewList
	case "form":
		*v = ViewForm
	case "detail":
		*v = ViewDetail
	default:
		return fmt.Errorf("unknown view %q", string(text))
	}
	return nil
}
