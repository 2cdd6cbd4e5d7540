package screen

import "context"

// Frame is everything a host needs to render a screen.
type Frame struct {
	Resource  string  `json:"resource"`
	Title     string  `json:"title"`
	View      View    `json:"view"`
	Items     []Row   `json:"items"`
	Count     int     `json:"count"`
	EditingID *int64  `json:"editing_id,omitempty"`
	Record    Row     `json:"record,omitempty"`
	Values    Values  `json:"values,omitempty"`
	Fields    []Field `json:"fields,omitempty"`
	ReadOnly  bool    `json:"read_only,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// Screen is a Controller with its record type erased, as hosts see it.
type Screen interface {
	Name() string
	Title() string
	Fields() []Field
	HasDetail() bool
	SetObserver(o Observer)

	Mount(ctx context.Context) error
	OpenCreate()
	OpenEditByID(id int64) error
	OpenDetailByID(id int64) error
	Submit(ctx context.Context, values Values, files Files) error
	Delete(ctx context.Context, id int64) (bool, error)
	Cancel()
	Frame() Frame
}

var _ Screen = (*Controller[struct{}])(nil)

func (c *Controller[T]) Frame() Frame {
	st := c.State()

	frame := Frame{
		Resource: c.desc.Name,
		Title:    c.desc.Title,
		View:     st.View,
		Items:    make([]Row, 0, len(st.Items)),
		Count:    len(st.Items),
		Error:    st.Err,
	}
	for _, item := range st.Items {
		frame.Items = append(frame.Items, c.desc.row(item))
	}

	switch st.View {
	case ViewForm:
		frame.Values = st.Values
		frame.Fields = c.desc.Fields
		if st.Editing != nil {
			id := c.desc.ID(*st.Editing)
			frame.EditingID = &id
		}
	case ViewDetail:
		frame.Values = st.Values
		frame.Fields = c.desc.detailFields()
		frame.ReadOnly = true
		if st.Viewing != nil {
			frame.Record = c.desc.row(*st.Viewing)
		}
	}
	return frame
}
