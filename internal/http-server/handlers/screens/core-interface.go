package screens

import (
	"HayatAdmin/impl/core"
	"HayatAdmin/internal/screen"
	"context"
)

type Core interface {
	Screens() []core.ScreenInfo
	Frame(name string) (screen.Frame, error)
	Mount(ctx context.Context, name string) (screen.Frame, error)
	OpenCreate(name string) (screen.Frame, error)
	OpenEdit(name string, id int64) (screen.Frame, error)
	OpenDetail(name string, id int64) (screen.Frame, error)
	Cancel(name string) (screen.Frame, error)
	Submit(ctx context.Context, name string, values screen.Values, files screen.Files) (screen.Frame, error)
	Delete(ctx context.Context, name string, id int64) (bool, screen.Frame, error)
}
