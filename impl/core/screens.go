package core

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/screen"
	"context"
	"fmt"
)

type ScreenInfo struct {
	Name      string         `json:"name"`
	Title     string         `json:"title"`
	HasDetail bool           `json:"has_detail"`
	Fields    []screen.Field `json:"fields"`
	Count     int            `json:"count"`
}

func (c *Core) Screens() []ScreenInfo {
	all := c.screens.All()
	list := make([]ScreenInfo, 0, len(all))
	for _, s := range all {
		list = append(list, ScreenInfo{
			Name:      s.Name(),
			Title:     s.Title(),
			HasDetail: s.HasDetail(),
			Fields:    s.Fields(),
			Count:     s.Frame().Count,
		})
	}
	return list
}

func (c *Core) Frame(name string) (screen.Frame, error) {
	s, err := c.screen(normalize(name))
	if err != nil {
		return screen.Frame{}, err
	}
	return s.Frame(), nil
}

func (c *Core) Mount(ctx context.Context, name string) (screen.Frame, error) {
	return c.exclusive(normalize(name), func(s screen.Screen) error {
		return s.Mount(ctx)
	})
}

func (c *Core) OpenCreate(name string) (screen.Frame, error) {
	return c.exclusive(normalize(name), func(s screen.Screen) error {
		s.OpenCreate()
		return nil
	})
}

func (c *Core) OpenEdit(name string, id int64) (screen.Frame, error) {
	return c.exclusive(normalize(name), func(s screen.Screen) error {
		return s.OpenEditByID(id)
	})
}

func (c *Core) OpenDetail(name string, id int64) (screen.Frame, error) {
	return c.exclusive(normalize(name), func(s screen.Screen) error {
		return s.OpenDetailByID(id)
	})
}

func (c *Core) Cancel(name string) (screen.Frame, error) {
	return c.exclusive(normalize(name), func(s screen.Screen) error {
		s.Cancel()
		return nil
	})
}

func (c *Core) Submit(ctx context.Context, name string, values screen.Values, files screen.Files) (screen.Frame, error) {
	return c.exclusive(normalize(name), func(s screen.Screen) error {
		return s.Submit(ctx, values, files)
	})
}

// Delete reports whether the record was deleted; a missing confirmation
// leaves everything as it was.
func (c *Core) Delete(ctx context.Context, name string, id int64) (bool, screen.Frame, error) {
	var deleted bool
	frame, err := c.exclusive(normalize(name), func(s screen.Screen) error {
		var err error
		deleted, err = s.Delete(ctx, id)
		return err
	})
	return deleted, frame, err
}

// HandleRefresh serves refresh requests coming from websocket clients.
func (c *Core) HandleRefresh(ctx context.Context, resource string) error {
	_, err := c.Mount(ctx, resource)
	return err
}

func (c *Core) AuditLog(ctx context.Context, resource string, limit int64) ([]entity.AuditEntry, error) {
	if c.repo == nil {
		return nil, entity.ErrAuditDisabled
	}
	if resource != "" {
		if _, err := c.screen(normalize(resource)); err != nil {
			return nil, err
		}
	}
	entries, err := c.repo.ListAudit(ctx, normalize(resource), limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return entries, nil
}
