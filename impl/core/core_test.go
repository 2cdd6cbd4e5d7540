package core

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/api/cont"
	"HayatAdmin/internal/lib/imageurl"
	"HayatAdmin/internal/resources"
	"HayatAdmin/internal/screen"
	"HayatAdmin/internal/service/backend"
	"HayatAdmin/internal/service/backend/stub"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type memRepo struct {
	mu      sync.Mutex
	entries []entity.AuditEntry
}

func (m *memRepo) SaveAudit(_ context.Context, entry *entity.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memRepo) ListAudit(_ context.Context, resource string, limit int64) ([]entity.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]entity.AuditEntry, 0)
	for i := len(m.entries) - 1; i >= 0; i-- {
		if resource != "" && m.entries[i].Resource != resource {
			continue
		}
		list = append(list, m.entries[i])
		if limit > 0 && int64(len(list)) == limit {
			break
		}
	}
	return list, nil
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []screen.Event
}

func (b *recordingBroadcaster) BroadcastScreenEvent(ev screen.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

func setup(t *testing.T) (*stub.Server, *Core, *memRepo, *recordingBroadcaster) {
	t.Helper()
	srv := stub.NewHayat().Start()
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := backend.NewClient(srv.URL(), 5*time.Second, log)
	reg := resources.NewRegistry(client, resources.Options{
		Resolver:            imageurl.New(srv.URL()),
		CounsellorSchool:    69,
		TestimonialCategory: 44,
	}, ConfirmFromContext, log)

	repo := &memRepo{}
	bc := &recordingBroadcaster{}
	c := New(reg, log)
	c.SetRepository(repo)
	c.SetBroadcaster(bc)
	return srv, c, repo, bc
}

func TestInitMountsEveryScreen(t *testing.T) {
	srv, c, _, _ := setup(t)
	srv.Seed("/bed/", map[string]interface{}{"name": "ICU", "bed_number": "1", "status": "vacant"})

	c.Init(context.Background())

	info := c.Screens()
	if len(info) != 5 {
		t.Fatalf("expected 5 screens, got %d", len(info))
	}
	if info[0].Name != "bed" || info[0].Count != 1 || !info[0].HasDetail {
		t.Fatalf("unexpected bed info: %+v", info[0])
	}
	if len(srv.Requests()) != 5 {
		t.Fatalf("every screen should be fetched once, saw %d requests", len(srv.Requests()))
	}
}

func TestSubmitRecordsAuditAndBroadcasts(t *testing.T) {
	_, c, repo, bc := setup(t)
	c.Init(context.Background())

	if _, err := c.OpenCreate("BED"); err != nil {
		t.Fatalf("open create: %v", err)
	}
	frame, err := c.Submit(context.Background(), "bed", screen.Values{"name": "ICU", "bed_number": "7"}, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if frame.View != screen.ViewList || frame.Count != 1 {
		t.Fatalf("unexpected frame: %+v", frame)
	}

	entries, err := c.AuditLog(context.Background(), "bed", 10)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != entity.ActionCreate || entries[0].RecordID != 1 {
		t.Fatalf("unexpected audit: %+v", entries)
	}
	if len(repo.entries) != 1 || len(bc.events) != 1 || bc.events[0].Count != 1 {
		t.Fatalf("expected one audit entry and one event, got %d / %d", len(repo.entries), len(bc.events))
	}
}

func TestDeleteNeedsConfirmationInContext(t *testing.T) {
	srv, c, _, bc := setup(t)
	id := srv.Seed("/bed/", map[string]interface{}{"name": "ICU", "bed_number": "1", "status": "vacant"})
	c.Init(context.Background())

	deleted, _, err := c.Delete(context.Background(), "bed", id)
	if err != nil || deleted {
		t.Fatalf("unconfirmed delete must be declined: %v %v", deleted, err)
	}
	if srv.Count("/bed/") != 1 {
		t.Fatalf("record must survive")
	}

	ctx := cont.PutConfirmed(context.Background(), true)
	deleted, frame, err := c.Delete(ctx, "bed", id)
	if err != nil || !deleted {
		t.Fatalf("confirmed delete failed: %v %v", deleted, err)
	}
	if frame.Count != 0 || srv.Count("/bed/") != 0 {
		t.Fatalf("record should be gone: %+v", frame)
	}
	if len(bc.events) != 1 || bc.events[0].Action != entity.ActionDelete {
		t.Fatalf("unexpected events: %+v", bc.events)
	}
}

func TestUnknownResource(t *testing.T) {
	_, c, _, _ := setup(t)

	if _, err := c.Frame("patients"); !errors.Is(err, entity.ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
	if _, err := c.Mount(context.Background(), "patients"); !errors.Is(err, entity.ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
	if _, err := c.AuditLog(context.Background(), "patients", 1); !errors.Is(err, entity.ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}

func TestConcurrentMutationIsRejected(t *testing.T) {
	_, c, _, _ := setup(t)

	c.locks["bed"].Lock()
	_, err := c.OpenCreate("bed")
	c.locks["bed"].Unlock()
	if !errors.Is(err, entity.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	if _, err := c.OpenCreate("bed"); err != nil {
		t.Fatalf("lock should be free again: %v", err)
	}
}

func TestAuditDisabled(t *testing.T) {
	_, c, _, _ := setup(t)
	c.SetRepository(nil)

	if _, err := c.AuditLog(context.Background(), "", 5); !errors.Is(err, entity.ErrAuditDisabled) {
		t.Fatalf("expected ErrAuditDisabled, got %v", err)
	}
}
