package screen

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/sl"
	"HayatAdmin/internal/service/backend"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Client is the resource client a controller talks to.
type Client[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload *backend.Payload) (T, error)
	Update(ctx context.Context, id int64, payload *backend.Payload) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Confirm asks the user to approve a destructive action.
type Confirm func(ctx context.Context, prompt string) bool

// Event is emitted after a mutation succeeded.
type Event struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	RecordID int64  `json:"record_id"`
	Count    int    `json:"count"`
}

type Observer func(ctx context.Context, ev Event)

// State is a copy of a controller's state.
type State[T any] struct {
	Items   []T
	View    View
	Editing *T
	Viewing *T
	Values  Values
	Err     string
}

// Controller drives one resource screen: list, form and detail.
//
// The mutex only keeps the state consistent for concurrent readers. Mutating
// calls are not serialized here; hosts must not start a second submit or
// delete while one is outstanding.
type Controller[T any] struct {
	desc     Descriptor[T]
	client   Client[T]
	confirm  Confirm
	observer Observer
	validate *validator.Validate
	log      *slog.Logger

	mu      sync.Mutex
	items   []T
	view    View
	editing *T
	viewing *T
	values  Values
	lastErr string

	// list responses older than the last applied one are dropped
	fetchSeq   uint64
	appliedSeq uint64
}

func New[T any](desc Descriptor[T], client Client[T], confirm Confirm, log *slog.Logger) *Controller[T] {
	return &Controller[T]{
		desc:     desc,
		client:   client,
		confirm:  confirm,
		validate: validator.New(),
		log:      log.With(sl.Module("screen"), slog.String("resource", desc.Name)),
		items:    make([]T, 0),
		view:     ViewList,
		values:   desc.defaults(),
	}
}

func (c *Controller[T]) SetObserver(o Observer) {
	c.observer = o
}

func (c *Controller[T]) Name() string {
	return c.desc.Name
}

func (c *Controller[T]) Title() string {
	return c.desc.Title
}

func (c *Controller[T]) Fields() []Field {
	return c.desc.Fields
}

func (c *Controller[T]) HasDetail() bool {
	return c.desc.Detail
}

// Mount loads the collection. The view stays where it is.
func (c *Controller[T]) Mount(ctx context.Context) error {
	return c.refetch(ctx)
}

func (c *Controller[T]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = ViewForm
	c.editing = nil
	c.viewing = nil
	c.values = c.desc.defaults()
	c.lastErr = ""
}

// OpenEdit prefills the form from record. Fields the descriptor does not
// prefill, such as passwords, keep their defaults.
func (c *Controller[T]) OpenEdit(record T) {
	values := c.desc.defaults()
	for k, v := range c.desc.Prefill(record) {
		values[k] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = ViewForm
	c.editing = &record
	c.viewing = nil
	c.values = values
	c.lastErr = ""
}

func (c *Controller[T]) OpenEditByID(id int64) error {
	record, ok := c.Find(id)
	if !ok {
		return fmt.Errorf("%s %d: %w", c.desc.Name, id, ErrNotFound)
	}
	c.OpenEdit(record)
	return nil
}

func (c *Controller[T]) OpenDetail(record T) error {
	if !c.desc.Detail {
		return ErrNoDetail
	}
	values := c.desc.defaults()
	for k, v := range c.desc.Prefill(record) {
		values[k] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = ViewDetail
	c.editing = nil
	c.viewing = &record
	c.values = values
	c.lastErr = ""
	return nil
}

func (c *Controller[T]) OpenDetailByID(id int64) error {
	if !c.desc.Detail {
		return ErrNoDetail
	}
	record, ok := c.Find(id)
	if !ok {
		return fmt.Errorf("%s %d: %w", c.desc.Name, id, ErrNotFound)
	}
	return c.OpenDetail(record)
}

// Cancel drops the form and returns to the list without refetching.
func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = ViewList
	c.editing = nil
	c.viewing = nil
	c.values = c.desc.defaults()
	c.lastErr = ""
}

// Submit creates or updates depending on whether a record is being edited.
// submitted overrides the current form values; files holds newly chosen
// uploads only. On failure nothing but the reported error changes.
func (c *Controller[T]) Submit(ctx context.Context, submitted Values, files Files) error {
	c.mu.Lock()
	if c.view != ViewForm {
		c.mu.Unlock()
		return fmt.Errorf("submit in %s view: %w", c.view, ErrInvalidState)
	}
	form := c.values.Clone()
	editing := c.editing
	c.mu.Unlock()

	for k, v := range submitted {
		form[k] = v
	}

	if err := c.check(form, files); err != nil {
		c.fail("validate", err)
		return err
	}

	payload := c.desc.Payload(form, files, editing != nil)

	var (
		saved    T
		err      error
		action   string
		recordID int64
	)
	if editing == nil {
		action = entity.ActionCreate
		saved, err = c.client.Create(ctx, payload)
		if err == nil {
			recordID = c.desc.ID(saved)
		}
	} else {
		action = entity.ActionUpdate
		recordID = c.desc.ID(*editing)
		saved, err = c.client.Update(ctx, recordID, payload)
	}
	if err != nil {
		c.fail(action, err)
		return fmt.Errorf("%s %s: %w", action, c.desc.Name, err)
	}

	c.log.With(
		slog.String("action", action),
		slog.Int64("id", recordID),
	).Info("record saved")

	c.mu.Lock()
	c.view = ViewList
	c.editing = nil
	c.viewing = nil
	c.values = c.desc.defaults()
	c.lastErr = ""
	c.mu.Unlock()

	return c.afterMutation(ctx, action, recordID)
}

// Delete asks for confirmation first. A declined prompt is not an error and
// reports false.
func (c *Controller[T]) Delete(ctx context.Context, id int64) (bool, error) {
	prompt := fmt.Sprintf("Delete this %s?", c.desc.Name)
	if c.confirm == nil || !c.confirm(ctx, prompt) {
		c.log.With(slog.Int64("id", id)).Debug("delete declined")
		return false, nil
	}

	if err := c.client.Delete(ctx, id); err != nil {
		c.fail(entity.ActionDelete, err)
		return false, fmt.Errorf("delete %s: %w", c.desc.Name, err)
	}

	c.log.With(slog.Int64("id", id)).Info("record deleted")

	return true, c.afterMutation(ctx, entity.ActionDelete, id)
}

func (c *Controller[T]) afterMutation(ctx context.Context, action string, id int64) error {
	refreshErr := c.refetch(ctx)

	if c.observer != nil {
		c.mu.Lock()
		count := len(c.items)
		c.mu.Unlock()
		c.observer(ctx, Event{
			Resource: c.desc.Name,
			Action:   action,
			RecordID: id,
			Count:    count,
		})
	}

	if refreshErr != nil {
		return fmt.Errorf("%w: %w", ErrRefresh, refreshErr)
	}
	return nil
}

func (c *Controller[T]) refetch(ctx context.Context) error {
	c.mu.Lock()
	c.fetchSeq++
	seq := c.fetchSeq
	c.mu.Unlock()

	items, err := c.client.List(ctx)
	if err != nil {
		c.fail("fetch", err)
		return fmt.Errorf("fetch %s: %w", c.desc.Name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.appliedSeq {
		c.log.With(slog.Uint64("seq", seq)).Debug("stale list response dropped")
		return nil
	}
	if items == nil {
		items = make([]T, 0)
	}
	c.appliedSeq = seq
	c.items = items
	c.lastErr = ""
	return nil
}

func (c *Controller[T]) check(values Values, files Files) error {
	var missing []string
	for _, f := range c.desc.Fields {
		if !f.Required {
			continue
		}
		if f.Kind == KindFile {
			if up, ok := files[f.Name]; !ok || up.Size() == 0 {
				missing = append(missing, f.Name)
			}
			continue
		}
		if err := c.validate.Var(strings.TrimSpace(values[f.Name]), "required"); err != nil {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func (c *Controller[T]) fail(op string, err error) {
	c.log.With(
		slog.String("op", op),
		sl.Err(err),
	).Error("screen operation failed")

	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
}

func (c *Controller[T]) Find(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if c.desc.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return State[T]{
		Items:   items,
		View:    c.view,
		Editing: c.editing,
		Viewing: c.viewing,
		Values:  c.values.Clone(),
		Err:     c.lastErr,
	}
}
