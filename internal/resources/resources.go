// Package resources describes the five back-office screens: which endpoint
// each one talks to, how its form looks and how form values become a
// request body.
package resources

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/lib/imageurl"
	"HayatAdmin/internal/screen"
	"HayatAdmin/internal/service/backend"
	"log/slog"
	"strconv"
	"strings"
)

// Options carries deployment-specific values shared by the screens.
type Options struct {
	Resolver            *imageurl.Resolver
	CounsellorSchool    int64
	TestimonialCategory int64
	// Origins overrides the client origin per resource name.
	Origins map[string]string
}

func (o Options) client(base *backend.Client, desc backend.Descriptor) *backend.Client {
	if origin := o.Origins[desc.Name]; origin != "" {
		return base.WithBaseURL(origin)
	}
	return base
}

// Registry holds one controller per resource, in menu order.
type Registry struct {
	Beds         *screen.Controller[entity.Bed]
	Banners      *screen.Controller[entity.Banner]
	Counsellors  *screen.Controller[entity.Counsellor]
	Courses      *screen.Controller[entity.Course]
	Testimonials *screen.Controller[entity.Testimonial]

	order  []screen.Screen
	byName map[string]screen.Screen
}

func NewRegistry(client *backend.Client, opts Options, confirm screen.Confirm, log *slog.Logger) *Registry {
	r := &Registry{
		Beds: screen.New(BedScreen(),
			backend.NewResource[entity.Bed](opts.client(client, BedAPI), BedAPI), confirm, log),
		Banners: screen.New(BannerScreen(opts.Resolver),
			backend.NewResource[entity.Banner](opts.client(client, BannerAPI), BannerAPI), confirm, log),
		Counsellors: screen.New(CounsellorScreen(opts.CounsellorSchool),
			backend.NewResource[entity.Counsellor](opts.client(client, CounsellorAPI), CounsellorAPI), confirm, log),
		Courses: screen.New(CourseScreen(opts.Resolver),
			backend.NewResource[entity.Course](opts.client(client, CourseAPI), CourseAPI), confirm, log),
		Testimonials: screen.New(TestimonialScreen(opts.Resolver, opts.TestimonialCategory),
			backend.NewResource[entity.Testimonial](opts.client(client, TestimonialAPI), TestimonialAPI), confirm, log),
		byName: make(map[string]screen.Screen),
	}

	r.order = []screen.Screen{r.Beds, r.Banners, r.Counsellors, r.Courses, r.Testimonials}
	for _, s := range r.order {
		r.byName[s.Name()] = s
	}
	return r
}

func (r *Registry) Get(name string) (screen.Screen, bool) {
	s, ok := r.byName[strings.ToLower(name)]
	return s, ok
}

func (r *Registry) All() []screen.Screen {
	return r.order
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, s := range r.order {
		names = append(names, s.Name())
	}
	return names
}

func (r *Registry) SetObserver(o screen.Observer) {
	for _, s := range r.order {
		s.SetObserver(o)
	}
}

// optionalInt prefills a nullable number; null stays blank.
func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func intValue(n *int) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

// chosen reports an upload only when the user actually picked a file.
func chosen(files screen.Files, name string) (entity.Upload, bool) {
	up, ok := files[name]
	if !ok || up.Size() == 0 {
		return entity.Upload{}, false
	}
	return up, true
}

func attachChosen(p *backend.Payload, files screen.Files, names ...string) {
	for _, name := range names {
		if up, ok := chosen(files, name); ok {
			p.Attach(name, up)
		}
	}
}
