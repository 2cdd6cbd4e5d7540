package main

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/config"
	"HayatAdmin/internal/lib/imageurl"
	"HayatAdmin/internal/resources"
	"HayatAdmin/internal/screen"
	"HayatAdmin/internal/service/backend"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type cli struct {
	in   *bufio.Reader
	out  io.Writer
	errW io.Writer

	confPath string
	baseURL  string
	verbose  bool
	yes      bool
	sets     []string
	files    []string
}

func newRootCmd(in io.Reader, out, errW io.Writer) *cobra.Command {
	c := &cli{in: bufio.NewReader(in), out: out, errW: errW}

	root := &cobra.Command{
		Use:           "hayatctl",
		Short:         "Manage Hayat back-office records",
		Long:          "hayatctl lists, creates, updates and deletes beds, banners, counsellors, courses and testimonials.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.confPath, "conf", "config.yml", "path to config file")
	root.PersistentFlags().StringVar(&c.baseURL, "url", "", "backend base URL, overrides the config")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log requests to stderr")

	list := &cobra.Command{
		Use:   "list <resource>",
		Short: "List every record of a resource",
		Args:  cobra.ExactArgs(1),
		RunE:  c.list,
	}

	show := &cobra.Command{
		Use:   "show <resource> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE:  c.show,
	}

	create := &cobra.Command{
		Use:   "create <resource>",
		Short: "Create a record",
		Args:  cobra.ExactArgs(1),
		RunE:  c.create,
	}
	c.formFlags(create)

	update := &cobra.Command{
		Use:   "update <resource> <id>",
		Short: "Update a record; unset fields keep their current value",
		Args:  cobra.ExactArgs(2),
		RunE:  c.update,
	}
	c.formFlags(update)

	del := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE:  c.remove,
	}
	del.Flags().BoolVarP(&c.yes, "yes", "y", false, "do not ask for confirmation")

	resourcesCmd := &cobra.Command{
		Use:   "resources",
		Short: "List the managed resources and their form fields",
		Args:  cobra.NoArgs,
		RunE:  c.resources,
	}

	root.AddCommand(list, show, create, update, del, resourcesCmd)
	return root
}

func (c *cli) formFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&c.sets, "set", nil, "field value as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&c.files, "file", nil, "file field as key=path (repeatable)")
}

func (c *cli) loadConfig() (*config.Config, error) {
	var (
		conf *config.Config
		err  error
	)
	if _, statErr := os.Stat(c.confPath); statErr == nil {
		conf, err = config.Load(c.confPath)
	} else {
		conf, err = config.FromEnv()
	}
	if err != nil {
		return nil, err
	}
	if c.baseURL != "" {
		conf.Backend.BaseURL = c.baseURL
	}
	return conf, nil
}

func (c *cli) registry() (*resources.Registry, error) {
	conf, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(c.errW, &slog.HandlerOptions{Level: level}))

	opts := resources.Options{
		Resolver:            imageurl.New(conf.MediaURL()),
		CounsellorSchool:    conf.Defaults.CounsellorSchool,
		TestimonialCategory: conf.Defaults.TestimonialCategory,
	}
	// --url sends every resource to one origin
	if c.baseURL == "" {
		opts.Origins = conf.ResourceOrigins()
	}

	client := backend.NewClient(conf.Backend.BaseURL, conf.Backend.Timeout, log)
	return resources.NewRegistry(client, opts, c.confirm, log), nil
}

// open resolves the resource and loads its records.
func (c *cli) open(ctx context.Context, name string) (screen.Screen, error) {
	reg, err := c.registry()
	if err != nil {
		return nil, err
	}
	s, ok := reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w (known: %s)", name, entity.ErrUnknownResource, strings.Join(reg.Names(), ", "))
	}
	if err := s.Mount(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *cli) confirm(_ context.Context, prompt string) bool {
	if c.yes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	answer, err := c.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *cli) list(cmd *cobra.Command, args []string) error {
	s, err := c.open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	frame := s.Frame()
	if frame.Count == 0 {
		fmt.Fprintf(c.out, "no %s records\n", s.Name())
		return nil
	}
	return c.table(frame.Items)
}

func (c *cli) show(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	s, err := c.open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer s.Cancel()

	var record map[string]interface{}
	if s.HasDetail() {
		if err := s.OpenDetailByID(id); err != nil {
			return err
		}
		record = s.Frame().Record
	} else {
		if err := s.OpenEditByID(id); err != nil {
			return err
		}
		record = make(map[string]interface{})
		for k, v := range s.Frame().Values {
			record[k] = v
		}
		record["id"] = id
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, k := range columns([]screen.Row{record}) {
		fmt.Fprintf(w, "%s:\t%v\n", k, display(record[k]))
	}
	return w.Flush()
}

func (c *cli) create(cmd *cobra.Command, args []string) error {
	values, files, err := c.form()
	if err != nil {
		return err
	}
	s, err := c.open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	s.OpenCreate()
	if err := c.submit(cmd.Context(), s, values, files); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s created (%d total)\n", s.Name(), s.Frame().Count)
	return nil
}

func (c *cli) update(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	values, files, err := c.form()
	if err != nil {
		return err
	}
	s, err := c.open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := s.OpenEditByID(id); err != nil {
		return err
	}
	if err := c.submit(cmd.Context(), s, values, files); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s %d updated\n", s.Name(), id)
	return nil
}

func (c *cli) remove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	s, err := c.open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	deleted, err := s.Delete(cmd.Context(), id)
	if err != nil && !errors.Is(err, screen.ErrRefresh) {
		return err
	}
	if !deleted {
		fmt.Fprintln(c.out, "cancelled")
		return nil
	}
	if err != nil {
		fmt.Fprintln(c.errW, "warning:", err)
	}
	fmt.Fprintf(c.out, "%s %d deleted\n", s.Name(), id)
	return nil
}

func (c *cli) resources(cmd *cobra.Command, _ []string) error {
	reg, err := c.registry()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, s := range reg.All() {
		names := make([]string, 0, len(s.Fields()))
		for _, f := range s.Fields() {
			name := f.Name
			if f.Required {
				name += "*"
			}
			if f.Kind == screen.KindFile {
				name += " (file)"
			}
			names = append(names, name)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name(), s.Title(), strings.Join(names, ", "))
	}
	return w.Flush()
}

func (c *cli) submit(ctx context.Context, s screen.Screen, values screen.Values, files screen.Files) error {
	err := s.Submit(ctx, values, files)
	var validation *screen.ValidationError
	if errors.As(err, &validation) {
		return fmt.Errorf("%w; use --set name=value", err)
	}
	// the record was saved even when the list could not be reloaded
	if errors.Is(err, screen.ErrRefresh) {
		fmt.Fprintln(c.errW, "warning:", err)
		return nil
	}
	return err
}

// form turns --set and --file flags into form input.
func (c *cli) form() (screen.Values, screen.Files, error) {
	values := make(screen.Values)
	for _, kv := range c.sets {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, nil, fmt.Errorf("invalid --set %q, expected key=value", kv)
		}
		values[strings.TrimSpace(k)] = v
	}

	files := make(screen.Files)
	for _, kv := range c.files {
		k, path, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" || path == "" {
			return nil, nil, fmt.Errorf("invalid --file %q, expected key=path", kv)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, err
		}
		if info.Size() > entity.MaxFileSize {
			return nil, nil, entity.FileTooLargeError(filepath.Base(path), info.Size())
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		files[strings.TrimSpace(k)] = entity.Upload{Filename: filepath.Base(path), Content: content}
	}
	return values, files, nil
}

func (c *cli) table(rows []screen.Row) error {
	cols := columns(rows)
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(cols, "\t")))
	for _, row := range rows {
		cells := make([]string, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, display(row[col]))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

// columns puts id first and the remaining keys in name order.
func columns(rows []screen.Row) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, row := range rows {
		for k := range row {
			if k == "id" || seen[k] {
				continue
			}
			seen[k] = true
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	return append([]string{"id"}, cols...)
}

func display(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
