package main

import (
	"HayatAdmin/entity"
	"HayatAdmin/internal/service/backend/stub"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, srv *stub.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	conf := filepath.Join(t.TempDir(), "missing.yml")
	root.SetArgs(append([]string{"--conf", conf, "--url", srv.URL()}, args...))
	err := root.Execute()
	return out.String(), err
}

func startBackend(t *testing.T) *stub.Server {
	t.Helper()
	srv := stub.NewHayat().Start()
	t.Cleanup(srv.Close)
	return srv
}

func TestListPrintsTable(t *testing.T) {
	srv := startBackend(t)
	srv.Seed("/bed/", map[string]interface{}{"name": "ICU", "bed_number": "3", "status": "occupied"})

	out, err := run(t, srv, "", "list", "bed")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "BED_NUMBER") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "ICU") || !strings.Contains(lines[1], "danger") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestListEmpty(t *testing.T) {
	srv := startBackend(t)

	out, err := run(t, srv, "", "list", "course")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "no course records") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCreateWithSetFlags(t *testing.T) {
	srv := startBackend(t)

	out, err := run(t, srv, "", "create", "bed", "--set", "name=ICU", "--set", "bed_number=4")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, "bed created (1 total)") {
		t.Fatalf("unexpected output: %q", out)
	}
	rec, ok := srv.Record("/bed/", 1)
	if !ok || rec["status"] != "vacant" {
		t.Fatalf("default status should be sent: %+v", rec)
	}
}

func TestCreateMissingRequiredField(t *testing.T) {
	srv := startBackend(t)

	_, err := run(t, srv, "", "create", "bed", "--set", "name=ICU")
	if err == nil || !strings.Contains(err.Error(), "bed_number") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if srv.Count("/bed/") != 0 {
		t.Fatalf("nothing should be created")
	}
}

func TestUpdateWithFile(t *testing.T) {
	srv := startBackend(t)
	srv.Seed("/testimonials/", map[string]interface{}{"name": "Ravi", "review": "Great", "rating": int64(5), "category": int64(44)})

	path := filepath.Join(t.TempDir(), "ravi.png")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\nravi"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	out, err := run(t, srv, "", "update", "testimonial", "1", "--set", "rating=4", "--file", "image="+path)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out, "testimonial 1 updated") {
		t.Fatalf("unexpected output: %q", out)
	}
	rec, _ := srv.Record("/testimonials/", 1)
	img, _ := rec["image"].(string)
	if !strings.HasSuffix(img, "ravi.png") || rec["rating"] != int64(4) {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestDeletePrompts(t *testing.T) {
	srv := startBackend(t)
	srv.Seed("/bed/", map[string]interface{}{"name": "ICU", "bed_number": "3", "status": "vacant"})

	out, err := run(t, srv, "n\n", "delete", "bed", "1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "Delete this bed? [y/N]") || !strings.Contains(out, "cancelled") {
		t.Fatalf("unexpected output: %q", out)
	}
	if srv.Count("/bed/") != 1 {
		t.Fatalf("declined delete must keep the record")
	}

	out, err = run(t, srv, "y\n", "delete", "bed", "1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "bed 1 deleted") || srv.Count("/bed/") != 0 {
		t.Fatalf("confirmed delete failed: %q", out)
	}
}

func TestDeleteYesSkipsPrompt(t *testing.T) {
	srv := startBackend(t)
	srv.Seed("/banners/", map[string]interface{}{"CTA_text": "Hi", "status": true, "order": int64(1)})

	out, err := run(t, srv, "", "delete", "banner", "1", "--yes")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if strings.Contains(out, "[y/N]") || srv.Count("/banners/") != 0 {
		t.Fatalf("--yes should delete without asking: %q", out)
	}
}

func TestShowDetail(t *testing.T) {
	srv := startBackend(t)
	srv.Seed("/bed/", map[string]interface{}{"name": "ICU", "bed_number": "3", "status": "vacant"})

	out, err := run(t, srv, "", "show", "bed", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "bed_number:") || !strings.Contains(out, "success") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUnknownResource(t *testing.T) {
	srv := startBackend(t)

	_, err := run(t, srv, "", "list", "patients")
	if !errors.Is(err, entity.ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}

func TestFormFlagErrors(t *testing.T) {
	srv := startBackend(t)

	cases := [][]string{
		{"create", "bed", "--set", "name"},
		{"create", "bed", "--file", "image"},
		{"update", "bed", "0", "--set", "name=x"},
		{"create", "banner", "--file", "image=/does/not/exist.png"},
	}
	for _, args := range cases {
		if _, err := run(t, srv, "", args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
