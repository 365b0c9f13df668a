package shell_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-portfolio/pkg/avatar"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/shell"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

type recorder struct {
	notices []shell.Notice
	views   []shell.View
}

func (r *recorder) Notify(n shell.Notice)   { r.notices = append(r.notices, n) }
func (r *recorder) SwitchView(v shell.View) { r.views = append(r.views, v) }

func newShell(t *testing.T, p profile.Profile, opts ...shell.Option) (*shell.Shell, *recorder) {
	t.Helper()
	rec := &recorder{}
	base := []shell.Option{
		shell.WithEditor(editor.New(p)),
		shell.WithNotifier(rec),
		shell.WithNavigator(rec),
	}
	s, err := shell.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new shell: %v", err)
	}
	return s, rec
}

func TestShell_Defaults(t *testing.T) {
	s, _ := newShell(t, profile.New())
	if s.View() != shell.ViewForm {
		t.Fatalf("view = %q, want form", s.View())
	}
	if s.Template().ID != "modern" {
		t.Fatalf("template = %q, want modern", s.Template().ID)
	}
}

func TestShell_SelectTemplate(t *testing.T) {
	s, _ := newShell(t, profile.New())

	if got := s.SelectTemplate("tech").ID; got != "tech" {
		t.Fatalf("select tech = %q", got)
	}
	if got := s.SelectVariant("dark"); got != "dark" {
		t.Fatalf("select dark = %q", got)
	}
	if got := s.SelectTemplate("retro").ID; got != "modern" {
		t.Fatalf("unknown template should fall back to modern, got %q", got)
	}
	if got := s.SelectTemplate("minimalist"); got.ID != "minimalist" || s.Variant() != "" {
		t.Fatalf("variant should reset for templates without it, got %q/%q", got.ID, s.Variant())
	}
	if got := s.SelectVariant("sepia"); got != "" {
		t.Fatalf("unknown variant = %q", got)
	}
}

func TestShell_GenerateRequiresName(t *testing.T) {
	s, rec := newShell(t, profile.New())

	err := s.Generate()
	if !errors.Is(err, shell.ErrMissingName) || !errors.Is(err, export.ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
	if s.View() != shell.ViewForm || len(rec.views) != 0 {
		t.Fatalf("view must not change, got %q %v", s.View(), rec.views)
	}
	want := []shell.Notice{{
		Title:       "Missing Information",
		Description: "Please enter at least your name to generate a portfolio.",
		Variant:     shell.VariantDestructive,
	}}
	if diff := cmp.Diff(want, rec.notices); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestShell_GenerateSwitchesToPreview(t *testing.T) {
	s, rec := newShell(t, testsupport.SampleProfile())

	if err := s.Generate(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.View() != shell.ViewPreview {
		t.Fatalf("view = %q, want preview", s.View())
	}
	if diff := cmp.Diff([]shell.View{shell.ViewPreview}, rec.views); diff != "" {
		t.Fatalf("views mismatch (-want +got):\n%s", diff)
	}
	if len(rec.notices) != 1 || rec.notices[0].Title != "Portfolio Generated!" || rec.notices[0].Variant != shell.VariantDefault {
		t.Fatalf("unexpected notices: %+v", rec.notices)
	}
}

func TestShell_Download(t *testing.T) {
	s, rec := newShell(t, testsupport.SampleProfile())
	s.SelectTemplate("creative")

	var buf bytes.Buffer
	location, err := s.Download(testsupport.Context(), export.WriterSaver{W: &buf})
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if location != "Jane_Doe_Portfolio.html" {
		t.Fatalf("location = %q", location)
	}
	if !strings.Contains(buf.String(), `data-template="creative"`) {
		t.Fatalf("expected creative template in document")
	}
	if len(rec.notices) != 1 || rec.notices[0].Title != "Portfolio Downloaded!" {
		t.Fatalf("unexpected notices: %+v", rec.notices)
	}
}

func TestShell_DownloadFailures(t *testing.T) {
	s, rec := newShell(t, profile.New())

	var saved bool
	saver := export.SaverFunc(func(context.Context, export.Artifact) (string, error) {
		saved = true
		return "", nil
	})
	if _, err := s.Download(testsupport.Context(), saver); !errors.Is(err, shell.ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
	if saved {
		t.Fatalf("saver must not run without a name")
	}
	if len(rec.notices) != 1 || rec.notices[0].Title != "Missing Information" {
		t.Fatalf("unexpected notices: %+v", rec.notices)
	}

	s, rec = newShell(t, testsupport.SampleProfile())
	boom := errors.New("disk full")
	failing := export.SaverFunc(func(context.Context, export.Artifact) (string, error) {
		return "", boom
	})
	if _, err := s.Download(testsupport.Context(), failing); !errors.Is(err, boom) {
		t.Fatalf("expected saver error, got %v", err)
	}
	want := []shell.Notice{{Title: "Download Failed", Description: "disk full", Variant: shell.VariantDestructive}}
	if diff := cmp.Diff(want, rec.notices); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

var containerStyle = regexp.MustCompile(`class="portfolio-container"[^>]*style="([^"]*)"`)

func TestShell_ExportUsesSelectedVariant(t *testing.T) {
	s, _ := newShell(t, testsupport.SampleProfile())
	if got := s.SelectVariant("dark"); got != "dark" {
		t.Fatalf("select variant = %q", got)
	}

	preview, err := s.Preview(testsupport.Context(), "")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	match := containerStyle.FindSubmatch(preview)
	if match == nil {
		t.Fatalf("preview has no themed container:\n%s", preview)
	}
	style := string(match[1])
	if !strings.Contains(style, "--background: #0f172a") {
		t.Fatalf("preview should use dark tokens, got %q", style)
	}

	artifact, err := s.Export(testsupport.Context())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	doc := string(artifact.Data)
	exported := containerStyle.FindStringSubmatch(doc)
	if exported == nil {
		t.Fatalf("export has no themed container")
	}
	if diff := cmp.Diff(style, exported[1]); diff != "" {
		t.Fatalf("preview and export theme vars differ (-preview +export):\n%s", diff)
	}
	if !strings.Contains(doc, "--background: #0f172a;") || strings.Contains(doc, "--background: #f8fafc") {
		t.Fatalf("document root style should carry the dark background")
	}
}

func TestShell_PreviewFollowsEdits(t *testing.T) {
	s, _ := newShell(t, profile.New())

	out, err := s.Preview(testsupport.Context(), "")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(string(out), "Fill in your information to see the portfolio preview") {
		t.Fatalf("expected empty state:\n%s", out)
	}

	if err := s.Editor().UpdatePath("personalInfo.name", "Ada Lovelace"); err != nil {
		t.Fatalf("update: %v", err)
	}
	out, err = s.Preview(testsupport.Context(), "")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(string(out), "Ada Lovelace") {
		t.Fatalf("expected updated name:\n%s", out)
	}

	if _, err := s.Preview(testsupport.Context(), "pdf"); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestShell_SetImage(t *testing.T) {
	s, rec := newShell(t, testsupport.SampleProfile())

	if err := s.SetImage(testsupport.Context(), avatar.Read(testsupport.Context(), bytes.NewReader(tinyPNG(t)))); err != nil {
		t.Fatalf("set image: %v", err)
	}
	if !strings.HasPrefix(s.Profile().ProfileImage, "data:image/png;base64,") {
		t.Fatalf("unexpected image %q", s.Profile().ProfileImage)
	}
	if len(rec.notices) != 0 {
		t.Fatalf("unexpected notices: %+v", rec.notices)
	}

	before := s.Profile().ProfileImage
	err := s.SetImage(testsupport.Context(), avatar.Read(testsupport.Context(), strings.NewReader("not an image")))
	if !errors.Is(err, avatar.ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	if s.Profile().ProfileImage != before {
		t.Fatalf("failed read must leave the image unchanged")
	}
	if len(rec.notices) != 1 || rec.notices[0].Title != "Image Upload Failed" || rec.notices[0].Variant != shell.VariantDestructive {
		t.Fatalf("unexpected notices: %+v", rec.notices)
	}

	s.ClearImage()
	if s.Profile().HasImage() {
		t.Fatalf("expected image cleared")
	}
}

func TestParseView(t *testing.T) {
	for _, raw := range []string{"form", "Template", " preview "} {
		if _, err := shell.ParseView(raw); err != nil {
			t.Fatalf("ParseView(%q): %v", raw, err)
		}
	}
	if _, err := shell.ParseView("settings"); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
