package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-portfolio/pkg/render/template/gotemplate"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

type card struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
}

func TestEngine_RendersStructsThroughJSONNames(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.Render("card", map[string]any{
			"card": card{ID: "tech", Name: "Tech & Code", Thumbnail: `<svg viewBox="0 0 4 4"></svg>`},
		}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "card.golden"))
	if result != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_AutoescapesUntrustedText(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("card", map[string]any{
		"card": card{ID: `x" onclick="alert(1)`, Name: "<script>alert(1)</script>"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<script>") || strings.Contains(result, `" onclick`) {
		t.Fatalf("expected escaped output, got %q", result)
	}
}

func TestEngine_GlobalData(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS(t)),
		gotemplate.WithGlobalData(map[string]any{"site": map[string]any{"name": "Portfolio Generator"}}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.GlobalContext(map[string]any{
		"site": map[string]any{"name": "Portfolio Generator", "version": "v2"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.Render("footer", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "footer.golden"))
	if result != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_Filters(t *testing.T) {
	initials := func(input any, _ any) (any, error) {
		var parts []string
		for _, word := range strings.Fields(fmt.Sprint(input)) {
			parts = append(parts, strings.ToUpper(word[:1])+".")
		}
		return strings.Join(parts, " "), nil
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS(t)),
		gotemplate.WithFilters(map[string]gotemplate.FilterFunc{"initials": initials}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.Render("initials", map[string]any{"name": "ada lovelace"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "initials.golden"))
	if result != want {
		t.Fatalf("filter mismatch\nwant: %q\n got: %q", want, result)
	}

	if err := engine.RegisterFilter("initials", initials); err == nil {
		t.Fatalf("expected error when registering an existing filter")
	}
	if err := engine.RegisterFilter(" ", initials); err == nil {
		t.Fatalf("expected error for blank filter name")
	}
}

func TestEngine_CSSVarsFilter(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("vars", map[string]any{
		"vars": map[string]string{"--surface": "#fff", "--primary": "#3b82f6"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "--primary: #3b82f6;\n--surface: #fff;\n"
	if result != want {
		t.Fatalf("cssvars mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ name|trim }}", map[string]any{"name": "  Ada  "})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "Ada" {
		t.Fatalf("render string = %q", result)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a filesystem")
	}

	engine := newEngine(t)
	if _, err := engine.Render("missing", nil); err == nil {
		t.Fatalf("expected error for a missing template")
	}
	if _, err := engine.Render("card", []string{"not", "an", "object"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
}

func TestNewHooked_SharesOptionsAndRunsPostHooks(t *testing.T) {
	var seen []string
	engine, err := gotemplate.NewHooked(
		gotemplate.WithFS(templatesFS(t)),
		gotemplate.WithGoTemplateOptions(gotemplatepkg.WithGlobalData(map[string]any{
			"site": map[string]any{"name": "Portfolio Generator", "version": "v2"},
		})),
		gotemplate.WithPostHook(func(ctx *gotemplatepkg.HookContext) (string, error) {
			seen = append(seen, ctx.TemplateName)
			return "[" + ctx.Output + "]", nil
		}),
	)
	if err != nil {
		t.Fatalf("new hooked engine: %v", err)
	}

	footer, err := engine.Render("footer", nil)
	if err != nil {
		t.Fatalf("render footer: %v", err)
	}
	want := "[" + testsupport.MustReadGoldenString(t, filepath.Join("testdata", "footer.golden")) + "]"
	if footer != want {
		t.Fatalf("footer mismatch\nwant: %q\n got: %q", want, footer)
	}

	vars, err := engine.Render("vars", map[string]any{"vars": map[string]string{"--text": "#111"}})
	if err != nil {
		t.Fatalf("render vars: %v", err)
	}
	if vars != "[--text: #111;\n]" {
		t.Fatalf("cssvars through hooked engine = %q", vars)
	}

	escaped, err := engine.Render("card", map[string]any{"card": card{ID: "x", Name: "<b>"}})
	if err != nil {
		t.Fatalf("render card: %v", err)
	}
	if strings.Contains(escaped, "<b>") {
		t.Fatalf("expected autoescaped output, got %q", escaped)
	}

	if diff := cmp.Diff([]string{"footer", "vars", "card"}, seen); diff != "" {
		t.Fatalf("hooked templates (-want +got):\n%s", diff)
	}

	if _, err := gotemplate.NewHooked(); err == nil {
		t.Fatalf("expected error without a filesystem")
	}
}

func templatesFS(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	return sub
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS(t)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
