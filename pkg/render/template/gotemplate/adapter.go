package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-portfolio/pkg/render/template"
)

// FilterFunc transforms a value inside a template expression.
type FilterFunc func(input any, param any) (any, error)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	files     fs.FS
	extension string
	globals   map[string]any
	filters   map[string]FilterFunc
	upstream  []gotemplatepkg.Option
	postHooks []gotemplatepkg.PostHook
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension sets the suffix appended to template names, ".tpl" by default.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		for key, value := range data {
			if cfg.globals == nil {
				cfg.globals = make(map[string]any, len(data))
			}
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithFilters registers filters when the engine is built. Filters are global
// to pongo2, so a name that already exists is left untouched.
func WithFilters(filters map[string]FilterFunc) Option {
	return func(cfg *config) {
		for name, fn := range filters {
			if cfg.filters == nil {
				cfg.filters = make(map[string]FilterFunc, len(filters))
			}
			cfg.filters[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGoTemplateOptions passes options straight to the go-template engine
// built by NewHooked, after every option derived from this config. New
// ignores them.
func WithGoTemplateOptions(opts ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		for _, opt := range opts {
			if opt != nil {
				cfg.upstream = append(cfg.upstream, opt)
			}
		}
	}
}

// WithPostHook registers a hook that rewrites rendered output. Only engines
// built by NewHooked run hooks.
func WithPostHook(hook gotemplatepkg.PostHook) Option {
	return func(cfg *config) {
		if hook != nil {
			cfg.postHooks = append(cfg.postHooks, hook)
		}
	}
}

// Engine renders pongo2 templates. Output is autoescaped; trusted fragments
// must go through the safe filter.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine over the configured filesystem.
func New(options ...Option) (*Engine, error) {
	cfg := newConfig(options)
	if cfg.files == nil {
		return nil, errors.New("gotemplate: template filesystem is required")
	}

	registerBuiltinFilters()
	for name, fn := range cfg.filters {
		if name == "" || fn == nil || pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, adaptFilter(fn)); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}

	e := &Engine{
		set:   pongo2.NewSet("portfolio", pongo2.NewFSLoader(cfg.files)),
		ext:   cfg.extension,
		cache: make(map[string]*pongo2.Template),
	}
	if err := e.GlobalContext(cfg.globals); err != nil {
		return nil, err
	}
	return e, nil
}

// NewHooked builds a go-template engine from the same options as New. Use it
// when output has to pass through post hooks. The engine shares pongo2's
// global filters with Engine, including the trim and cssvars builtins.
func NewHooked(options ...Option) (*gotemplatepkg.Engine, error) {
	cfg := newConfig(options)
	if cfg.files == nil {
		return nil, errors.New("gotemplate: template filesystem is required")
	}
	registerBuiltinFilters()

	opts := []gotemplatepkg.Option{
		gotemplatepkg.WithFS(cfg.files),
		gotemplatepkg.WithExtension(cfg.extension),
	}
	if len(cfg.globals) > 0 {
		opts = append(opts, gotemplatepkg.WithGlobalData(cfg.globals))
	}
	if len(cfg.filters) > 0 {
		funcs := make(map[string]any, len(cfg.filters))
		for name, fn := range cfg.filters {
			if name != "" && fn != nil {
				funcs[name] = adaptFilter(fn)
			}
		}
		opts = append(opts, gotemplatepkg.WithTemplateFunc(funcs))
	}
	opts = append(opts, cfg.upstream...)

	engine, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: go-template engine: %w", err)
	}
	for _, hook := range cfg.postHooks {
		engine.RegisterPostHook(hook)
	}
	return engine, nil
}

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// Render executes the named template. Names that look like template source
// are rendered inline instead.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, out)
}

// RenderString parses and executes templateContent.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, data, out)
}

// RegisterFilter adds a filter after construction. Unlike WithFilters it
// fails when the name is taken.
func (e *Engine) RegisterFilter(name string, fn FilterFunc) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, adaptFilter(fn))
}

// GlobalContext merges data into the values visible to every template.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	globals, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global data: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(globals)
	return nil
}

func newConfig(options []Option) *config {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute: %w", err)
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// toContext turns data into plain maps, slices and scalars so templates see
// structs through their JSON field names.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("data must be an object: %w", err)
	}
	return ctx, nil
}

func adaptFilter(fn FilterFunc) pongo2.FilterFunction {
	return func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}
}

var builtinOnce sync.Once

func registerBuiltinFilters() {
	builtinOnce.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", adaptFilter(trimFilter))
		}
		if !pongo2.FilterExists("cssvars") {
			_ = pongo2.RegisterFilter("cssvars", adaptFilter(cssVarsFilter))
		}
	})
}

func trimFilter(in any, _ any) (any, error) {
	if in == nil {
		return "", nil
	}
	return strings.TrimSpace(fmt.Sprint(in)), nil
}

// cssVarsFilter turns a map of custom properties into sorted declarations,
// one per line. Keys and values are expected to be sanitised already.
func cssVarsFilter(in any, _ any) (any, error) {
	vars, ok := in.(map[string]any)
	if !ok || len(vars) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %v;\n", key, vars[key])
	}
	return b.String(), nil
}
