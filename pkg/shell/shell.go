package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/avatar"
	"github.com/goliatone/go-portfolio/pkg/catalog"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Option customises a Shell.
type Option func(*Shell)

// WithEditor injects the editor holding the profile.
func WithEditor(e *editor.Editor) Option {
	return func(s *Shell) {
		s.editor = e
	}
}

// WithOrchestrator injects the orchestrator used for previews.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(s *Shell) {
		s.orch = o
	}
}

// WithExporter injects the exporter used by Download.
func WithExporter(e *export.Exporter) Option {
	return func(s *Shell) {
		s.exporter = e
	}
}

// WithNotifier sets the notice sink.
func WithNotifier(n Notifier) Option {
	return func(s *Shell) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithNavigator sets the view switcher.
func WithNavigator(n Navigator) Option {
	return func(s *Shell) {
		if n != nil {
			s.navigator = n
		}
	}
}

// WithTemplate preselects a template id.
func WithTemplate(id string) Option {
	return func(s *Shell) {
		s.template = id
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Shell coordinates the editor, template selection, preview and export. Like
// the editor it is not safe for concurrent use.
type Shell struct {
	editor    *editor.Editor
	orch      *orchestrator.Orchestrator
	exporter  *export.Exporter
	notifier  Notifier
	navigator Navigator
	logger    *slog.Logger

	view     View
	template string
	variant  string
}

// New constructs a Shell on the form view. Missing collaborators get the
// built-in implementations.
func New(options ...Option) (*Shell, error) {
	s := &Shell{
		notifier:  nopNotifier{},
		navigator: nopNavigator{},
		logger:    logging.Discard(),
		view:      ViewForm,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.editor == nil {
		s.editor = editor.New(profile.New())
	}
	if s.orch == nil {
		s.orch = orchestrator.New()
	}
	if s.exporter == nil {
		exporter, err := export.New(export.WithOrchestrator(s.orch))
		if err != nil {
			return nil, fmt.Errorf("shell: %w", err)
		}
		s.exporter = exporter
	}
	s.template = s.orch.Resolve(s.template).ID
	return s, nil
}

// Editor returns the editor owning the profile.
func (s *Shell) Editor() *editor.Editor {
	return s.editor
}

// Profile returns a copy of the current profile.
func (s *Shell) Profile() profile.Profile {
	return s.editor.Profile()
}

// Catalog returns the template catalog.
func (s *Shell) Catalog() *catalog.Catalog {
	return s.orch.Catalog()
}

// View returns the active view.
func (s *Shell) View() View {
	return s.view
}

// Navigate switches to v.
func (s *Shell) Navigate(v View) {
	s.view = v
	s.navigator.SwitchView(v)
}

// Template returns the selected template.
func (s *Shell) Template() catalog.Template {
	return s.orch.Resolve(s.template)
}

// Variant returns the selected theme variant, empty for the base tokens.
func (s *Shell) Variant() string {
	return s.variant
}

// SelectTemplate selects a template by id. Unknown ids select the default
// template. The variant is cleared unless the new template declares it.
func (s *Shell) SelectTemplate(id string) catalog.Template {
	tpl := s.orch.Resolve(id)
	s.template = tpl.ID
	if !hasVariant(tpl, s.variant) {
		s.variant = ""
	}
	return tpl
}

// SelectVariant picks a theme variant of the selected template. Unknown
// variants select the base tokens.
func (s *Shell) SelectVariant(variant string) string {
	if !hasVariant(s.Template(), variant) {
		variant = ""
	}
	s.variant = variant
	return variant
}

// Generate checks the profile can be rendered and switches to the preview.
func (s *Shell) Generate() error {
	if !s.editor.Profile().HasName() {
		s.notifier.Notify(noticeMissingName)
		return ErrMissingName
	}
	s.Navigate(ViewPreview)
	s.notifier.Notify(noticeGenerated)
	return nil
}

// Preview renders the current profile with the named renderer. An empty name
// uses the default renderer.
func (s *Shell) Preview(ctx context.Context, renderer string) ([]byte, error) {
	out, err := s.orch.Generate(ctx, orchestrator.Request{
		Profile:  s.editor.Profile(),
		Template: s.template,
		Variant:  s.variant,
		Renderer: renderer,
	})
	if err != nil {
		return nil, fmt.Errorf("shell: preview: %w", err)
	}
	return out, nil
}

// Export builds the artifact for the current profile without saving it.
func (s *Shell) Export(ctx context.Context) (export.Artifact, error) {
	artifact, err := s.exporter.ExportVariant(ctx, s.editor.Profile(), s.template, s.variant)
	if err != nil {
		s.notifyFailure("Download Failed", err)
		return export.Artifact{}, err
	}
	return artifact, nil
}

// Download exports the current profile and hands the artifact to saver. It
// returns the location reported by the saver.
func (s *Shell) Download(ctx context.Context, saver Saver) (string, error) {
	if saver == nil {
		return "", errors.New("shell: saver is required")
	}
	artifact, err := s.Export(ctx)
	if err != nil {
		return "", err
	}
	location, err := saver.Save(ctx, artifact)
	if err != nil {
		s.notifyFailure("Download Failed", err)
		return "", fmt.Errorf("shell: save: %w", err)
	}
	s.logger.Info("portfolio exported",
		slog.String("template", s.template),
		slog.String("variant", s.variant),
		slog.String("location", location),
		slog.Int("bytes", len(artifact.Data)),
	)
	s.notifier.Notify(noticeDownloaded)
	return location, nil
}

// SetImage waits for an image read and attaches it to the profile. Failures
// leave the profile unchanged and raise a notice.
func (s *Shell) SetImage(ctx context.Context, results <-chan avatar.Result) error {
	if err := s.editor.ApplyImage(ctx, results); err != nil {
		s.logger.Warn("profile image rejected", slog.Any("error", err))
		s.notifyFailure("Image Upload Failed", err)
		return err
	}
	return nil
}

// ClearImage removes the profile image.
func (s *Shell) ClearImage() {
	s.editor.ClearImage()
}

func (s *Shell) notifyFailure(title string, err error) {
	if errors.Is(err, ErrMissingName) {
		s.notifier.Notify(noticeMissingName)
		return
	}
	s.notifier.Notify(failureNotice(title, err))
}

func hasVariant(tpl catalog.Template, variant string) bool {
	if variant == "" || tpl.Theme == nil {
		return false
	}
	_, ok := tpl.Theme.Variants[variant]
	return ok
}
