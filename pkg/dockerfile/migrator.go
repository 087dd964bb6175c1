// Package dockerfile rewrites Dockerfiles that reference generic base images
// into equivalents referencing hardened, minimal base images. The rewrite is
// a best-effort, line-oriented transformation: base-image substitution,
// privileged-port remapping, exec-form normalization, and a synthesized
// two-stage layout when package installation or compilation is detected.
// Malformed lines never fail a migration; they pass through unchanged.
package dockerfile

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"dhi-migrate/pkg/config"
	mgrerrors "dhi-migrate/pkg/domain/errors"
	"dhi-migrate/pkg/logger"
)

// Migrator performs a single-pass migration of Dockerfile content toward a
// caller-supplied hardened target image. A Migrator is cheap to create and
// not safe for concurrent use; create one per migration.
type Migrator struct {
	target   string
	cfg      *config.Config
	analyzer *Analyzer
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures a Migrator.
type Option func(*Migrator)

// WithConfig overrides the default engine configuration.
func WithConfig(cfg *config.Config) Option {
	return func(m *Migrator) {
		m.cfg = cfg
	}
}

// WithNamespace prefixes the target image with a registry namespace when the
// reference is not already namespaced.
func WithNamespace(namespace string) Option {
	return func(m *Migrator) {
		if namespace != "" && !strings.Contains(m.target, "/") {
			m.target = namespace + "/" + m.target
		}
	}
}

// WithClock overrides the header timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Migrator) {
		m.now = now
	}
}

// New creates a Migrator targeting the given hardened image reference.
func New(targetImage string, opts ...Option) *Migrator {
	m := &Migrator{
		target: targetImage,
		cfg:    config.Default(),
		logger: logger.For("dockerfile_migrator"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.analyzer = NewAnalyzer(m.cfg.Languages)
	return m
}

// Target returns the effective target image, after namespace resolution.
func (m *Migrator) Target() string {
	return m.target
}

// Result is the outcome of a migration: the rewritten Dockerfile and an
// ordered log of every transformation applied.
type Result struct {
	Content string
	Log     []string
}

// Migrate rewrites the given Dockerfile content. The transformation itself
// cannot fail: unmatched lines pass through unchanged.
func (m *Migrator) Migrate(content string) Result {
	lines := strings.Split(content, "\n")
	analysis := m.analyzer.Analyze(lines)

	var body, log []string
	if analysis.NeedsMultistage {
		m.logger.Debug().Str("target", m.target).Msg("Synthesizing multi-stage Dockerfile")
		body, log = m.synthesizeMultistage(lines, analysis)
	} else {
		m.logger.Debug().Str("target", m.target).Msg("Applying simple migration rules")
		body, log = m.applySimpleRules(lines)
	}

	parts := append([]string{header(m.now())}, body...)
	return Result{
		Content: strings.Join(parts, "\n"),
		Log:     log,
	}
}

// MigrateFile reads and migrates the Dockerfile at path. A missing file
// fails with a FILE_NOT_FOUND error before any analysis runs; no partial
// output or log is produced.
func (m *Migrator) MigrateFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, mgrerrors.New(mgrerrors.CodeFileNotFound, "migrate",
				fmt.Sprintf("Dockerfile not found: %s", path), err)
		}
		return Result{}, mgrerrors.New(mgrerrors.CodeIoError, "migrate",
			fmt.Sprintf("reading Dockerfile %q", path), err)
	}
	return m.Migrate(string(data)), nil
}
