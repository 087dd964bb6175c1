package dockerfile

import (
	"strings"

	"github.com/rs/zerolog"

	"dhi-migrate/pkg/config"
	"dhi-migrate/pkg/logger"
)

// Language is the source language guessed from the base image reference.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
	LanguageGo         Language = "go"
	LanguageJava       Language = "java"
	LanguageWeb        Language = "web"
	LanguageGeneric    Language = "generic"
	LanguageUnknown    Language = "unknown"
)

// Analysis is the structural summary of a Dockerfile that drives the choice
// between the simple and multi-stage migration paths. It is computed once per
// run and read-only afterwards.
type Analysis struct {
	OriginalBase      string
	Language          Language
	HasPackageManager bool
	HasBuildCommands  bool
	// ExposedPorts preserves first-seen order and duplicates.
	ExposedPorts    []int
	NeedsMultistage bool
	// UsesShellForm is informational; it does not gate the strategy choice.
	UsesShellForm bool
}

// Analyzer scans Dockerfile lines and produces an Analysis.
type Analyzer struct {
	languages []config.LanguageMapping
	logger    zerolog.Logger
}

// NewAnalyzer creates an analyzer with the given language detection table.
// A nil table falls back to the compiled-in defaults.
func NewAnalyzer(languages []config.LanguageMapping) *Analyzer {
	if languages == nil {
		languages = config.Default().Languages
	}
	return &Analyzer{
		languages: languages,
		logger:    logger.For("dockerfile_analyzer"),
	}
}

// Analyze makes a single forward pass over the lines. Package-manager or
// build-tool keywords anywhere in any line flip NeedsMultistage.
func (a *Analyzer) Analyze(lines []string) Analysis {
	analysis := Analysis{Language: LanguageUnknown}

	for _, line := range lines {
		inst := Classify(line)

		if inst.Kind == KindFrom && analysis.OriginalBase == "" && inst.Image != "" {
			analysis.OriginalBase = inst.Image
			analysis.Language = a.detectLanguage(inst.Image)
		}

		if HasPackageManagerKeyword(inst.Raw) {
			analysis.HasPackageManager = true
			analysis.NeedsMultistage = true
		}

		if HasBuildToolKeyword(inst.Raw) {
			analysis.HasBuildCommands = true
			analysis.NeedsMultistage = true
		}

		if inst.Kind == KindExpose {
			analysis.ExposedPorts = append(analysis.ExposedPorts, inst.Ports...)
		}

		if (inst.Kind == KindCmd || inst.Kind == KindEntrypoint) && inst.Args != "" && !inst.ExecForm {
			analysis.UsesShellForm = true
		}
	}

	a.logger.Debug().
		Str("base", analysis.OriginalBase).
		Str("language", string(analysis.Language)).
		Bool("multistage", analysis.NeedsMultistage).
		Ints("ports", analysis.ExposedPorts).
		Msg("Dockerfile analysis completed")

	return analysis
}

// detectLanguage matches the base image against the ordered language table,
// first match wins. Images matching no entry are generic.
func (a *Analyzer) detectLanguage(baseImage string) Language {
	lowered := strings.ToLower(baseImage)
	for _, mapping := range a.languages {
		if strings.Contains(lowered, mapping.Match) {
			return Language(mapping.Language)
		}
	}
	return LanguageGeneric
}
