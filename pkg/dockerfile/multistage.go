package dockerfile

import (
	"fmt"
	"strings"
)

// buildStepKeywords marks RUN lines that belong in the build stage alongside
// package installs. This set is intentionally narrower than the build-tool
// detection table: it describes build *steps*, not toolchain mentions.
var buildStepKeywords = []string{"make", "build", "compile"}

// packageInstallKeywords marks RUN lines whose package installation must stay
// in the build stage, where a package manager is still available.
var packageInstallKeywords = []string{"apt-get", "yum", "apk"}

// synthesizeMultistage restructures the Dockerfile into a build stage with
// the dev-flavored image and a runtime stage with the minimal image,
// connected by artifact copies shaped by the detected language.
func (m *Migrator) synthesizeMultistage(lines []string, analysis Analysis) ([]string, []string) {
	log := []string{"Creating multi-stage Dockerfile for better security"}

	buildImage := BuildImage(m.target)
	runtimeImage := m.runtimeImage(analysis)

	var out []string
	buildLines, buildLog := m.buildStage(lines, buildImage, analysis)
	out = append(out, buildLines...)
	log = append(log, buildLog...)

	runtimeLines, runtimeLog := m.runtimeStage(lines, runtimeImage, analysis)
	out = append(out, runtimeLines...)
	log = append(log, runtimeLog...)

	return out, log
}

// runtimeImage picks the runtime-stage base. Compiled Go builds get the
// static hardened image; everything else gets the non-dev flavor of the
// target.
func (m *Migrator) runtimeImage(analysis Analysis) string {
	if analysis.Language == LanguageGo && analysis.HasBuildCommands {
		return m.cfg.StaticRuntimeImage
	}
	return RuntimeImage(m.target)
}

// buildStage emits the build stage: the original package installs, source
// copies and build commands, verbatim, under the dev image. The original FROM
// and WORKDIR lines are skipped since the stage sets its own.
func (m *Migrator) buildStage(lines []string, buildImage string, analysis Analysis) ([]string, []string) {
	stage := []string{
		"# Build stage - using hardened dev image with build tools",
		fmt.Sprintf("FROM %s AS build-stage", buildImage),
		"WORKDIR /app",
	}
	var log []string

	for _, line := range lines {
		inst := Classify(line)
		switch inst.Kind {
		case KindFrom, KindWorkdir, KindCmd, KindEntrypoint:
			continue
		case KindRun:
			if containsAny(inst.Raw, packageInstallKeywords) {
				stage = append(stage, inst.Raw)
				log = append(log, "Moved package installation to build stage")
			} else if containsAny(inst.Raw, buildStepKeywords) {
				stage = append(stage, inst.Raw)
			}
		case KindCopy:
			stage = append(stage, inst.Raw)
		}
	}

	switch analysis.Language {
	case LanguageGo:
		stage = append(stage,
			"# Build Go binary",
			"RUN CGO_ENABLED=0 GOOS=linux go build -o /app/binary .",
		)
	case LanguageJavaScript:
		stage = append(stage,
			"# Install dependencies and build",
			"RUN npm ci --omit=dev",
		)
	}

	stage = append(stage, "")
	return stage, log
}

// runtimeStage emits the runtime stage: minimal image, artifact copies from
// the build stage, ownership-adjusted application copies, privilege-checked
// port exposure and exec-form entry commands.
func (m *Migrator) runtimeStage(lines []string, runtimeImage string, analysis Analysis) ([]string, []string) {
	stage := []string{
		"# Runtime stage - using minimal hardened image",
		fmt.Sprintf("FROM %s AS runtime-stage", runtimeImage),
		"",
		"# Hardened images run as nonroot user by default",
		"# Ensure files are accessible to the nonroot user",
		"WORKDIR /app",
		"",
	}
	var log []string

	switch analysis.Language {
	case LanguageGo:
		stage = append(stage, "COPY --from=build-stage /app/binary /app/binary")
	case LanguageJavaScript:
		stage = append(stage,
			"COPY --from=build-stage /app/node_modules ./node_modules",
			"COPY --from=build-stage /app/package*.json ./",
		)
	default:
		stage = append(stage, "COPY --from=build-stage /app /app")
	}

	// Re-emit application copies with ownership fixed for the nonroot user.
	// Package-manifest copies are already handled above and stage-to-stage
	// copies are not application files.
	for _, line := range lines {
		inst := Classify(line)
		if inst.Kind != KindCopy || !strings.HasPrefix(inst.Raw, "COPY") {
			continue
		}
		if strings.Contains(inst.Raw, "package") || strings.Contains(inst.Raw, "--from=") {
			continue
		}
		copyLine := inst.Raw
		if !strings.Contains(copyLine, "--chown=") {
			copyLine = strings.Replace(copyLine, "COPY", "COPY --chown=nonroot:nonroot", 1)
		}
		stage = append(stage, copyLine)
	}

	for _, port := range analysis.ExposedPorts {
		if port < privilegedPortMax {
			remapped := port + m.cfg.PortOffset
			stage = append(stage,
				fmt.Sprintf("# WARNING: Port %d is privileged. Consider using port >= 1025", port),
				"# or configure your application to use a higher port internally",
				fmt.Sprintf("EXPOSE %d  # Changed from %d to avoid privilege issues", remapped, port),
			)
			log = append(log, fmt.Sprintf("Changed privileged port %d to %d", port, remapped))
		} else {
			stage = append(stage, fmt.Sprintf("EXPOSE %d", port))
		}
	}

	for _, line := range lines {
		inst := Classify(line)
		if inst.Kind != KindCmd && inst.Kind != KindEntrypoint {
			continue
		}
		fixed, changed := EnsureExecForm(inst.Raw)
		if changed {
			log = append(log, fmt.Sprintf("Converted to exec form: %s -> %s", inst.Raw, fixed))
		}
		stage = append(stage, fixed)
	}

	return stage, log
}
