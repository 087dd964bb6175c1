package dockerfile

import (
	"fmt"
	"strconv"
	"strings"
)

// privilegedPortMax is the exclusive upper bound of the privileged port range.
const privilegedPortMax = 1024

// Rule is a single line rewrite on the simple migration path. Apply returns
// the (possibly unchanged) line plus any log entries describing what it did.
// Rules are stateless and must be idempotent on lines they do not match.
type Rule struct {
	Description        string
	RequiresMultistage bool
	Apply              func(line string) (string, []string)
}

// simpleRules returns the ordered rule set for the single-stage path. The
// order is significant: FROM before EXPOSE before RUN before CMD/ENTRYPOINT.
func (m *Migrator) simpleRules() []Rule {
	return []Rule{
		{
			Description: "Replace base image with hardened equivalent",
			Apply:       replaceBaseImage(m.target),
		},
		{
			Description: "Check for privileged ports and update if needed",
			Apply:       remapPrivilegedPorts(m.cfg.PortOffset),
		},
		{
			Description:        "Handle package installation for minimal images",
			RequiresMultistage: true,
			Apply:              annotatePackageInstall(),
		},
		{
			Description: "Ensure CMD/ENTRYPOINT uses exec form",
			Apply:       normalizeExecForm(),
		},
	}
}

// applySimpleRules runs every non-multistage rule over each line in order.
// A line that a transform reduces to nothing falls back to the original raw
// line so no content is silently dropped.
func (m *Migrator) applySimpleRules(lines []string) ([]string, []string) {
	rules := m.simpleRules()
	var out []string
	var log []string

	for _, original := range lines {
		line := strings.TrimSpace(original)
		for _, rule := range rules {
			if rule.RequiresMultistage {
				continue
			}
			var notes []string
			line, notes = rule.Apply(line)
			log = append(log, notes...)
		}
		if line == "" {
			line = original
		}
		out = append(out, line)
	}

	return out, log
}

// replaceBaseImage rewrites the FROM image reference to the target image,
// preserving any AS <stage> suffix verbatim.
func replaceBaseImage(target string) func(string) (string, []string) {
	return func(line string) (string, []string) {
		if Classify(line).Kind != KindFrom {
			return line, nil
		}
		stageSuffix := ""
		if _, rest, found := strings.Cut(line, " AS "); found {
			stageSuffix = " AS " + rest
		}
		newLine := fmt.Sprintf("FROM %s%s", target, stageSuffix)
		return newLine, []string{fmt.Sprintf("Replaced base image: %s -> %s", line, newLine)}
	}
}

// remapPrivilegedPorts shifts every port below 1024 up by offset and
// regenerates the EXPOSE line when anything changed. Remapped values are not
// range-checked; a port near the top of the range can overflow 65535, exactly
// as the caller wrote it plus the offset, and the log records every remap for
// audit.
func remapPrivilegedPorts(offset int) func(string) (string, []string) {
	return func(line string) (string, []string) {
		inst := Classify(line)
		if inst.Kind != KindExpose || len(inst.Ports) == 0 {
			return line, nil
		}

		var log []string
		updated := make([]string, 0, len(inst.Ports))
		changed := false
		for _, port := range inst.Ports {
			if port < privilegedPortMax {
				remapped := port + offset
				updated = append(updated, strconv.Itoa(remapped))
				log = append(log, fmt.Sprintf("Changed privileged port %d to %d", port, remapped))
				changed = true
			} else {
				updated = append(updated, strconv.Itoa(port))
			}
		}

		if !changed {
			return line, nil
		}
		return "EXPOSE " + strings.Join(updated, " "), log
	}
}

// annotatePackageInstall is a defensive fallback: the analyzer routes package
// installs to the multi-stage path, so this only fires when that detection
// missed the same keywords. The line is annotated, never moved or removed.
func annotatePackageInstall() func(string) (string, []string) {
	keywords := []string{"apt-get", "yum", "apk", "pip"}
	return func(line string) (string, []string) {
		if !containsAny(line, keywords) {
			return line, nil
		}
		note := "Package installation detected - recommend using multi-stage build"
		return "# NOTE: Move to build stage for hardened images\n" + line, []string{note}
	}
}

// normalizeExecForm converts shell-form CMD/ENTRYPOINT lines to exec form.
func normalizeExecForm() func(string) (string, []string) {
	return func(line string) (string, []string) {
		fixed, changed := EnsureExecForm(line)
		if !changed {
			return line, nil
		}
		return fixed, []string{fmt.Sprintf("Converted to exec form: %s -> %s", line, fixed)}
	}
}

// EnsureExecForm rewrites a shell-form CMD/ENTRYPOINT line as
// INSTRUCTION ["tok1", "tok2", ...] and reports whether it changed anything.
// Lines already in bracketed form, or that are not CMD/ENTRYPOINT, pass
// through untouched, which makes the conversion idempotent. Tokens are split
// on whitespace only, so arguments with embedded quoted spaces are not
// reconstructed faithfully; that is a documented limitation.
func EnsureExecForm(line string) (string, bool) {
	inst := Classify(line)
	if inst.Kind != KindCmd && inst.Kind != KindEntrypoint {
		return line, false
	}
	if inst.ExecForm || inst.Args == "" {
		return line, false
	}

	tokens := strings.Fields(inst.Args)
	quoted := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		quoted = append(quoted, fmt.Sprintf("%q", tok))
	}
	return fmt.Sprintf("%s [%s]", inst.Kind, strings.Join(quoted, ", ")), true
}
