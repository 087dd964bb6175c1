package dockerfile

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the instruction family a line belongs to.
type Kind string

const (
	KindFrom       Kind = "FROM"
	KindExpose     Kind = "EXPOSE"
	KindRun        Kind = "RUN"
	KindCopy       Kind = "COPY" // COPY and ADD
	KindCmd        Kind = "CMD"
	KindEntrypoint Kind = "ENTRYPOINT"
	KindWorkdir    Kind = "WORKDIR"
	KindOther      Kind = "OTHER"
)

// Instruction is the classification of a single Dockerfile line. Only the
// fields relevant to the detected kind are populated.
type Instruction struct {
	Kind  Kind
	Raw   string // trimmed source line
	Image string // FROM: image reference
	Stage string // FROM: stage name after AS, if any
	Ports []int  // EXPOSE: every digit run on the line
	Args  string // RUN/COPY/CMD/ENTRYPOINT: remainder after the keyword
	// ExecForm is true when a CMD/ENTRYPOINT argument already starts with a
	// bracketed list.
	ExecForm bool
}

var digitRun = regexp.MustCompile(`\d+`)

// Classify inspects a raw Dockerfile line and extracts the tokens the
// migration engine cares about. It is deliberately line-pattern based, not a
// grammar parser: continuations, heredocs and ARG expansion are out of scope
// and such lines degrade to KindOther.
func Classify(line string) Instruction {
	trimmed := strings.TrimSpace(line)
	inst := Instruction{Kind: KindOther, Raw: trimmed}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return inst
	}

	keyword := strings.ToUpper(fields[0])
	args := strings.TrimSpace(strings.TrimPrefix(trimmed, fields[0]))

	switch keyword {
	case "FROM":
		inst.Kind = KindFrom
		if len(fields) > 1 {
			inst.Image = fields[1]
		}
		if len(fields) > 3 && strings.EqualFold(fields[2], "AS") {
			inst.Stage = fields[3]
		}
	case "EXPOSE":
		inst.Kind = KindExpose
		for _, run := range digitRun.FindAllString(trimmed, -1) {
			if p, err := strconv.Atoi(run); err == nil {
				inst.Ports = append(inst.Ports, p)
			}
		}
	case "RUN":
		inst.Kind = KindRun
		inst.Args = args
	case "COPY", "ADD":
		inst.Kind = KindCopy
		inst.Args = args
	case "CMD":
		inst.Kind = KindCmd
		inst.Args = args
		inst.ExecForm = strings.HasPrefix(args, "[")
	case "ENTRYPOINT":
		inst.Kind = KindEntrypoint
		inst.Args = args
		inst.ExecForm = strings.HasPrefix(args, "[")
	case "WORKDIR":
		inst.Kind = KindWorkdir
		inst.Args = args
	}

	return inst
}

// Keyword tables for package-manager and build-tool detection. Matching is a
// plain substring search over the whole line, so a keyword inside a comment
// or quoted string still counts as a hit. That approximation is intentional
// and callers must not tighten it here.
var (
	packageManagerKeywords = []string{"apt-get", "yum", "apk", "pip", "npm", "yarn"}
	buildToolKeywords      = []string{"make", "gcc", "g++", "javac", "go build", "cargo build"}
)

// HasPackageManagerKeyword reports whether the line mentions a known package
// manager anywhere, not just in RUN instructions.
func HasPackageManagerKeyword(line string) bool {
	return containsAny(line, packageManagerKeywords)
}

// HasBuildToolKeyword reports whether the line mentions a known build tool.
func HasBuildToolKeyword(line string) bool {
	return containsAny(line, buildToolKeywords)
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
