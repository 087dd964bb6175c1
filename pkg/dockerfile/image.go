package dockerfile

import "strings"

// Image reference helpers. References are split on the last colon rather than
// parsed with a registry-aware library because normalization (for example
// node:18 becoming docker.io/library/node:18) would rewrite user-visible
// output. A colon inside a registry port (registry:5000/app) is handled by
// requiring the tag candidate to contain no slash.

// splitRef splits an image reference into name and tag. The tag is empty when
// the reference has none.
func splitRef(ref string) (name, tag string) {
	idx := strings.LastIndex(ref, ":")
	if idx < 0 || strings.Contains(ref[idx+1:], "/") {
		return ref, ""
	}
	return ref[:idx], ref[idx+1:]
}

// BuildImage derives the dev-flavored build-stage variant of the target
// image: the reference unchanged when the tag already ends in -dev, otherwise
// the tag (defaulting to latest) with -dev appended.
func BuildImage(ref string) string {
	if strings.HasSuffix(ref, "-dev") {
		return ref
	}
	name, tag := splitRef(ref)
	if tag == "" {
		tag = "latest"
	}
	return name + ":" + tag + "-dev"
}

// RuntimeImage derives the runtime-stage variant by stripping a trailing -dev
// from the tag. References without a -dev tag pass through unchanged.
func RuntimeImage(ref string) string {
	name, tag := splitRef(ref)
	if !strings.HasSuffix(tag, "-dev") {
		return ref
	}
	return name + ":" + strings.TrimSuffix(tag, "-dev")
}
