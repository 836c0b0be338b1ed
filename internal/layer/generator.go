package layer

import (
	"fmt"
	"strings"
)

// Artifact is a generated script plus the filename suggested when saving it.
// Artifacts have no identity of their own: every Config change produces a
// new one wholesale, the previous one is discarded, and partial updates do
// not exist.
type Artifact struct {
	// Text is the full script content.
	Text string

	// SuggestedFilename is derived from the strategy tag and the short
	// runtime version, e.g. "pip-311.sh".
	SuggestedFilename string
}

// Directory names used inside the generated script. The workspace holds
// everything transient; cleanup removes it in one sweep.
const (
	workspaceDir = "layer-workspace"
	envDir       = "create_layer"
	stagingDir   = "python"
	manifestFile = "requirements.txt"
)

// ShortVersion collapses a dotted runtime version to the token used in
// archive and script names: "3.11" -> "311".
func ShortVersion(v string) string {
	return strings.ReplaceAll(v, ".", "")
}

// ArchiveName returns the zip filename a script for cfg will produce,
// after default substitution of the base name.
func ArchiveName(cfg Snapshot) string {
	base := cfg.BaseName
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseName
	}
	return fmt.Sprintf("%s-%s%s.zip", base, cfg.Strategy.Tag(), ShortVersion(cfg.RuntimeVersion))
}

// Generate renders the packaging script for cfg. It is pure and
// deterministic: the same snapshot always yields byte-identical output, and
// it assumes a valid snapshot because the Config store rejects invalid
// values before they can get here.
//
// The command ordering is fixed and load-bearing (downstream users diff the
// generated text): workspace creation, manifest heredoc, environment
// creation, dependency install, staging copy, archive creation, cleanup.
// The cleanup commands are appended unconditionally rather than guarded by
// success checks; the script promises best-effort cleanup, not a
// guaranteed release.
func Generate(cfg Snapshot) Artifact {
	deps := cfg.DependencySpec
	if strings.TrimSpace(deps) == "" {
		deps = DefaultDependency
	}
	// Interior lines are kept exactly as entered: no trimming, no
	// deduplication. Only trailing newlines go, so the heredoc stays tight.
	deps = strings.TrimRight(deps, "\n")

	archive := ArchiveName(cfg)

	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	fmt.Fprintf(&b, "# Builds %s with python dependencies staged under %s/.\n", archive, stagingDir)
	fmt.Fprintf(&b, "# Strategy: %s\n\n", cfg.Strategy)

	// The dotted version is interpolated exactly once; every later command
	// goes through the shell variable.
	fmt.Fprintf(&b, "PYTHON_VERSION=\"%s\"\n\n", cfg.RuntimeVersion)

	fmt.Fprintf(&b, "mkdir -p %s\n", workspaceDir)
	fmt.Fprintf(&b, "cd %s\n\n", workspaceDir)

	// Dependency lines go into the heredoc verbatim. A line equal to the
	// terminator ends the manifest early; that is left as-is.
	fmt.Fprintf(&b, "cat > %s << EOF\n%s\nEOF\n\n", manifestFile, deps)

	b.WriteString(cfg.Strategy.environmentCommands())
	b.WriteString("\n")

	fmt.Fprintf(&b, "mkdir -p %s\n", stagingDir)
	fmt.Fprintf(&b, "cp -r %s/lib %s/\n", envDir, stagingDir)
	// The base name is free text; quoting keeps a name with spaces as one
	// zip argument.
	fmt.Fprintf(&b, "zip -r \"../%s\" %s\n\n", archive, stagingDir)

	b.WriteString("cd ..\n")
	fmt.Fprintf(&b, "rm -rf %s\n", workspaceDir)

	return Artifact{
		Text:              b.String(),
		SuggestedFilename: fmt.Sprintf("%s-%s.sh", cfg.Strategy.Tag(), ShortVersion(cfg.RuntimeVersion)),
	}
}

// environmentCommands returns the strategy-specific block: isolated
// environment creation pinned to $PYTHON_VERSION, then dependency install
// from the manifest. One branch per variant; a third strategy means a third
// branch here.
func (s Strategy) environmentCommands() string {
	switch s {
	case StrategyFastVenv:
		return "uv venv --python \"${PYTHON_VERSION}\" " + envDir + "\n" +
			"source " + envDir + "/bin/activate\n" +
			"uv pip install -r " + manifestFile + "\n" +
			"deactivate\n"
	default: // StrategyLegacyVenv
		return "python${PYTHON_VERSION} -m venv " + envDir + "\n" +
			"source " + envDir + "/bin/activate\n" +
			"pip install -r " + manifestFile + "\n" +
			"deactivate\n"
	}
}
