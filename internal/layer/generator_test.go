package layer

import (
	"strings"
	"testing"
)

func TestGenerate_SingleVersionOccurrence(t *testing.T) {
	for _, version := range SupportedVersions {
		for _, strategy := range Strategies() {
			t.Run(version+"/"+strategy.String(), func(t *testing.T) {
				art := Generate(Snapshot{RuntimeVersion: version, Strategy: strategy})

				if got := strings.Count(art.Text, version); got != 1 {
					t.Errorf("version %q appears %d times, want exactly 1\n%s", version, got, art.Text)
				}

				archiveCmds := 0
				for _, line := range strings.Split(art.Text, "\n") {
					if strings.HasPrefix(line, "zip -r ") {
						archiveCmds++
						if !strings.Contains(line, DefaultBaseName+"-"+strategy.Tag()) {
							t.Errorf("archive command %q missing base name and strategy tag", line)
						}
					}
				}
				if archiveCmds != 1 {
					t.Errorf("found %d archive commands, want exactly 1", archiveCmds)
				}
			})
		}
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	snap := Snapshot{
		RuntimeVersion: "3.12",
		Strategy:       StrategyFastVenv,
		DependencySpec: "requests\nhttpx",
		BaseName:       "api-deps",
	}

	first := Generate(snap)
	second := Generate(snap)

	if first.Text != second.Text {
		t.Error("Generate is not deterministic: two calls with the same snapshot differ")
	}
	if first.SuggestedFilename != second.SuggestedFilename {
		t.Errorf("SuggestedFilename differs: %q vs %q", first.SuggestedFilename, second.SuggestedFilename)
	}
}

func TestGenerate_DefaultDependencySubstitution(t *testing.T) {
	empty := Generate(Snapshot{RuntimeVersion: "3.11", Strategy: StrategyLegacyVenv, DependencySpec: ""})
	whitespace := Generate(Snapshot{RuntimeVersion: "3.11", Strategy: StrategyLegacyVenv, DependencySpec: "  \n\t "})

	if !strings.Contains(empty.Text, "\n"+DefaultDependency+"\n") {
		t.Errorf("empty spec: default dependency %q missing from manifest", DefaultDependency)
	}
	// A whitespace-only spec behaves identically to an empty one.
	if empty.Text != whitespace.Text {
		t.Error("whitespace-only spec produced different text than empty spec")
	}
}

func TestGenerate_DependencyLinesVerbatim(t *testing.T) {
	art := Generate(Snapshot{
		RuntimeVersion: "3.10",
		Strategy:       StrategyFastVenv,
		DependencySpec: "numpy==2.0\npandas==2.2",
		BaseName:       "my-layer",
	})

	start := strings.Index(art.Text, "<< EOF\n")
	end := strings.Index(art.Text, "\nEOF\n")
	if start < 0 || end < 0 || end < start {
		t.Fatalf("manifest heredoc not found in:\n%s", art.Text)
	}
	manifest := art.Text[start+len("<< EOF\n") : end+1]

	numpyAt := strings.Index(manifest, "numpy==2.0\n")
	pandasAt := strings.Index(manifest, "pandas==2.2")
	if numpyAt < 0 || pandasAt < 0 {
		t.Fatalf("dependency lines missing from manifest %q", manifest)
	}
	if numpyAt > pandasAt {
		t.Error("dependency lines reordered in manifest")
	}

	if !strings.Contains(art.Text, `zip -r "../my-layer-`) {
		t.Errorf("archive filename should start with \"my-layer-\":\n%s", art.Text)
	}
}

func TestGenerate_CleanupAfterArchive(t *testing.T) {
	for _, strategy := range Strategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			art := Generate(Snapshot{RuntimeVersion: "3.9", Strategy: strategy})

			cleanup := "rm -rf " + workspaceDir
			if got := strings.Count(art.Text, cleanup); got != 1 {
				t.Fatalf("cleanup appears %d times, want exactly 1", got)
			}

			zipAt := strings.Index(art.Text, "zip -r ")
			cleanupAt := strings.Index(art.Text, cleanup)
			if zipAt < 0 {
				t.Fatal("archive command missing")
			}
			if cleanupAt < zipAt {
				t.Error("cleanup appears before archive creation")
			}
		})
	}
}

func TestGenerate_CommandOrdering(t *testing.T) {
	art := Generate(Snapshot{
		RuntimeVersion: "3.12",
		Strategy:       StrategyLegacyVenv,
		DependencySpec: "flask",
		BaseName:       "web",
	})

	// The command sequence is a contract: setup, manifest, environment,
	// install, staging, archive, cleanup.
	ordered := []string{
		"mkdir -p " + workspaceDir,
		"cat > " + manifestFile + " << EOF",
		"-m venv " + envDir,
		"pip install -r " + manifestFile,
		"cp -r " + envDir + "/lib " + stagingDir + "/",
		`zip -r "../web-pip312.zip" ` + stagingDir,
		"rm -rf " + workspaceDir,
	}

	last := -1
	for _, marker := range ordered {
		at := strings.Index(art.Text, marker)
		if at < 0 {
			t.Fatalf("marker %q missing from script:\n%s", marker, art.Text)
		}
		if at < last {
			t.Errorf("marker %q out of order", marker)
		}
		last = at
	}
}

func TestGenerate_LegacyScenarioWithDefaults(t *testing.T) {
	// Legacy strategy, 3.11, nothing entered: defaults kick in and the
	// archive embeds the short version token.
	art := Generate(Snapshot{RuntimeVersion: "3.11", Strategy: StrategyLegacyVenv})

	if !strings.Contains(art.Text, DefaultDependency) {
		t.Error("default dependency line missing")
	}
	if !strings.Contains(art.Text, DefaultBaseName+"-pip311.zip") {
		t.Errorf("archive name should be %s-pip311.zip:\n%s", DefaultBaseName, art.Text)
	}
	if art.SuggestedFilename != "pip-311.sh" {
		t.Errorf("SuggestedFilename = %q, want pip-311.sh", art.SuggestedFilename)
	}
}

func TestGenerate_FastStrategyUsesUV(t *testing.T) {
	art := Generate(Snapshot{RuntimeVersion: "3.13", Strategy: StrategyFastVenv})

	if !strings.Contains(art.Text, "uv venv --python") {
		t.Error("fast-venv script should create the environment with uv")
	}
	if !strings.Contains(art.Text, "uv pip install -r "+manifestFile) {
		t.Error("fast-venv script should install with uv pip")
	}
	if strings.Contains(art.Text, "\npip install") {
		t.Error("fast-venv script should not fall back to bare pip")
	}
	if art.SuggestedFilename != "uv-313.sh" {
		t.Errorf("SuggestedFilename = %q, want uv-313.sh", art.SuggestedFilename)
	}
}

func TestGenerate_HeredocTerminatorNotEscaped(t *testing.T) {
	// A dependency line colliding with the heredoc terminator passes
	// through untouched. The collision is preserved, not repaired.
	art := Generate(Snapshot{
		RuntimeVersion: "3.11",
		Strategy:       StrategyLegacyVenv,
		DependencySpec: "requests\nEOF\nflask",
	})

	if !strings.Contains(art.Text, "\nrequests\nEOF\nflask\n") {
		t.Errorf("colliding dependency lines were altered:\n%s", art.Text)
	}
}

func TestGenerate_ArchiveArgumentQuoted(t *testing.T) {
	// Base names are free text; a name with spaces must stay one zip
	// argument.
	art := Generate(Snapshot{
		RuntimeVersion: "3.12",
		Strategy:       StrategyLegacyVenv,
		BaseName:       "my data layer",
	})

	if !strings.Contains(art.Text, `zip -r "../my data layer-pip312.zip" `+stagingDir) {
		t.Errorf("archive argument not quoted:\n%s", art.Text)
	}
}

func TestShortVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.9", "39"},
		{"3.10", "310"},
		{"3.13", "313"},
	}
	for _, tt := range tests {
		if got := ShortVersion(tt.in); got != tt.want {
			t.Errorf("ShortVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{
			"Defaults",
			Snapshot{RuntimeVersion: "3.11", Strategy: StrategyLegacyVenv},
			"layer-pip311.zip",
		},
		{
			"Custom base with fast strategy",
			Snapshot{RuntimeVersion: "3.10", Strategy: StrategyFastVenv, BaseName: "my-layer"},
			"my-layer-uv310.zip",
		},
		{
			"Whitespace base falls back to default",
			Snapshot{RuntimeVersion: "3.9", Strategy: StrategyLegacyVenv, BaseName: "   "},
			"layer-pip39.zip",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArchiveName(tt.snap); got != tt.want {
				t.Errorf("ArchiveName() = %q, want %q", got, tt.want)
			}
		})
	}
}
