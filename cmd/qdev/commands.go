package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nathanielng/qdev/internal/highlight"
	"github.com/nathanielng/qdev/internal/layer"
	"github.com/nathanielng/qdev/internal/logging"
	"github.com/nathanielng/qdev/internal/prefs"
	"github.com/nathanielng/qdev/internal/preview"
	"github.com/nathanielng/qdev/internal/render"
	"github.com/nathanielng/qdev/internal/tui"
	"github.com/nathanielng/qdev/internal/urls"
)

// Command flags
var (
	// generate
	genPython       string
	genStrategy     string
	genDeps         []string
	genRequirements string
	genName         string
	genOutput       string
	genCopy         bool
	genHTML         bool
	genPlain        bool
	genLineNumbers  bool
	genTheme        string
	genSaveDefaults bool

	// highlight
	hlOutput      string
	hlHTML        bool
	hlBrowser     bool
	hlLanguage    string
	hlLineNumbers bool
	hlTheme       string

	// preview
	previewAddr string
	previewOpen bool
	previewMDNS bool
)

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(previewCmd)
}

// generateCmd renders a packaging script non-interactively
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a layer packaging script",
	Long: `Generate a python layer packaging script without the interactive wizard.

The script creates an isolated environment for the chosen python version,
installs the requested dependencies, stages them under python/, and zips the
result into a layer archive. Strategy "legacy-venv" (alias "pip") uses
python -m venv and pip; "fast-venv" (alias "uv") uses the uv package manager.

The script is printed to stdout with syntax highlighting when stdout is a
terminal. Unspecified selections come from your saved preferences.

The fast-venv strategy requires uv on the machine that runs the script:
  ` + urls.UvInstall + `

Packaging guide: ` + urls.LayerPackaging,
	Example: `  # Default: python 3.13, venv+pip, boto3
  qdev generate

  # Target python 3.11 with uv and explicit dependencies
  qdev generate --python 3.11 --strategy uv --deps requests,flask

  # Read dependencies from a requirements file and save the script
  qdev generate --requirements requirements.txt -o build-layer.sh

  # Copy straight to the clipboard
  qdev generate --copy`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genPython, "python", "", "Python version (3.9-3.13)")
	generateCmd.Flags().StringVar(&genStrategy, "strategy", "", "Packaging strategy (legacy-venv/pip, fast-venv/uv)")
	generateCmd.Flags().StringSliceVar(&genDeps, "deps", nil, "Dependencies (comma separated)")
	generateCmd.Flags().StringVar(&genRequirements, "requirements", "", "Read dependencies from a requirements file")
	generateCmd.Flags().StringVar(&genName, "name", "", "Archive base name")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Save the script to a file")
	generateCmd.Flags().BoolVar(&genCopy, "copy", false, "Copy the script to the clipboard")
	generateCmd.Flags().BoolVar(&genHTML, "html", false, "Emit a standalone HTML page instead of plain text")
	generateCmd.Flags().BoolVar(&genPlain, "plain", false, "Disable syntax highlighting")
	generateCmd.Flags().BoolVar(&genLineNumbers, "line-numbers", false, "Show line numbers")
	generateCmd.Flags().StringVar(&genTheme, "theme", "", "Highlighting theme (default from preferences)")
	generateCmd.Flags().BoolVar(&genSaveDefaults, "save-defaults", false, "Persist these selections as the new defaults")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, pr := newConfig()

	if genPython != "" {
		if err := cfg.SelectRuntimeVersion(genPython); err != nil {
			return err
		}
	}
	if genStrategy != "" {
		s, err := layer.ParseStrategy(genStrategy)
		if err != nil {
			return err
		}
		if err := cfg.SelectStrategy(s); err != nil {
			return err
		}
	}
	if genRequirements != "" {
		data, err := os.ReadFile(genRequirements)
		if err != nil {
			return fmt.Errorf("failed to read requirements: %w", err)
		}
		cfg.SetDependencySpec(string(data))
	} else if len(genDeps) > 0 {
		cfg.SetDependencySpec(strings.Join(genDeps, "\n"))
	}
	if genName != "" {
		cfg.SetBaseName(genName)
	}

	snap := cfg.Snapshot()
	art := layer.Generate(snap)

	if genSaveDefaults {
		pr.Defaults.PythonVersion = snap.RuntimeVersion
		pr.Defaults.Strategy = snap.Strategy.String()
		pr.Defaults.BaseName = snap.BaseName
		if genTheme != "" {
			pr.Display.Theme = genTheme
		}
		if err := pr.Save(); err != nil {
			return fmt.Errorf("failed to save defaults: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Saved defaults")
	}

	theme := genTheme
	if theme == "" {
		theme = pr.Display.Theme
	}

	if genHTML {
		renderer := render.HTMLRenderer{Theme: theme, LineNumbers: genLineNumbers}
		page, err := renderer.RenderPage(art.SuggestedFilename, art.Text, render.Language)
		if err != nil {
			return err
		}
		if genOutput != "" {
			if err := os.WriteFile(genOutput, []byte(page), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", genOutput, err)
			}
			fmt.Fprintf(os.Stderr, "Saved HTML to %s\n", genOutput)
			return nil
		}
		fmt.Print(page)
		return nil
	}

	pipeline := render.NewPipeline(stdoutHighlighter(theme), render.SystemClipboard{}, render.DiskSaver{})
	pipeline.Present(art, genLineNumbers)
	fmt.Println(pipeline.Screen())

	if genOutput != "" {
		if err := pipeline.SaveToFile(genOutput); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved script to %s\n", genOutput)
	}
	if genCopy {
		if err := pipeline.CopyToClipboard(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Copied script to clipboard")
	}
	return nil
}

// highlightCmd renders an arbitrary source file with syntax coloring
var highlightCmd = &cobra.Command{
	Use:   "highlight <file>",
	Short: "Syntax-highlight a source file",
	Long: `Render a source file with syntax highlighting.

The language is detected from the filename and can be overridden with
--language. Output goes to the terminal by default; --html produces a
standalone dark-themed HTML page, and --browser opens that page directly.`,
	Example: `  # Highlight in the terminal
  qdev highlight script.py

  # Save a shareable HTML page
  qdev highlight script.py --html -o script.html

  # Open straight in the browser
  qdev highlight script.py --browser

  # Override detection for files with odd extensions
  qdev highlight build.txt --language bash`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlight,
}

func init() {
	highlightCmd.Flags().StringVarP(&hlOutput, "output", "o", "", "Save the rendered output to a file")
	highlightCmd.Flags().BoolVar(&hlHTML, "html", false, "Emit a standalone HTML page")
	highlightCmd.Flags().BoolVar(&hlBrowser, "browser", false, "Open the HTML page in the default browser")
	highlightCmd.Flags().StringVar(&hlLanguage, "language", "", "Override language detection")
	highlightCmd.Flags().BoolVar(&hlLineNumbers, "line-numbers", false, "Show line numbers")
	highlightCmd.Flags().StringVar(&hlTheme, "theme", "", "Highlighting theme (default from preferences)")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	path := args[0]
	pr := loadPrefs()

	theme := hlTheme
	if theme == "" {
		theme = pr.Display.Theme
	}
	opts := highlight.Options{
		Language:    hlLanguage,
		Theme:       theme,
		LineNumbers: hlLineNumbers,
	}

	if hlBrowser {
		tmpPath, err := highlight.FileToBrowser(path, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Opened %s in browser (%s)\n", path, tmpPath)
		return nil
	}

	var out string
	if hlHTML || hlOutput != "" {
		page, err := highlight.FileToHTML(path, opts)
		if err != nil {
			return err
		}
		out = page
	} else {
		text, err := highlight.FileToTerminal(path, opts)
		if err != nil {
			return err
		}
		out = text
	}

	if hlOutput != "" {
		if err := os.WriteFile(hlOutput, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", hlOutput, err)
		}
		fmt.Printf("Saved to %s\n", hlOutput)
		return nil
	}
	fmt.Print(out)
	return nil
}

// wizardCmd launches the interactive TUI wizard
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive script generator",
	Long: `Launch an interactive TUI for building layer packaging scripts.

Pick the python version and packaging strategy with the arrow keys, type the
dependency list and archive name, and watch the highlighted script update
live. Ctrl+Y copies the script, Ctrl+S saves it under a suggested filename.

This is the recommended way to generate scripts for most users.`,
	Example: `  # Launch the wizard
  qdev wizard
  # Or simply (wizard is default):
  qdev`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, pr := newConfig()
	pipeline := render.NewPipeline(
		render.TerminalHighlighter{Theme: pr.Display.Theme},
		render.SystemClipboard{},
		render.DiskSaver{},
	)
	return tui.Run(cfg, pipeline, pr.Display.LineNumbers, nil)
}

// previewCmd runs the wizard with a live browser preview attached
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Launch the wizard with a live browser preview",
	Long: `Launch the interactive wizard alongside a local HTTP server that shows
the generated script as a dark-themed HTML page. The page updates over a
WebSocket on every change, with no reload.

With --mdns the server is announced on the local network so other machines
can discover and open the preview.`,
	Example: `  # Start on a random local port and print the URL
  qdev preview

  # Pin the address and open the browser automatically
  qdev preview --addr 127.0.0.1:8099 --open

  # Share the preview on the LAN
  qdev preview --addr :8099 --mdns`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewAddr, "addr", "127.0.0.1:0", "Listen address for the preview server")
	previewCmd.Flags().BoolVar(&previewOpen, "open", false, "Open the preview in the default browser")
	previewCmd.Flags().BoolVar(&previewMDNS, "mdns", false, "Announce the preview over mDNS")
}

func runPreview(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, pr := newConfig()

	server := preview.NewServer(render.HTMLRenderer{Theme: pr.Display.Theme, LineNumbers: pr.Display.LineNumbers})
	url, err := server.Start(previewAddr)
	if err != nil {
		return fmt.Errorf("failed to start preview server: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	fmt.Printf("Preview available at %s\n", url)

	if previewMDNS {
		if err := server.Announce("qdev preview"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: mDNS announcement failed: %v\n", err)
			fmt.Fprintf(os.Stderr, "See %s\n", urls.TroubleshootingGuide)
		}
	}
	if previewOpen {
		if err := render.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	pipeline := render.NewPipeline(
		render.TerminalHighlighter{Theme: pr.Display.Theme},
		render.SystemClipboard{},
		render.DiskSaver{},
	)
	return tui.Run(cfg, pipeline, pr.Display.LineNumbers, server.Publish)
}

// newConfig builds a generator store seeded from saved preferences.
func newConfig() (*layer.Config, *prefs.Preferences) {
	pr := loadPrefs()
	cfg := layer.NewConfig()
	pr.ApplyTo(cfg)
	return cfg, pr
}

// loadPrefs loads saved preferences, falling back to defaults when the file
// is missing or unreadable.
func loadPrefs() *prefs.Preferences {
	pr, err := prefs.Load()
	if err != nil {
		return prefs.NewPreferences()
	}
	return pr
}

// stdoutHighlighter picks ANSI or plain rendering for stdout. Color only
// when stdout is a terminal and --plain was not given.
func stdoutHighlighter(theme string) render.Highlighter {
	if genPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return render.PlainHighlighter{}
	}
	return render.TerminalHighlighter{Theme: theme}
}

// initLogging initializes logging from the environment (silent by default).
// Set QDEV_LOG_LEVEL=debug to see detailed logs.
func initLogging() {
	if err := logging.InitializeFromEnv(); err != nil {
		// Ignore error, GetLogger will create fallback logger
		_ = err
	}
}
