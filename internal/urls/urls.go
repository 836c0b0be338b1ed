package urls

// Documentation URLs for guides and troubleshooting
// All URLs point to the documentation site at https://nathanielng.github.io/qdev/

// LayerPackaging is the guide for packaging python dependencies
// into a zip archive and publishing it as a runtime layer.
const LayerPackaging = "https://nathanielng.github.io/qdev/layers/packaging/"

// UvInstall covers installing the uv package manager, which the
// fast-venv strategy requires on the machine that runs the script.
const UvInstall = "https://docs.astral.sh/uv/getting-started/installation/"

// PipVenv is the upstream reference for the venv plus pip workflow
// used by the legacy-venv strategy.
const PipVenv = "https://docs.python.org/3/library/venv.html"

// TroubleshootingGuide provides solutions to common issues
// encountered when generated scripts fail on the target machine.
const TroubleshootingGuide = "https://nathanielng.github.io/qdev/layers/troubleshooting/"

// GettingStarted is the quick start guide for new users.
const GettingStarted = "https://nathanielng.github.io/qdev/getting-started/"
