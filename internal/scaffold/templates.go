package scaffold

// Starter file contents written by Scaffold. The Makefile recipe lines use
// real tabs; editors configured to expand tabs will break them.

const makefileTemplate = `.DEFAULT_GOAL := help

.PHONY: help
help: ## Show available targets
	@grep -E '^[a-zA-Z_-]+:.*?## ' $(MAKEFILE_LIST) | awk 'BEGIN {FS = ":.*?## "}; {printf "%-12s %s\n", $$1, $$2}'

.PHONY: dev
dev: ## Start the dev server and supporting processes
	devstarter serve

.PHONY: status
status: ## Show dev server status
	devstarter status

.PHONY: check
check: ## Validate the edit-check configuration
	devstarter config validate

.PHONY: test
test: ## Run the test suite
	@echo "add your test command to the Makefile"

.PHONY: lint
lint: ## Run linters
	@echo "add your lint command to the Makefile"
`

const procfileTemplate = `web: devstarter serve --port 8000
`

const envTemplate = `# Copy to .env and adjust for your machine. Never commit .env.
PORT=8000
APP_ENV=development
LOG_LEVEL=info
`

// Per-project-type check configurations. {file} expands to the edited path,
// {dir} to its containing directory.

const goCheckConfig = `# Checks run after Claude Code edits a matching file.
# Patterns are shell globs matched against the path or its basename.
settings:
  timeout: 30s
checks:
  - name: go-fmt
    patterns: ["*.go"]
    command: "gofmt -l {file}"
  - name: go-vet
    patterns: ["*.go"]
    command: "go vet ./..."
`

const nodeCheckConfig = `# Checks run after Claude Code edits a matching file.
# Patterns are shell globs matched against the path or its basename.
settings:
  timeout: 60s
checks:
  - name: eslint
    patterns: ["*.ts", "*.tsx", "*.js", "*.jsx"]
    command: "npx eslint {file}"
  - name: prettier
    patterns: ["*.ts", "*.tsx", "*.js", "*.jsx", "*.css", "*.json"]
    command: "npx prettier --check {file}"
  - name: typecheck
    patterns: ["*.ts", "*.tsx"]
    command: "npx tsc --noEmit"
    enabled: false
`

const pythonCheckConfig = `# Checks run after Claude Code edits a matching file.
# Patterns are shell globs matched against the path or its basename.
settings:
  timeout: 30s
checks:
  - name: ruff-lint
    patterns: ["*.py"]
    command: "ruff check {file}"
  - name: ruff-format
    patterns: ["*.py"]
    command: "ruff format --check {file}"
`

const genericCheckConfig = `# Checks run after Claude Code edits a matching file.
# Patterns are shell globs matched against the path or its basename.
# No project type was detected; the sample rule below is disabled.
checks:
  - name: example
    patterns: ["*.txt"]
    command: "echo edited {file}"
    enabled: false
`

// checkConfigFor returns the check configuration for a project type.
func checkConfigFor(ptype ProjectType) string {
	switch ptype {
	case ProjectGo:
		return goCheckConfig
	case ProjectNode:
		return nodeCheckConfig
	case ProjectPython:
		return pythonCheckConfig
	default:
		return genericCheckConfig
	}
}
