package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Validation Errors (E100-E109)
	// ============================================

	"E100": {
		Category:   CategoryValidation,
		Message:    "Invalid project name",
		Detail:     "The project name is used as the npm package name and as the default directory name.",
		Suggestion: "Use lowercase letters, numbers, and hyphens (e.g. my-app)",
	},
	"E101": {
		Category:   CategoryValidation,
		Message:    "Target directory is not empty",
		Detail:     "Files in the target directory that are part of the generated project will be overwritten.",
		Suggestion: "Pass --yes to overwrite, or choose a different --directory",
	},

	// ============================================
	// Filesystem Errors (E110-E119)
	// ============================================

	"E110": {
		Category:   CategoryFilesystem,
		Message:    "Failed to create directory",
		Suggestion: "Check that the parent directory exists and is writable",
	},
	"E111": {
		Category:   CategoryFilesystem,
		Message:    "Failed to write file",
		Suggestion: "Check permissions and free space in the target directory",
	},

	// ============================================
	// Template Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryTemplate,
		Message:  "No template for manifest entry",
		Detail:   "The entry has neither a bundled asset nor a content generator. The file manifest and the template set are out of sync.",
	},
	"E121": {
		Category:   CategoryTemplate,
		Message:    "Failed to read bundled template",
		Detail:     "The template exists but could not be read.",
		Suggestion: "Check the permissions of the templates directory or bucket",
	},
	"E122": {
		Category: CategoryTemplate,
		Message:  "Failed to render generated file",
	},

	// ============================================
	// Provision Errors (E130-E139)
	// ============================================

	"E130": {
		Category:   CategoryProvision,
		Message:    "Dependency installation failed",
		Detail:     "A project without installed dependencies cannot be started.",
		Suggestion: "Fix the error above, then run the install command inside the project directory",
	},
	"E131": {
		Category:   CategoryProvision,
		Message:    "Package manager not found",
		Suggestion: "Install Node.js or set --package-manager to an executable on PATH",
	},

	// ============================================
	// Config Errors (E140-E149)
	// ============================================

	"E140": {
		Category:   CategoryConfig,
		Message:    "Failed to load configuration",
		Suggestion: "Check the syntax of create-webapp.yaml",
	},
	"E141": {
		Category:   CategoryConfig,
		Message:    "Invalid template source",
		Suggestion: "Use the form s3://bucket/prefix",
	},
}

// Lookup returns the registered template for an error code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
