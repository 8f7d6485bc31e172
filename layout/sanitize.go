package layout

import "regexp"

// Layout source may import the host-provided libraries (the UI library, the
// schema library, the charting library) or private path aliases. The
// execution scope supplies those bindings directly, so the declarations are
// stripped before transpilation. Pattern-based on purpose, not a parser: the
// accepted convention is plain top-level import/export statements.
var (
	importFromPattern = regexp.MustCompile(`(?s)import\s+[^;'"]*?from\s*['"](?:react|react-dom|zod|recharts|@/[^'"]*)['"]\s*;?`)
	importBarePattern = regexp.MustCompile(`import\s*['"](?:react|react-dom|zod|recharts|@/[^'"]*)['"]\s*;?`)

	// The contract is retrieved by variable name, not via module exports.
	exportDefaultPattern = regexp.MustCompile(`(?m)export\s+default\s+[\w$]+\s*;?\s*$`)
	exportDeclPattern    = regexp.MustCompile(`\bexport\s+(async\s+function|const|let|var|function|class)\b`)
)

func sanitizeSource(src string) string {
	src = importFromPattern.ReplaceAllString(src, "")
	src = importBarePattern.ReplaceAllString(src, "")
	src = exportDefaultPattern.ReplaceAllString(src, "")
	src = exportDeclPattern.ReplaceAllString(src, "$1")

	return src
}
