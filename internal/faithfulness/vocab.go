// Package faithfulness validates that a restructured prompt adds nothing the
// original did not state: no technologies, no scope, no assumptions. The
// vocabularies below are fixed; matching is case-insensitive and token-bounded
// so short names never match inside longer words.
package faithfulness

// programmingLanguages trigger a critical violation when they appear in the
// generated text but not the original. "go" and "c" are deliberately absent:
// as bare tokens they collide with ordinary English ("go over the steps"),
// so only their unambiguous forms are listed.
var programmingLanguages = []string{
	"python", "javascript", "typescript", "java", "ruby", "rust",
	"php", "kotlin", "swift", "scala", "perl", "haskell", "golang",
	"elixir", "clojure", "fortran", "cobol", "lua", "dart",
}

// frameworks trigger a high violation when introduced.
var frameworks = []string{
	"react", "angular", "vue", "svelte", "django", "flask", "fastapi",
	"spring", "rails", "laravel", "express", "nextjs", "nuxt",
	"pytorch", "tensorflow", "numpy", "pandas", "jquery", "bootstrap",
	"tailwind",
}

// skillLevels signal an assumed audience the original never stated.
var skillLevels = []string{
	"beginner", "novice", "intermediate", "advanced", "junior", "senior",
}

// projectTypes signal an assumed project context.
var projectTypes = []string{
	"startup", "enterprise", "production", "prototype", "mvp",
	"hobby", "commercial", "greenfield", "legacy",
}

// environments trigger a medium violation when introduced.
var environments = []string{
	"docker", "kubernetes", "linux", "windows", "macos", "aws",
	"azure", "gcp", "heroku", "vercel", "serverless",
}

// featureVocab expands requirements when introduced; high severity.
var featureVocab = []string{
	"feature", "features", "functionality", "capability", "capabilities",
	"integration", "integrations",
}

// constraintVocab expands requirements when introduced; medium severity.
var constraintVocab = []string{
	"must", "constraint", "constraints", "requirement", "requirements",
	"mandatory", "shall", "compliance",
}
