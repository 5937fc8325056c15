package keyword

// minKeywordLen is the shortest candidate kept by the filter pipeline.
// Anything shorter than three runes is too generic to discriminate.
const minKeywordLen = 3

// stopWords holds candidates excluded by policy: common English function
// words, programming keywords shared across C-like/Python/PHP syntax, and
// generic project-structure names that appear in nearly every repository.
// Compared after lowercasing.
var stopWords = map[string]bool{
	// English function words
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "this": true, "that": true, "with": true,
	"from": true, "they": true, "will": true, "would": true, "there": true,
	"their": true, "what": true, "about": true, "which": true, "when": true,
	"into": true, "them": true, "then": true, "than": true, "its": true,
	"also": true, "only": true, "other": true, "some": true, "such": true,
	"more": true, "most": true, "over": true, "very": true, "where": true,

	// Programming keywords (C-like / Python / PHP)
	"function": true, "const": true, "let": true, "var": true,
	"class": true, "def": true, "return": true, "import": true,
	"export": true, "default": true, "public": true, "private": true,
	"protected": true, "static": true, "void": true, "int": true,
	"string": true, "bool": true, "true": true, "false": true,
	"null": true, "none": true, "self": true, "new": true, "use": true,
	"namespace": true, "echo": true, "print": true, "elif": true,
	"else": true, "while": true, "break": true, "continue": true,
	"switch": true, "case": true, "try": true, "catch": true,
	"except": true, "finally": true, "throw": true, "raise": true,
	"async": true, "await": true, "yield": true, "lambda": true,
	"pass": true, "interface": true, "extends": true, "implements": true,
	"require": true, "module": true, "exports": true,

	// Generic project-structure names
	"src": true, "lib": true, "test": true, "tests": true, "spec": true,
	"index": true, "main": true, "app": true, "config": true,
	"dist": true, "build": true, "node": true, "modules": true,
	"vendor": true, "assets": true, "utils": true, "util": true,
	"tmp": true, "temp": true, "bin": true, "pkg": true,
}
