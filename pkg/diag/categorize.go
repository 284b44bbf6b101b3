package diag

import "strings"

// Category is a coarse classification of a compiler diagnostic.
type Category string

const (
	CategoryTypeMismatch      Category = "type-mismatch"
	CategoryNullUndefined     Category = "null-undefined"
	CategoryMissingProperty   Category = "missing-property"
	CategoryUnknownIdentifier Category = "unknown-identifier"
	CategorySyntaxError       Category = "syntax-error"
	CategoryImportExport      Category = "import-export"
	CategoryInvalidArguments  Category = "invalid-arguments"
	CategoryFunctionReturn    Category = "function-return"
	CategoryObjectProperty    Category = "object-property"
	CategoryAsyncAwait        Category = "async-await"
	CategoryOther             Category = "other"
)

// codeCategories maps well-known compiler codes to categories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var codeCategories = map[string]Category{
	"TS2322": CategoryTypeMismatch,
	"TS2344": CategoryTypeMismatch,
	"TS2352": CategoryTypeMismatch,
	"TS2367": CategoryTypeMismatch,

	"TS2531":  CategoryNullUndefined,
	"TS2532":  CategoryNullUndefined,
	"TS2533":  CategoryNullUndefined,
	"TS2722":  CategoryNullUndefined,
	"TS18047": CategoryNullUndefined,
	"TS18048": CategoryNullUndefined,

	"TS2339": CategoryMissingProperty,
	"TS2551": CategoryMissingProperty,

	"TS2304": CategoryUnknownIdentifier,
	"TS2552": CategoryUnknownIdentifier,
	"TS2662": CategoryUnknownIdentifier,

	"TS1002": CategorySyntaxError,
	"TS1005": CategorySyntaxError,
	"TS1109": CategorySyntaxError,
	"TS1128": CategorySyntaxError,
	"TS1161": CategorySyntaxError,

	"TS2305": CategoryImportExport,
	"TS2306": CategoryImportExport,
	"TS2307": CategoryImportExport,
	"TS2614": CategoryImportExport,
	"TS2724": CategoryImportExport,
	"TS6133": CategoryImportExport,
	"TS6192": CategoryImportExport,
	"TS6196": CategoryImportExport,

	"TS2345": CategoryInvalidArguments,
	"TS2554": CategoryInvalidArguments,
	"TS2555": CategoryInvalidArguments,
	"TS2556": CategoryInvalidArguments,

	"TS2355": CategoryFunctionReturn,
	"TS7030": CategoryFunctionReturn,

	"TS2353": CategoryObjectProperty,
	"TS2561": CategoryObjectProperty,
	"TS2739": CategoryObjectProperty,
	"TS2741": CategoryObjectProperty,

	"TS1308":  CategoryAsyncAwait,
	"TS2794":  CategoryAsyncAwait,
	"TS80007": CategoryAsyncAwait,
}

// Categorize maps a diagnostic's code and message to a fixed category.
// It is code-first: unrecognized codes fall back to message substring
// matching. Pure function.
func Categorize(code, message string) Category {
	if cat, ok := codeCategories[code]; ok {
		return cat
	}

	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "null") || strings.Contains(msg, "undefined"):
		return CategoryNullUndefined
	case strings.Contains(msg, "does not exist on type"):
		return CategoryMissingProperty
	case strings.Contains(msg, "cannot find module") || strings.Contains(msg, "exported member") ||
		strings.Contains(msg, "never used") || strings.Contains(msg, "never read"):
		return CategoryImportExport
	case strings.Contains(msg, "cannot find name"):
		return CategoryUnknownIdentifier
	case strings.Contains(msg, "argument"):
		return CategoryInvalidArguments
	case strings.Contains(msg, "await") || strings.Contains(msg, "async"):
		return CategoryAsyncAwait
	case strings.Contains(msg, "return"):
		return CategoryFunctionReturn
	case strings.Contains(msg, "not assignable"):
		return CategoryTypeMismatch
	case strings.Contains(msg, "expected") && strings.Contains(msg, "'"):
		return CategorySyntaxError
	default:
		return CategoryOther
	}
}

// suggestions is the fixed advisory table returned by Suggest. These
// hints are for humans reading the report and never drive automated
// behavior.
//
//nolint:gochecknoglobals // Read-only lookup table.
var suggestions = map[Category][]string{
	CategoryTypeMismatch: {
		"Check that the assigned value's type matches the declared type.",
		"Consider narrowing the type with a type guard before the assignment.",
	},
	CategoryNullUndefined: {
		"Guard the value with an explicit null/undefined check.",
		"Use optional chaining (?.) or nullish coalescing (??) where appropriate.",
	},
	CategoryMissingProperty: {
		"Verify the property name against the type definition.",
		"If the property is new, add it to the interface or type alias.",
	},
	CategoryUnknownIdentifier: {
		"Check the identifier for typos.",
		"Add the missing import or declaration.",
	},
	CategorySyntaxError: {
		"Check for unbalanced braces, parentheses, or missing punctuation near the reported position.",
	},
	CategoryImportExport: {
		"Verify the module specifier and that the package is installed.",
		"Remove unused imports, or check for duplicate import statements.",
	},
	CategoryInvalidArguments: {
		"Compare the call site against the function signature's arity and parameter types.",
	},
	CategoryFunctionReturn: {
		"Ensure every code path returns a value of the declared return type.",
	},
	CategoryObjectProperty: {
		"Remove unknown properties from the object literal, or widen the target type.",
	},
	CategoryAsyncAwait: {
		"Mark the enclosing function async, or remove the stray await.",
	},
	CategoryOther: {
		"Read the full compiler message; this diagnostic has no specific guidance.",
	},
}

// Suggest returns fixed, non-binding remediation hints for a category.
func Suggest(cat Category) []string {
	if hints, ok := suggestions[cat]; ok {
		return hints
	}
	return suggestions[CategoryOther]
}
