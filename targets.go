package scopeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TargetTable maps a language key to the node kinds treated as scopes for
// that language. The table is data, not dispatch: adding a language is one
// entry. Lookups of unknown keys return nil — absence of scope annotation
// for an unsupported language is expected, not an error.
type TargetTable map[string][]string

// For returns the scope node kinds registered for the language key.
func (t TargetTable) For(language string) []string {
	return t[language]
}

// Merge overlays other onto t. A language present in other replaces its
// default kind list wholesale, so users can both extend and prune.
func (t TargetTable) Merge(other TargetTable) {
	for language, kinds := range other {
		t[language] = kinds
	}
}

// DefaultTargets returns the built-in scope table for the bundled grammars.
// Kind names are grammar vocabulary and differ per language (Python's
// if_statement vs Rust's if_expression).
func DefaultTargets() TargetTable {
	return TargetTable{
		"go": {
			"function_declaration", "method_declaration", "func_literal",
			"if_statement", "for_statement",
			"expression_switch_statement", "type_switch_statement",
			"select_statement",
		},
		"python": {
			"function_definition", "class_definition",
			"if_statement", "for_statement", "while_statement",
			"with_statement", "try_statement", "match_statement",
			"dictionary",
		},
		"rust": {
			"function_item", "impl_item", "trait_item", "mod_item",
			"struct_item", "enum_item",
			"if_expression", "for_expression", "while_expression",
			"loop_expression", "match_expression",
		},
		"javascript": {
			"function_declaration", "arrow_function", "method_definition",
			"class_declaration",
			"if_statement", "for_statement", "for_in_statement",
			"while_statement", "switch_statement", "try_statement",
			"object",
		},
		"typescript": {
			"function_declaration", "arrow_function", "method_definition",
			"class_declaration", "interface_declaration", "enum_declaration",
			"if_statement", "for_statement", "for_in_statement",
			"while_statement", "switch_statement", "try_statement",
			"object",
		},
		"c": {
			"function_definition",
			"if_statement", "for_statement", "while_statement",
			"switch_statement",
			"struct_specifier", "enum_specifier", "union_specifier",
		},
		"cpp": {
			"function_definition", "lambda_expression",
			"if_statement", "for_statement", "while_statement",
			"switch_statement",
			"class_specifier", "struct_specifier", "namespace_definition",
		},
		"java": {
			"class_declaration", "interface_declaration", "enum_declaration",
			"method_declaration", "constructor_declaration",
			"if_statement", "for_statement", "enhanced_for_statement",
			"while_statement", "switch_expression", "try_statement",
		},
		"ruby": {
			"method", "singleton_method", "class", "module",
			"if", "unless", "while", "until", "for", "case",
			"do_block", "block",
		},
		"php": {
			"function_definition", "method_declaration", "class_declaration",
			"interface_declaration",
			"if_statement", "for_statement", "foreach_statement",
			"while_statement", "switch_statement", "try_statement",
		},
	}
}

// ParseTargets decodes a YAML target table of the form:
//
//	go:
//	  - function_declaration
//	  - if_statement
//	python: [function_definition, class_definition]
func ParseTargets(data []byte) (TargetTable, error) {
	var t TargetTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("scopeline: parsing target table: %w", err)
	}
	return t, nil
}

// LoadTargets reads a YAML target table from path.
func LoadTargets(path string) (TargetTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scopeline: reading target table %s: %w", path, err)
	}
	return ParseTargets(data)
}
