// Package tokenizer converts LaTeX text input into a stream of tokens.
//
// The package can perform macro expansion and has built-in knowledge
// about the macros and environments defined by different LaTeX
// classes and packages, including the commands used to write help
// documents (glossary references, menus, icons, key strokes and
// message templates).  Macro arguments are tokenized recursively;
// key=value list arguments are split into fields.
package tokenizer
