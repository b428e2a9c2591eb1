package compile

import "github.com/yaklabco/goqbc/pkg/qbsource"

// MacroTable maps macro names to expansion text. The table is shared by
// reference across a whole compilation unit, including nested includes,
// so a macro defined in an included file stays visible after the include
// returns. Redefinition overwrites the previous expansion.
type MacroTable map[string]string

// Define inserts or overwrites a macro. It returns true if a previous
// definition existed.
func (t MacroTable) Define(name, expansion string) bool {
	_, existed := t[name]
	t[name] = expansion
	return existed
}

// Lookup returns the expansion for name and whether it is defined.
func (t MacroTable) Lookup(name string) (string, bool) {
	expansion, ok := t[name]
	return expansion, ok
}

// IsDefined reports whether name is defined.
func (t MacroTable) IsDefined(name string) bool {
	_, ok := t[name]
	return ok
}

// Template is a named expansion body with a formal parameter list.
type Template struct {
	Name   string
	Params []string
	Body   string

	// Pos is where the template was defined, for diagnostics.
	Pos qbsource.Position
}

// TemplateTable maps template names to their definitions. Like MacroTable
// it is compilation-unit global and last definition wins.
type TemplateTable map[string]Template

// Define inserts or overwrites a template. It returns true if a previous
// definition existed.
func (t TemplateTable) Define(tmpl Template) bool {
	_, existed := t[tmpl.Name]
	t[tmpl.Name] = tmpl
	return existed
}

// Lookup returns the template for name and whether it is defined.
func (t TemplateTable) Lookup(name string) (Template, bool) {
	tmpl, ok := t[name]
	return tmpl, ok
}
