package emitter

import (
	"strings"
)

type programOptions struct {
	indent   string
	includes []string
}

// Option configures EmitProgram.
type Option func(*programOptions)

// WithIndent sets the string used for one level of indentation.
func WithIndent(indent string) Option {
	return func(o *programOptions) { o.indent = indent }
}

// WithIncludes replaces the default <stdio.h> include list.
func WithIncludes(headers ...string) Option {
	return func(o *programOptions) { o.includes = headers }
}

// EmitProgram wraps a C expression statement in a main function that
// returns 0.
func EmitProgram(stmt string, opts ...Option) string {
	o := programOptions{indent: "    ", includes: []string{"stdio.h"}}
	for _, opt := range opts {
		opt(&o)
	}

	var b strings.Builder
	for _, h := range o.includes {
		b.WriteString("#include <" + h + ">\n")
	}
	if len(o.includes) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString("int main() {\n")
	b.WriteString(stmt + ";\n")
	b.WriteString("return 0;\n")
	b.WriteString("}\n")

	return Indent(b.String(), o.indent)
}

// Indent re-indents C source by brace depth. A line is dedented by the
// closing braces it contains and the lines after it are indented by its
// opening braces. Blank lines stay empty.
func Indent(src, indent string) string {
	var b strings.Builder
	depth := 0
	for _, line := range strings.Split(strings.TrimRight(src, "\n"), "\n") {
		line = strings.TrimSpace(line)
		depth -= strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}
		if line != "" {
			b.WriteString(strings.Repeat(indent, depth))
			b.WriteString(line)
		}
		b.WriteByte('\n')
		depth += strings.Count(line, "{")
	}
	return b.String()
}
