package sdl

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/sync/errgroup"

	"github.com/welevelacademy/prisma"
)

var sdlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Float", Pattern: `[-+]?\d+\.\d+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Punct", Pattern: `[@{}()\[\]:!,.]`},
	{Name: "Whitespace", Pattern: `[ \r\n\t]+`},
})

var parser = participle.MustBuild[Datamodel](
	participle.Lexer(sdlLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

// Parse parses a single SDL source. The filename is recorded in every
// position the AST carries. On failure it returns a *prisma.SyntaxError.
func Parse(src Source) (*File, error) {
	dm, err := parser.ParseString(src.Name, src.Text)
	if err != nil {
		return nil, syntaxError(src.Name, err)
	}
	return &File{Name: src.Name, Datamodel: dm}, nil
}

// ParseFiles parses all sources of one service and returns the files in the
// order the sources were given. Files are independent, so they are parsed in
// parallel; the merge into one logical schema happens downstream, where type
// names must be globally unique. All syntax errors are reported, not only
// the first one.
func ParseFiles(sources []Source) ([]*File, error) {
	files := make([]*File, len(sources))
	errs := make([]error, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			files[i], errs[i] = Parse(src)
			return nil
		})
	}
	_ = g.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return files, nil
}

// syntaxError converts a participle error into the diagnostic taxonomy.
func syntaxError(filename string, err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &prisma.SyntaxError{
			Pos:     prisma.Position{File: filename, Line: pos.Line, Column: pos.Column},
			Message: perr.Message(),
		}
	}
	return &prisma.SyntaxError{
		Pos:     prisma.Position{File: filename},
		Message: err.Error(),
	}
}
