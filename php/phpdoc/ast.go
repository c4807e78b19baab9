// Package phpdoc provides a parser for PHPDoc blocks, the text of
// DocumentComment tokens.
package phpdoc

// Node is the interface implemented by all PHPDoc nodes.
type Node interface {
	node()
}

// DocBlock represents a complete doc comment.
type DocBlock struct {
	Summary     []Node // First paragraph or sentence
	Description []Node // Remaining free text
	Tags        []Node // Tags like @param, @return, etc.
}

func (DocBlock) node() {}

// Deprecated reports whether the block carries a @deprecated tag.
func (d *DocBlock) Deprecated() bool {
	for _, tag := range d.Tags {
		if _, ok := tag.(Deprecated); ok {
			return true
		}
	}
	return false
}

// Text represents plain text content.
type Text struct {
	Content string
}

func (Text) node() {}

// InlineTag represents an inline tag such as {@link ...}, {@see ...} or
// {@inheritDoc}.
type InlineTag struct {
	Name        string
	Reference   string // Empty for tags that take none
	Description []Node
}

func (InlineTag) node() {}

// Param represents a @param tag.
type Param struct {
	Type        string // Empty when the tag names only the variable
	Name        string // Including the leading $
	ByRef       bool
	Variadic    bool
	Description []Node
}

func (Param) node() {}

// Return represents a @return tag.
type Return struct {
	Type        string
	Description []Node
}

func (Return) node() {}

// Var represents a @var tag.
type Var struct {
	Type        string
	Name        string // Optional
	Description []Node
}

func (Var) node() {}

// Throws represents a @throws tag.
type Throws struct {
	Type        string
	Description []Node
}

func (Throws) node() {}

// PropertyAccess tells which of @property, @property-read and
// @property-write declared a magic property.
type PropertyAccess int

const (
	ReadWrite PropertyAccess = iota
	ReadOnly
	WriteOnly
)

// Property represents a @property, @property-read or @property-write tag.
type Property struct {
	Type        string
	Name        string
	Access      PropertyAccess
	Description []Node
}

func (Property) node() {}

// Method represents a @method tag.
type Method struct {
	Static      bool
	ReturnType  string // Empty when omitted
	Name        string
	Parameters  string // Raw text between the parentheses
	Description []Node
}

func (Method) node() {}

// Deprecated represents a @deprecated tag.
type Deprecated struct {
	Version     string // Optional
	Description []Node
}

func (Deprecated) node() {}

// See represents a @see tag.
type See struct {
	Reference   string
	Description []Node
}

func (See) node() {}

// UnknownTag represents any other tag, including vendor tags such as
// @psalm-param or annotations such as @ORM\Column.
type UnknownTag struct {
	Name    string
	Content []Node
}

func (UnknownTag) node() {}
