package phpdoc

import (
	"strings"
)

// Format renders a DocBlock as readable plain text: the summary, the
// description and one line per tag.
func Format(doc *DocBlock) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(FormatText(doc.Summary))
	if len(doc.Description) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(FormatText(doc.Description))
	}

	if len(doc.Tags) > 0 && sb.Len() > 0 {
		sb.WriteString("\n")
	}
	for _, tag := range doc.Tags {
		sb.WriteString("\n")
		sb.WriteString(FormatTag(tag))
	}

	return strings.TrimSpace(sb.String())
}

// FormatText renders text nodes, replacing inline tags by their
// description or reference.
func FormatText(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case Text:
			sb.WriteString(n.Content)
		case InlineTag:
			switch {
			case len(n.Description) > 0:
				sb.WriteString(FormatText(n.Description))
			case n.Reference != "":
				sb.WriteString(n.Reference)
			default:
				sb.WriteString("{@" + n.Name + "}")
			}
		}
	}
	return sb.String()
}

// FormatTag renders a single tag the way it is written in source.
func FormatTag(node Node) string {
	var parts []string
	add := func(s ...string) {
		for _, part := range s {
			if part != "" {
				parts = append(parts, part)
			}
		}
	}

	switch n := node.(type) {
	case Param:
		name := n.Name
		if n.Variadic {
			name = "..." + name
		}
		if n.ByRef {
			name = "&" + name
		}
		add("@param", n.Type, name, FormatText(n.Description))
	case Return:
		add("@return", n.Type, FormatText(n.Description))
	case Var:
		add("@var", n.Type, n.Name, FormatText(n.Description))
	case Throws:
		add("@throws", n.Type, FormatText(n.Description))
	case Property:
		tag := "@property"
		switch n.Access {
		case ReadOnly:
			tag += "-read"
		case WriteOnly:
			tag += "-write"
		}
		add(tag, n.Type, n.Name, FormatText(n.Description))
	case Method:
		add("@method")
		if n.Static {
			add("static")
		}
		add(n.ReturnType, n.Name+"("+n.Parameters+")", FormatText(n.Description))
	case Deprecated:
		add("@deprecated", n.Version, FormatText(n.Description))
	case See:
		add("@see", n.Reference, FormatText(n.Description))
	case UnknownTag:
		add("@"+n.Name, FormatText(n.Content))
	}
	return strings.Join(parts, " ")
}
