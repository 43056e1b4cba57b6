// Package xpath builds the canonical path expressions that identify
// document nodes in diagnostics and equality checks.
//
// Element paths have the form:
//
//	Tag[@attr1="v1" and not(@attr2) and @attr3="v3"]
//
// and full paths join element paths from the document root with "/".
package xpath

import "strings"

// Pred is a single attribute predicate. An empty Pred renders nothing.
type Pred string

// Eq matches attribute name against value. An empty value matches nodes
// that do not carry the attribute.
func Eq(name, value string) Pred {
	if value == "" {
		return Pred("not(@" + name + ")")
	}
	return Pred("@" + name + `="` + value + `"`)
}

// EqIfSet is like Eq but drops the predicate when value is empty.
func EqIfSet(name, value string) Pred {
	if value == "" {
		return ""
	}
	return Eq(name, value)
}

// Element renders tag with the non-empty predicates joined by " and ".
func Element(tag string, preds ...Pred) string {
	var sb strings.Builder
	sb.WriteString(tag)

	n := 0
	for _, p := range preds {
		if p == "" {
			continue
		}
		if n == 0 {
			sb.WriteString("[")
		} else {
			sb.WriteString(" and ")
		}
		sb.WriteString(string(p))
		n++
	}
	if n > 0 {
		sb.WriteString("]")
	}
	return sb.String()
}

// Join appends element paths to parent with "/" separators.
// An empty parent yields a relative path.
func Join(parent string, elems ...string) string {
	var sb strings.Builder
	sb.WriteString(parent)
	for _, e := range elems {
		if e == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("/")
		}
		sb.WriteString(e)
	}
	return sb.String()
}
