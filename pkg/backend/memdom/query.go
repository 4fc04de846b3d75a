package memdom

import "strings"

// selector is a single compound selector: tag, #id and .class parts.
type selector struct {
	tag     string
	id      string
	classes []string
}

// parseSelector parses "tag", "#id", ".class" and combinations such as
// "div#main.card". Combinators are not supported.
func parseSelector(s string) (selector, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " >+~[:,") {
		return selector{}, false
	}

	var sel selector
	i := 0
	for i < len(s) && s[i] != '#' && s[i] != '.' {
		i++
	}
	sel.tag = strings.ToLower(s[:i])

	for i < len(s) {
		mark := s[i]
		j := i + 1
		for j < len(s) && s[j] != '#' && s[j] != '.' {
			j++
		}
		part := s[i+1 : j]
		if part == "" {
			return selector{}, false
		}
		if mark == '#' {
			sel.id = part
		} else {
			sel.classes = append(sel.classes, part)
		}
		i = j
	}
	return sel, true
}

func (sel selector) matches(n *Node) bool {
	if n.Type != ElementNode {
		return false
	}
	if sel.tag != "" && sel.tag != n.Tag {
		return false
	}
	if sel.id != "" && n.attrs["id"] != sel.id {
		return false
	}
	if len(sel.classes) > 0 {
		have := n.classList()
		for _, want := range sel.classes {
			if !contains(have, want) {
				return false
			}
		}
	}
	return true
}

// find returns the first match in document order.
func find(root *Node, sel selector) *Node {
	if sel.matches(root) {
		return root
	}
	for _, c := range root.children {
		if n := find(c, sel); n != nil {
			return n
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
