package syntax

// Walk traverses a syntax tree depth-first, calling visit for every node
// before its children. If visit returns false, the children of that node
// are skipped.
func Walk(n Node, visit func(n Node, depth int) bool) {
	walk(n, 0, visit)
}

func walk(n Node, depth int, visit func(Node, int) bool) {
	if isNil(n) || !visit(n, depth) {
		return
	}
	switch n := n.(type) {
	case *LongFlag:
		walk(n.Argument, depth+1, visit)
	case *Optional:
		walk(n.Inner, depth+1, visit)
	case *Sequence:
		for _, ch := range n.Children {
			walk(ch, depth+1, visit)
		}
	case *Alternatives:
		for _, ch := range n.Children {
			walk(ch, depth+1, visit)
		}
	}
}

// Children returns the direct children of a node, in order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *LongFlag:
		if n.Argument != nil {
			return []Node{n.Argument}
		}
	case *Optional:
		if n.Inner != nil {
			return []Node{n.Inner}
		}
	case *Sequence:
		return n.Children
	case *Alternatives:
		return n.Children
	}
	return nil
}

// NonTerminals returns the names of all non-terminals referenced in a tree,
// in order of first appearance.
func NonTerminals(n Node) []string {
	var names []string
	seen := make(map[string]bool)
	Walk(n, func(n Node, _ int) bool {
		if nt, ok := n.(*NonTerminalRef); ok && !seen[nt.Name] {
			seen[nt.Name] = true
			names = append(names, nt.Name)
		}
		return true
	})
	return names
}

// Equal compares two syntax trees structurally. The raw lexeme of constant
// arguments does not take part in the comparison.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *Flag:
		y, ok := b.(*Flag)
		return ok && x.Name == y.Name
	case *LongFlag:
		y, ok := b.(*LongFlag)
		if !ok || x.Name != y.Name || x.HasArgument != y.HasArgument ||
			x.ArgumentOptional != y.ArgumentOptional {
			return false
		}
		return Equal(x.Argument, y.Argument)
	case *Optional:
		y, ok := b.(*Optional)
		return ok && x.IsList == y.IsList && Equal(x.Inner, y.Inner)
	case *Argument:
		y, ok := b.(*Argument)
		return ok && x.Name == y.Name && x.Type == y.Type && x.IsList == y.IsList
	case *NonTerminalRef:
		y, ok := b.(*NonTerminalRef)
		return ok && x.Name == y.Name && x.IsList == y.IsList
	case *Sequence:
		y, ok := b.(*Sequence)
		return ok && equalChildren(x.Children, y.Children)
	case *Alternatives:
		y, ok := b.(*Alternatives)
		return ok && equalChildren(x.Children, y.Children)
	}
	return false
}

func equalChildren(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// isNil checks for untyped and typed nil nodes.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch n := n.(type) {
	case *Flag:
		return n == nil
	case *LongFlag:
		return n == nil
	case *Optional:
		return n == nil
	case *Argument:
		return n == nil
	case *NonTerminalRef:
		return n == nil
	case *Sequence:
		return n == nil
	case *Alternatives:
		return n == nil
	}
	return false
}
