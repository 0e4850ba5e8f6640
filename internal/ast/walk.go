package ast

// Inspect traverses the tree rooted at node in depth-first order, calling f for
// each node. If f returns false, the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Function:
		inspectStmts(n.Body, f)
	case *Block:
		inspectStmts(n.Stmts, f)
	case *If:
		Inspect(n.Cond, f)
		inspectStmts(n.Body, f)
		if n.Else != nil {
			Inspect(n.Else, f)
		}
	case *Let:
		Inspect(n.Value, f)
	case *Assign:
		Inspect(n.Value, f)
	case *Call:
		for _, arg := range n.Args {
			Inspect(arg, f)
		}
	case *Prefix:
		Inspect(n.Operand, f)
	case *Postfix:
		Inspect(n.Operand, f)
	case *Infix:
		Inspect(n.LHS, f)
		Inspect(n.RHS, f)
	}
}

func inspectStmts(stmts []Stmt, f func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, f)
	}
}

// HasErrors reports whether any ErrorItem or ErrorStmt appears in items.
func HasErrors(items []Item) bool {
	found := false
	for _, item := range items {
		Inspect(item, func(n Node) bool {
			switch n.(type) {
			case *ErrorItem, *ErrorStmt:
				found = true
			}
			return !found
		})
	}
	return found
}
