package ast

import "spark-lang/internal/diag"

// ToMap converts an AST node to a map suitable for JSON or YAML serialization.
// This produces a tagged-union structure: every node has a "kind" field.
func ToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	// ---- Items ----
	case *Struct:
		return m("Struct", "name", TypeToMap(n.Name), "members", fieldSlice(n.Members))
	case *Function:
		return m("Function", "name", n.Name, "params", fieldSlice(n.Params), "body", stmtSlice(n.Body))
	case *ErrorItem:
		return m("ErrorItem", "error", diagToMap(n.Err))

	// ---- Statements ----
	case *Let:
		return m("Let", "name", n.Name, "value", ToMap(n.Value))
	case *Assign:
		return m("Assign", "name", n.Name, "value", ToMap(n.Value))
	case *If:
		result := m("If", "condition", ToMap(n.Cond), "body", stmtSlice(n.Body))
		if n.Else != nil {
			result["else"] = ToMap(n.Else)
		}
		return result
	case *Block:
		return m("Block", "stmts", stmtSlice(n.Stmts))
	case *ErrorStmt:
		return m("ErrorStmt", "error", diagToMap(n.Err))

	// ---- Expressions ----
	case *Literal:
		switch v := n.Value.(type) {
		case IntLit:
			return m("Literal", "type", "int", "value", uint64(v))
		case FloatLit:
			return m("Literal", "type", "float", "value", float64(v))
		case StrLit:
			return m("Literal", "type", "string", "value", string(v))
		}
		return m("Literal")
	case *Ident:
		return m("Ident", "name", n.Name)
	case *Call:
		return m("Call", "name", n.Name, "args", exprSlice(n.Args))
	case *Prefix:
		return m("Prefix", "op", n.Op.String(), "operand", ToMap(n.Operand))
	case *Infix:
		return m("Infix", "op", n.Op.String(), "lhs", ToMap(n.LHS), "rhs", ToMap(n.RHS))
	case *Postfix:
		return m("Postfix", "op", n.Op.String(), "operand", ToMap(n.Operand))

	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

// ItemsToMap converts a parsed file to a tagged map.
func ItemsToMap(items []Item) map[string]interface{} {
	result := make([]interface{}, len(items))
	for i, item := range items {
		result[i] = ToMap(item)
	}
	return m("File", "items", result)
}

// TypeToMap converts a type reference to a tagged map.
func TypeToMap(t Type) map[string]interface{} {
	generics := make([]interface{}, len(t.Generics))
	for i, g := range t.Generics {
		generics[i] = TypeToMap(g)
	}
	return m("Type", "name", t.Name, "generics", generics)
}

// ---- helpers ----

// m builds a map with kind and extra key-value pairs.
func m(kind string, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func diagToMap(d diag.Diagnostic) map[string]interface{} {
	return map[string]interface{}{
		"code":    d.Code,
		"message": d.Message,
		"span": map[string]interface{}{
			"start": d.Span.Start,
			"end":   d.Span.End,
		},
	}
}

func fieldSlice(fields []Field) []interface{} {
	result := make([]interface{}, len(fields))
	for i, f := range fields {
		result[i] = map[string]interface{}{
			"name": f.Name,
			"type": TypeToMap(f.Type),
		}
	}
	return result
}

func stmtSlice(stmts []Stmt) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = ToMap(s)
	}
	return result
}

func exprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = ToMap(e)
	}
	return result
}
