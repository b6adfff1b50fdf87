// Package lower turns tree-sitter syntax trees into the symbolic values the
// resolver rewrites. Lowering is deliberately shallow: literals, string
// concatenation, conditionals, calls and member accesses get precise shapes,
// everything else becomes Unknown so the resolver stays sound.
package lower

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/e-santo/modtrace/internal/report"
	"github.com/e-santo/modtrace/internal/value"
)

// Expr is one lowered candidate expression with its source location.
type Expr struct {
	Value    value.Value
	Location report.Location
}

// File lowers every call expression in the tree. Calls nested inside other
// calls are lowered both standalone and as part of the outer expression;
// consumers deduplicate, which keeps calls inside callback bodies visible.
func File(tree *sitter.Tree, content []byte, relPath string) []Expr {
	root := tree.RootNode()
	bindings := collectBindings(root, content)

	exprs := make([]Expr, 0)
	walkNode(root, func(node *sitter.Node) {
		if node.Type() != "call_expression" {
			return
		}
		exprs = append(exprs, Expr{
			Value: lowerExpression(node, content, bindings),
			Location: report.Location{
				File:   relPath,
				Line:   int(node.StartPoint().Row) + 1,
				Column: int(node.StartPoint().Column) + 1,
			},
		})
	})
	return exprs
}

func lowerExpression(node *sitter.Node, content []byte, bindings map[string]value.Value) value.Value {
	if node == nil {
		return value.NewUnknown(nil, "missing expression")
	}

	switch node.Type() {
	case "string":
		text, ok := extractStringLiteral(node, content)
		if !ok {
			return value.NewUnknown(nil, "unreadable string literal")
		}
		return value.Str(text)
	case "template_string":
		return lowerTemplateString(node, content, bindings)
	case "number":
		num, err := strconv.ParseFloat(nodeText(node, content), 64)
		if err != nil {
			return value.NewUnknown(nil, "unreadable number literal")
		}
		return value.Number(num)
	case "true":
		return value.Boolean(true)
	case "false":
		return value.Boolean(false)
	case "identifier":
		return lowerIdentifier(nodeText(node, content), bindings)
	case "parenthesized_expression":
		inner := firstNamedChild(node)
		return lowerExpression(inner, content, bindings)
	case "binary_expression":
		return lowerBinaryExpression(node, content, bindings)
	case "ternary_expression":
		return lowerTernaryExpression(node, content, bindings)
	case "member_expression":
		object := lowerExpression(node.ChildByFieldName("object"), content, bindings)
		property := lowerPropertyName(node.ChildByFieldName("property"), content)
		return value.NewMember(object, property)
	case "subscript_expression":
		object := lowerExpression(node.ChildByFieldName("object"), content, bindings)
		index := lowerExpression(node.ChildByFieldName("index"), content, bindings)
		return value.NewMember(object, index)
	case "call_expression":
		return lowerCallExpression(node, content, bindings)
	default:
		return value.NewUnknown(nil, "unsupported expression: "+node.Type())
	}
}

func lowerIdentifier(name string, bindings map[string]value.Value) value.Value {
	if name == "require" {
		return value.NewWellKnownFunction(value.FuncRequire)
	}
	if bound, ok := bindings[name]; ok {
		return value.Clone(bound)
	}
	return value.NewUnknown(nil, "free variable "+name)
}

func lowerCallExpression(node *sitter.Node, content []byte, bindings map[string]value.Value) value.Value {
	functionNode := node.ChildByFieldName("function")
	var callee value.Value
	if functionNode != nil && functionNode.Type() == "import" {
		callee = value.NewWellKnownFunction(value.FuncImport)
	} else {
		callee = lowerExpression(functionNode, content, bindings)
	}

	args := make([]value.Value, 0)
	argumentsNode := node.ChildByFieldName("arguments")
	if argumentsNode != nil {
		for i := 0; i < int(argumentsNode.NamedChildCount()); i++ {
			args = append(args, lowerExpression(argumentsNode.NamedChild(i), content, bindings))
		}
	}
	return value.NewCall(callee, args)
}

func lowerBinaryExpression(node *sitter.Node, content []byte, bindings map[string]value.Value) value.Value {
	operator := node.ChildByFieldName("operator")
	if operator == nil || nodeText(operator, content) != "+" {
		return value.NewUnknown(nil, "unsupported operator")
	}
	left := lowerExpression(node.ChildByFieldName("left"), content, bindings)
	right := lowerExpression(node.ChildByFieldName("right"), content, bindings)
	return value.NewConcat(left, right)
}

func lowerTernaryExpression(node *sitter.Node, content []byte, bindings map[string]value.Value) value.Value {
	consequence := lowerExpression(node.ChildByFieldName("consequence"), content, bindings)
	alternative := lowerExpression(node.ChildByFieldName("alternative"), content, bindings)
	return value.NewAlternatives(consequence, alternative)
}

// lowerTemplateString splices literal text around each substitution using
// byte ranges, so fragments survive regardless of how the grammar names
// them.
func lowerTemplateString(node *sitter.Node, content []byte, bindings map[string]value.Value) value.Value {
	text := nodeText(node, content)
	start := node.StartByte()

	parts := make([]value.Value, 0)
	cursor := 1 // skip the opening backtick
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "template_substitution" {
			continue
		}
		childStart := int(child.StartByte() - start)
		childEnd := int(child.EndByte() - start)
		if childStart > cursor {
			parts = append(parts, value.Str(text[cursor:childStart]))
		}
		parts = append(parts, lowerExpression(firstNamedChild(child), content, bindings))
		cursor = childEnd
	}
	if cursor < len(text)-1 {
		parts = append(parts, value.Str(text[cursor:len(text)-1]))
	}
	return value.NewConcat(parts...)
}

func lowerPropertyName(node *sitter.Node, content []byte) value.Value {
	if node == nil {
		return value.NewUnknown(nil, "missing property")
	}
	switch node.Type() {
	case "property_identifier", "identifier":
		return value.Str(nodeText(node, content))
	default:
		return value.NewUnknown(nil, "unsupported property: "+node.Type())
	}
}

func walkNode(node *sitter.Node, visit func(*sitter.Node)) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		visit(child)
		walkNode(child, visit)
	}
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node == nil || node.NamedChildCount() == 0 {
		return nil
	}
	return node.NamedChild(0)
}

func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	return string(content[node.StartByte():node.EndByte()])
}

func extractStringLiteral(node *sitter.Node, content []byte) (string, bool) {
	if node == nil {
		return "", false
	}

	text := nodeText(node, content)
	if len(text) >= 2 {
		quote := text[0]
		if (quote == '"' || quote == '\'') && text[len(text)-1] == quote {
			return text[1 : len(text)-1], true
		}
	}

	text = strings.Trim(text, "\"'`")
	if text == "" {
		return "", false
	}
	return text, true
}
