package lower

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/e-santo/modtrace/internal/value"
)

// builtinObjects maps recognized Node.js module names to their well-known
// object kinds. Only modules the resolver has member tables for are bound.
var builtinObjects = map[string]value.ObjectKind{
	"path":          value.ObjectPathModule,
	"fs":            value.ObjectFsModule,
	"url":           value.ObjectURLModule,
	"child_process": value.ObjectChildProcess,
}

// collectBindings maps local names to well-known markers for bindings like
// `const path = require('path')`, `import * as fs from 'node:fs'`, or
// `const {join} = require('path')`. Destructured names bind to member
// accesses on the object marker; the resolver's tables refine them later.
func collectBindings(root *sitter.Node, content []byte) map[string]value.Value {
	bindings := make(map[string]value.Value)
	walkNode(root, func(node *sitter.Node) {
		switch node.Type() {
		case "variable_declarator":
			collectDeclaratorBinding(node, content, bindings)
		case "import_statement":
			collectImportBinding(node, content, bindings)
		}
	})
	return bindings
}

func collectDeclaratorBinding(node *sitter.Node, content []byte, bindings map[string]value.Value) {
	init := node.ChildByFieldName("value")
	bound := lowerBindingInit(init, content)
	if bound == nil {
		return
	}

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	switch nameNode.Type() {
	case "identifier":
		bindings[nodeText(nameNode, content)] = bound
	case "object_pattern":
		collectObjectPatternBindings(nameNode, content, bound, bindings)
	}
}

// lowerBindingInit recognizes initializers that denote a well-known module
// object: require('<builtin>') and member chains rooted at one, e.g.
// require('fs').promises.
func lowerBindingInit(node *sitter.Node, content []byte) value.Value {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "call_expression":
		name, ok := requiredBuiltin(node, content)
		if !ok {
			return nil
		}
		kind, ok := builtinObjects[name]
		if !ok {
			return nil
		}
		return value.NewWellKnownObject(kind)
	case "member_expression":
		object := lowerBindingInit(node.ChildByFieldName("object"), content)
		if object == nil {
			return nil
		}
		return value.NewMember(object, lowerPropertyName(node.ChildByFieldName("property"), content))
	default:
		return nil
	}
}

// requiredBuiltin reports the module name of a require('<literal>') call,
// with any node: prefix stripped.
func requiredBuiltin(node *sitter.Node, content []byte) (string, bool) {
	functionNode := node.ChildByFieldName("function")
	if functionNode == nil || functionNode.Type() != "identifier" || nodeText(functionNode, content) != "require" {
		return "", false
	}
	argumentsNode := node.ChildByFieldName("arguments")
	if argumentsNode == nil || argumentsNode.NamedChildCount() != 1 {
		return "", false
	}
	name, ok := extractStringLiteral(argumentsNode.NamedChild(0), content)
	if !ok {
		return "", false
	}
	return stripNodePrefix(name), true
}

func stripNodePrefix(name string) string {
	if len(name) > 5 && name[:5] == "node:" {
		return name[5:]
	}
	return name
}

func collectObjectPatternBindings(pattern *sitter.Node, content []byte, object value.Value, bindings map[string]value.Value) {
	for i := 0; i < int(pattern.NamedChildCount()); i++ {
		child := pattern.NamedChild(i)
		switch child.Type() {
		case "shorthand_property_identifier_pattern":
			name := nodeText(child, content)
			bindings[name] = value.NewMember(value.Clone(object), value.Str(name))
		case "pair_pattern":
			keyNode := child.ChildByFieldName("key")
			valueNode := child.ChildByFieldName("value")
			if keyNode == nil || valueNode == nil || valueNode.Type() != "identifier" {
				continue
			}
			local := nodeText(valueNode, content)
			bindings[local] = value.NewMember(value.Clone(object), value.Str(nodeText(keyNode, content)))
		}
	}
}

func collectImportBinding(node *sitter.Node, content []byte, bindings map[string]value.Value) {
	sourceNode := node.ChildByFieldName("source")
	module, ok := extractStringLiteral(sourceNode, content)
	if !ok {
		return
	}
	kind, ok := builtinObjects[stripNodePrefix(module)]
	if !ok {
		return
	}
	object := value.NewWellKnownObject(kind)

	clause := firstNamedChildOfType(node, "import_clause")
	if clause == nil {
		return
	}
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case "identifier":
			// Default import of a builtin exposes the module object.
			bindings[nodeText(child, content)] = value.Clone(object)
		case "namespace_import":
			nameNode := firstNamedChildOfType(child, "identifier")
			if nameNode != nil {
				bindings[nodeText(nameNode, content)] = value.Clone(object)
			}
		case "named_imports":
			collectNamedImportBindings(child, content, object, bindings)
		}
	}
}

func collectNamedImportBindings(node *sitter.Node, content []byte, object value.Value, bindings map[string]value.Value) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "import_specifier" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			nameNode = firstNamedChildOfType(child, "identifier", "property_identifier")
		}
		aliasNode := child.ChildByFieldName("alias")
		if aliasNode == nil {
			aliasNode = nameNode
		}
		exportName := nodeText(nameNode, content)
		localName := nodeText(aliasNode, content)
		if exportName == "" || localName == "" {
			continue
		}
		bindings[localName] = value.NewMember(value.Clone(object), value.Str(exportName))
	}
}

func firstNamedChildOfType(node *sitter.Node, types ...string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		for _, typ := range types {
			if child.Type() == typ {
				return child
			}
		}
	}
	return nil
}
