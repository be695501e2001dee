package gosaxlex

import (
	"fmt"
	"strings"
)

// Element is an Element token whose names have been resolved
// against the namespace declarations in scope.
type Element struct {
	Name        NameInfo
	Attr        []ResolvedAttr
	SelfClosing bool
}

// ResolvedAttr is an attribute with a resolved name.
type ResolvedAttr struct {
	Name  NameInfo
	Value string
}

type binding struct {
	prefix    string
	namespace string
}

// NamespaceScope keeps track of the namespace declarations in effect
// while walking a token stream, one frame per open element.
// Attribute values are expected to be decoded already, see Token.Decoded.
type NamespaceScope struct {
	openNames []string
	nsOffs    []int
	bindings  []binding
}

// NewNamespaceScope creates a new NamespaceScope and returns a pointer to it.
func NewNamespaceScope() *NamespaceScope {
	return &NamespaceScope{
		openNames: make([]string, 0, 32),
		nsOffs:    make([]int, 0, 32),
		bindings:  make([]binding, 0, 64),
	}
}

// Reset resets this NamespaceScope.
func (thiz *NamespaceScope) Reset() {
	thiz.openNames = thiz.openNames[:0]
	thiz.nsOffs = thiz.nsOffs[:0]
	thiz.bindings = thiz.bindings[:0]
}

// Depth returns the number of currently open elements.
func (thiz *NamespaceScope) Depth() int {
	return len(thiz.openNames)
}

// Enter opens a new frame for the given Element token, registers its
// namespace declarations and resolves its element and attribute names.
// The frame of a self-closing element is closed again before Enter returns.
func (thiz *NamespaceScope) Enter(t Token) (Element, error) {
	if t.Kind != TokenTypeElement {
		return Element{}, fmt.Errorf("%w: cannot enter a %s token", ErrInvalidState, t.Kind)
	}
	thiz.pushFrame(t.Name)
	el, err := thiz.resolve(t)
	if err != nil || t.SelfClosing {
		thiz.popFrame()
	}
	return el, err
}

// Leave closes the frame of the innermost open element.
// The ClosingTag token must carry the same name as that element.
func (thiz *NamespaceScope) Leave(t Token) error {
	if t.Kind != TokenTypeClosingTag {
		return fmt.Errorf("%w: cannot leave with a %s token", ErrInvalidState, t.Kind)
	}
	if len(thiz.openNames) == 0 {
		return fmt.Errorf("%w: closing tag %q without open element", ErrSyntax, t.Name)
	}
	if open := thiz.openNames[len(thiz.openNames)-1]; open != t.Name {
		return fmt.Errorf("%w: closing tag %q does not match %q", ErrSyntax, t.Name, open)
	}
	thiz.popFrame()
	return nil
}

// LookupNamespace returns the namespace bound to prefix, or "" when
// there is none. The empty prefix stands for the default namespace.
func (thiz *NamespaceScope) LookupNamespace(prefix string) string {
	switch prefix {
	case PrefixXML:
		return NamespaceXML
	case PrefixXMLNS:
		return NamespaceXMLNS
	}
	for i := len(thiz.bindings) - 1; i >= 0; i-- {
		if thiz.bindings[i].prefix == prefix {
			return thiz.bindings[i].namespace
		}
	}
	return ""
}

// LookupPrefix finds the innermost prefix bound to namespace that is
// not shadowed by a later declaration.
// This is the reverse operation of LookupNamespace.
func (thiz *NamespaceScope) LookupPrefix(namespace string) (string, bool) {
	if namespace == NamespaceXML {
		return PrefixXML, true
	}
	for i := len(thiz.bindings) - 1; i >= 0; i-- {
		b := thiz.bindings[i]
		if b.namespace == namespace && namespace != "" && thiz.LookupNamespace(b.prefix) == namespace {
			return b.prefix, true
		}
	}
	return "", false
}

func (thiz *NamespaceScope) pushFrame(name string) {
	thiz.openNames = append(thiz.openNames, name)
	thiz.nsOffs = append(thiz.nsOffs, len(thiz.bindings))
}

func (thiz *NamespaceScope) popFrame() {
	top := len(thiz.openNames) - 1
	thiz.bindings = thiz.bindings[:thiz.nsOffs[top]]
	thiz.nsOffs = thiz.nsOffs[:top]
	thiz.openNames = thiz.openNames[:top]
}

// resolve registers the declarations of t in the current frame
// before resolving any name, so they apply to the element itself.
func (thiz *NamespaceScope) resolve(t Token) (Element, error) {
	for _, a := range t.Attr {
		var prefix string
		switch {
		case a.Name == PrefixXMLNS:
		case strings.HasPrefix(a.Name, PrefixXMLNS+":"):
			prefix = a.Name[len(PrefixXMLNS)+1:]
		default:
			continue
		}
		if err := checkDeclaration(prefix, a.Value); err != nil {
			return Element{}, err
		}
		thiz.bindings = append(thiz.bindings, binding{prefix: prefix, namespace: a.Value})
	}

	prefix := prefixOf(t.Name)
	if prefix == PrefixXMLNS {
		return Element{}, fmt.Errorf("%w: element %q must not use prefix %s", ErrNamespace, t.Name, PrefixXMLNS)
	}
	name, err := ExtractNames(thiz.LookupNamespace(prefix), t.Name)
	if err != nil {
		return Element{}, err
	}
	el := Element{Name: name, SelfClosing: t.SelfClosing}
	if len(t.Attr) == 0 {
		return el, nil
	}
	el.Attr = make([]ResolvedAttr, 0, len(t.Attr))
	for _, a := range t.Attr {
		// unprefixed attributes are in no namespace
		var namespace string
		switch prefix := prefixOf(a.Name); {
		case a.Name == PrefixXMLNS:
			namespace = NamespaceXMLNS
		case prefix != "":
			namespace = thiz.LookupNamespace(prefix)
		}
		info, err := ExtractNames(namespace, a.Name)
		if err != nil {
			return Element{}, err
		}
		for _, prev := range el.Attr {
			if prev.Name.Namespace == info.Namespace && prev.Name.LocalName == info.LocalName {
				return Element{}, fmt.Errorf("%w: attribute {%s}%s occurs twice on %q",
					ErrNamespace, info.Namespace, info.LocalName, t.Name)
			}
		}
		el.Attr = append(el.Attr, ResolvedAttr{Name: info, Value: a.Value})
	}
	return el, nil
}

// checkDeclaration enforces the reserved prefix and namespace rules
// for a namespace declaration of prefix.
func checkDeclaration(prefix, namespace string) error {
	switch {
	case prefix == PrefixXMLNS:
		return fmt.Errorf("%w: prefix %s must not be declared", ErrNamespace, PrefixXMLNS)
	case prefix == PrefixXML && namespace != NamespaceXML:
		return fmt.Errorf("%w: prefix %s must be bound to %s", ErrNamespace, PrefixXML, NamespaceXML)
	case prefix != PrefixXML && namespace == NamespaceXML:
		return fmt.Errorf("%w: namespace %s must only be bound to prefix %s", ErrNamespace, NamespaceXML, PrefixXML)
	case namespace == NamespaceXMLNS:
		return fmt.Errorf("%w: namespace %s must not be declared", ErrNamespace, NamespaceXMLNS)
	case prefix != "" && namespace == "":
		return fmt.Errorf("%w: prefix %q must not be undeclared", ErrNamespace, prefix)
	}
	return nil
}

func prefixOf(q string) string {
	if i := strings.IndexByte(q, ':'); i >= 0 {
		return q[:i]
	}
	return ""
}
