package gosaxlex

import (
	"fmt"
	"strings"
)

const (
	// PrefixXML is the reserved prefix for the XML namespace.
	PrefixXML = "xml"
	// PrefixXMLNS is the reserved prefix for namespace declarations.
	PrefixXMLNS = "xmlns"
	// NamespaceXML is the XML namespace URI.
	NamespaceXML = "http://www.w3.org/XML/1998/namespace"
	// NamespaceXMLNS is the XMLNS namespace URI.
	NamespaceXMLNS = "http://www.w3.org/2000/xmlns/"
)

// NameInfo is a qualified name resolved against a namespace.
// An empty Namespace or Prefix means there is none.
// A non-empty Prefix always comes with a non-empty Namespace.
type NameInfo struct {
	Namespace string
	Prefix    string
	LocalName string
}

// QualifiedName returns prefix:localName, or localName without a prefix.
func (n NameInfo) QualifiedName() string {
	if n.Prefix == "" {
		return n.LocalName
	}
	return n.Prefix + ":" + n.LocalName
}

// ValidateQName returns an ErrInvalidCharacter error unless
// q is both a Name and a QName.
func ValidateQName(q string) error {
	if !IsName(q) || !IsQName(q) {
		return fmt.Errorf("%w: %q is not a valid qualified name", ErrInvalidCharacter, q)
	}
	return nil
}

// ExtractQName validates q and splits it into prefix and local name.
func ExtractQName(q string) (prefix, localName string, err error) {
	if err = ValidateQName(q); err != nil {
		return "", "", err
	}
	if i := strings.IndexByte(q, ':'); i >= 0 {
		return q[:i], q[i+1:], nil
	}
	return "", q, nil
}

// ExtractNames validates q and resolves it against namespace
// following the XML Namespaces constraints.
// The qualified name syntax is checked before any namespace constraint.
func ExtractNames(namespace, q string) (NameInfo, error) {
	prefix, localName, err := ExtractQName(q)
	if err != nil {
		return NameInfo{}, err
	}
	if prefix != "" && namespace == "" {
		return NameInfo{}, fmt.Errorf("%w: prefix %q of %q has no namespace", ErrNamespace, prefix, q)
	}
	if prefix == PrefixXML && namespace != NamespaceXML {
		return NameInfo{}, fmt.Errorf("%w: prefix %s must be bound to %s", ErrNamespace, PrefixXML, NamespaceXML)
	}
	isXMLNS := prefix == PrefixXMLNS || q == PrefixXMLNS
	if namespace != NamespaceXMLNS && isXMLNS {
		return NameInfo{}, fmt.Errorf("%w: %q requires namespace %s", ErrNamespace, q, NamespaceXMLNS)
	}
	if namespace == NamespaceXMLNS && !isXMLNS {
		return NameInfo{}, fmt.Errorf("%w: namespace %s is reserved for xmlns, got %q", ErrNamespace, NamespaceXMLNS, q)
	}
	return NameInfo{Namespace: namespace, Prefix: prefix, LocalName: localName}, nil
}
