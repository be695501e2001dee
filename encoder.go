package gosaxlex

import (
	"fmt"
	"io"
	"strings"
)

// Encoder encodes Token values to an io.Writer.
// Text data and attribute values are expected in decoded form
// and get escaped on output.
type Encoder struct {
	// The io.Writer we encode/write into.
	w io.Writer

	cfg encoderConfig
}

// NewEncoder creates a new Encoder writing into w and returns a pointer to it.
func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	var cfg encoderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.version == "" {
		cfg.version = Version10
	}
	return &Encoder{
		w:   w,
		cfg: cfg,
	}
}

// Reset resets this Encoder to write into the provided io.Writer.
func (thiz *Encoder) Reset(w io.Writer) {
	thiz.w = w
}

// EncodeToken writes the textual representation of t.
// EOF tokens are ignored.
func (thiz *Encoder) EncodeToken(t Token) error {
	switch t.Kind {
	case TokenTypeEOF:
		return nil
	case TokenTypeDeclaration:
		return thiz.encodeDeclaration(t)
	case TokenTypeDocType:
		return thiz.encodeDocType(t)
	case TokenTypeElement:
		return thiz.encodeElement(t)
	case TokenTypeClosingTag:
		return thiz.encodeClosingTag(t)
	case TokenTypeText:
		return thiz.encodeText(t)
	case TokenTypeCDATA:
		return thiz.encodeCDATA(t)
	case TokenTypeComment:
		return thiz.encodeComment(t)
	case TokenTypeProcInst:
		return thiz.encodeProcInst(t)
	}
	return fmt.Errorf("%w: unknown token kind %d", ErrInvalidState, t.Kind)
}

func (thiz *Encoder) encodeDeclaration(t Token) error {
	version := t.Version
	if version == "" {
		version = string(thiz.cfg.version)
	}
	if thiz.cfg.wellFormed {
		if version != string(Version10) && version != string(Version11) {
			return fmt.Errorf("%w: unsupported XML version %q", ErrInvalidState, version)
		}
		if t.Standalone != "" && t.Standalone != "yes" && t.Standalone != "no" {
			return fmt.Errorf("%w: standalone must be yes or no, got %q", ErrInvalidState, t.Standalone)
		}
	}
	return thiz.write(
		`<?xml version="`, version, `"`,
		optional(` encoding="`, t.Encoding, `"`),
		optional(` standalone="`, t.Standalone, `"`),
		"?>",
	)
}

func (thiz *Encoder) encodeDocType(t Token) error {
	if thiz.cfg.wellFormed {
		if err := ValidateQName(t.Name); err != nil {
			return err
		}
		if err := ValidatePubID(t.PublicID, "in doctype "+t.Name); err != nil {
			return err
		}
		if strings.ContainsRune(t.SystemID, '"') && strings.ContainsRune(t.SystemID, '\'') {
			return fmt.Errorf("%w: system identifier %q contains both quote characters", ErrInvalidState, t.SystemID)
		}
	}
	var ids string
	switch {
	case t.PublicID != "":
		ids = ` PUBLIC "` + t.PublicID + `" ` + quote(t.SystemID)
	case t.SystemID != "":
		ids = ` SYSTEM ` + quote(t.SystemID)
	}
	return thiz.write("<!DOCTYPE ", t.Name, ids, ">")
}

func (thiz *Encoder) encodeElement(t Token) error {
	if thiz.cfg.wellFormed {
		if err := thiz.checkElement(t); err != nil {
			return err
		}
	}
	err := thiz.write("<", t.Name)
	if err != nil {
		return err
	}
	for _, attr := range t.Attr {
		err = thiz.write(" ", attr.Name, `="`, EncodeAttr(attr.Value, thiz.cfg.noDoubleEncoding), `"`)
		if err != nil {
			return err
		}
	}
	if t.SelfClosing {
		return thiz.write("/>")
	}
	return thiz.write(">")
}

// checkElement validates the whole element before anything is written.
func (thiz *Encoder) checkElement(t Token) error {
	if err := ValidateQName(t.Name); err != nil {
		return err
	}
	for _, attr := range t.Attr {
		if err := ValidateQName(attr.Name); err != nil {
			return err
		}
		if err := ValidateText(attr.Value, thiz.cfg.version, "in attribute "+attr.Name); err != nil {
			return err
		}
	}
	return nil
}

func (thiz *Encoder) encodeClosingTag(t Token) error {
	if thiz.cfg.wellFormed {
		if err := ValidateQName(t.Name); err != nil {
			return err
		}
	}
	return thiz.write("</", t.Name, ">")
}

func (thiz *Encoder) encodeText(t Token) error {
	if thiz.cfg.wellFormed {
		if err := ValidateText(t.Data, thiz.cfg.version, "in text"); err != nil {
			return err
		}
	}
	return thiz.write(EncodeText(t.Data, thiz.cfg.noDoubleEncoding))
}

func (thiz *Encoder) encodeCDATA(t Token) error {
	if thiz.cfg.wellFormed {
		if err := ValidateText(t.Data, thiz.cfg.version, "in CDATA section"); err != nil {
			return err
		}
		if strings.Contains(t.Data, "]]>") {
			return fmt.Errorf("%w: CDATA section contains \"]]>\"", ErrInvalidState)
		}
	}
	return thiz.write("<![CDATA[", t.Data, "]]>")
}

func (thiz *Encoder) encodeComment(t Token) error {
	if thiz.cfg.wellFormed {
		if err := ValidateText(t.Data, thiz.cfg.version, "in comment"); err != nil {
			return err
		}
		if strings.Contains(t.Data, "--") || strings.HasSuffix(t.Data, "-") {
			return fmt.Errorf("%w: comment %q contains \"--\" or ends with \"-\"", ErrInvalidState, t.Data)
		}
	}
	return thiz.write("<!--", t.Data, "-->")
}

func (thiz *Encoder) encodeProcInst(t Token) error {
	if thiz.cfg.wellFormed {
		if strings.ContainsRune(t.Target, ':') || strings.EqualFold(t.Target, "xml") {
			return fmt.Errorf("%w: invalid processing instruction target %q", ErrInvalidState, t.Target)
		}
		if err := ValidateName(t.Target, thiz.cfg.version, "in processing instruction target"); err != nil {
			return err
		}
		if err := ValidateText(t.Data, thiz.cfg.version, "in processing instruction"); err != nil {
			return err
		}
		if strings.Contains(t.Data, "?>") {
			return fmt.Errorf("%w: processing instruction data contains \"?>\"", ErrInvalidState)
		}
	}
	if t.Data == "" {
		return thiz.write("<?", t.Target, "?>")
	}
	return thiz.write("<?", t.Target, " ", t.Data, "?>")
}

func (thiz *Encoder) write(parts ...string) error {
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := io.WriteString(thiz.w, p); err != nil {
			return err
		}
	}
	return nil
}

// optional returns prefix+value+suffix, or "" for an empty value.
func optional(prefix, value, suffix string) string {
	if value == "" {
		return ""
	}
	return prefix + value + suffix
}

// quote picks the quote character that does not occur in s.
func quote(s string) string {
	if strings.ContainsRune(s, '"') {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}
