package metadata

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/magiconair/properties"
	"golang.org/x/net/html/charset"

	"github.com/wippyai/turnkey/errors"
)

const (
	xmlHeader  = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"
	xmlDoctype = `<!DOCTYPE properties SYSTEM "http://java.sun.com/dtd/properties.dtd">` + "\n"
	comment    = "TurnKey Metadata File"
)

// xmlDocument mirrors the Java properties XML layout.
type xmlDocument struct {
	XMLName xml.Name   `xml:"properties"`
	Comment string     `xml:"comment"`
	Entries []xmlEntry `xml:"entry"`
}

type xmlEntry struct {
	Key   *string `xml:"key,attr"`
	Value string  `xml:",chardata"`
}

// Decode reads metadata in the properties XML format.
// For duplicate keys the last entry wins. The encoding named in the XML
// declaration is honored, so ISO-8859-1 files written by Java decode as well.
func Decode(r io.Reader) (*Metadata, error) {
	var doc xmlDocument
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.ParseFailed("metadata XML", err)
	}

	p := newProperties()
	for i, e := range doc.Entries {
		if e.Key == nil {
			return nil, errors.ParseFailed("metadata XML",
				fmt.Errorf("entry %d has no key attribute", i))
		}
		if _, _, err := p.Set(*e.Key, e.Value); err != nil {
			return nil, errors.ParseFailed("metadata XML", err)
		}
	}
	return fromProperties(p), nil
}

// Encode writes m in the properties XML format.
func (m *Metadata) Encode(w io.Writer) error {
	p, err := m.toProperties()
	if err != nil {
		return errors.EncodeFailed("metadata XML", err)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(xmlHeader)
	bw.WriteString(xmlDoctype)
	bw.WriteString("<properties>\n")
	bw.WriteString("<comment>")
	xml.EscapeText(bw, []byte(comment))
	bw.WriteString("</comment>\n")
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		bw.WriteString(`<entry key="`)
		xml.EscapeText(bw, []byte(key))
		bw.WriteString(`">`)
		xml.EscapeText(bw, []byte(value))
		bw.WriteString("</entry>\n")
	}
	bw.WriteString("</properties>\n")

	if err := bw.Flush(); err != nil {
		return errors.EncodeFailed("metadata XML", err)
	}
	return nil
}

// DecodeProperties reads metadata in the plain .properties text format.
func DecodeProperties(r io.Reader) (*Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.ParseFailed("metadata properties", err)
	}
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, errors.ParseFailed("metadata properties", err)
	}
	return fromProperties(p), nil
}

// EncodeProperties writes m in the plain .properties text format.
func (m *Metadata) EncodeProperties(w io.Writer) error {
	p, err := m.toProperties()
	if err != nil {
		return errors.EncodeFailed("metadata properties", err)
	}
	if _, err := io.WriteString(w, "# "+comment+"\n"); err != nil {
		return errors.EncodeFailed("metadata properties", err)
	}
	if _, err := p.Write(w, properties.UTF8); err != nil {
		return errors.EncodeFailed("metadata properties", err)
	}
	return nil
}

// Format selects a metadata serialization.
type Format uint8

const (
	FormatXML Format = iota
	FormatProperties
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatProperties:
		return "properties"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat maps a format name ("xml", "properties") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "xml":
		return FormatXML, nil
	case "properties", "props":
		return FormatProperties, nil
	}
	return 0, errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Value(name).
		Detail("unknown metadata format %q", name).
		Build()
}

// FormatForName picks the format by file extension. Anything other than
// ".properties" is XML.
func FormatForName(fileName string) Format {
	if strings.EqualFold(path.Ext(fileName), ".properties") {
		return FormatProperties
	}
	return FormatXML
}

// DecodeFormat reads metadata in format f.
func DecodeFormat(r io.Reader, f Format) (*Metadata, error) {
	if f == FormatProperties {
		return DecodeProperties(r)
	}
	return Decode(r)
}

// EncodeFormat writes m in format f.
func (m *Metadata) EncodeFormat(w io.Writer, f Format) error {
	if f == FormatProperties {
		return m.EncodeProperties(w)
	}
	return m.Encode(w)
}
