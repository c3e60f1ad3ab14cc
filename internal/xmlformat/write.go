package xmlformat

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Write emits src as a properties document in the named character encoding
// ("" selects DefaultEncoding). Characters the encoding cannot represent are
// written as numeric character references. An empty comment omits the
// <comment> element. Nothing is written if any key, value or comment holds a
// character XML cannot carry; the error wraps ErrInvalidChar.
func Write(w io.Writer, src Source, comment, encodingName string) error {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return err
	}
	if err := checkSource(src, comment); err != nil {
		return err
	}

	out := w
	var closer io.Closer
	if enc != nil {
		tw := transform.NewWriter(w, encoding.HTMLEscapeUnsupported(enc.NewEncoder()))
		out, closer = tw, tw
	}

	bw := bufio.NewWriter(out)
	bw.WriteString(`<?xml version="1.0" encoding="`)
	xml.EscapeText(bw, []byte(encodingName))
	bw.WriteString(`" standalone="no"?>` + "\n")
	bw.WriteString(`<!DOCTYPE properties SYSTEM "` + SystemID + `">` + "\n")
	bw.WriteString("<properties>\n")
	if comment != "" {
		bw.WriteString("<comment>")
		xml.EscapeText(bw, []byte(comment))
		bw.WriteString("</comment>\n")
	}
	for _, key := range src.Keys() {
		value, _ := src.Get(key)
		bw.WriteString(`<entry key="`)
		xml.EscapeText(bw, []byte(key))
		bw.WriteString(`">`)
		xml.EscapeText(bw, []byte(value))
		bw.WriteString("</entry>\n")
	}
	bw.WriteString("</properties>\n")
	if err := bw.Flush(); err != nil {
		return err
	}
	if closer != nil {
		return closer.Close()
	}
	return nil
}

func checkSource(src Source, comment string) error {
	if err := checkText("comment", comment); err != nil {
		return err
	}
	for _, key := range src.Keys() {
		if err := checkText(fmt.Sprintf("key %q", key), key); err != nil {
			return err
		}
		value, _ := src.Get(key)
		if err := checkText(fmt.Sprintf("value of key %q", key), value); err != nil {
			return err
		}
	}
	return nil
}
