// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractors

import (
	"bufio"
	"fmt"
	"io"
	"mime"
	"net/mail"
	"os"
	"strings"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
)

// extractEML pulls the subject line and body out of an RFC 5322
// message. When net/mail rejects the input, a naive header/body split
// still recovers what it can; synthetic mail is frequently sloppy
// about header syntax.
func extractEML(path string) (*Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, extractionErr(path, ".eml", err)
	}
	defer f.Close()

	ex := &Extraction{}

	msg, err := mail.ReadMessage(bufio.NewReader(f))
	if err != nil {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, extractionErr(path, ".eml", readErr)
		}
		subject, body := splitHeadersAndBody(string(raw))
		addMailFragments(ex, subject, body)
		ex.setMeta("eml_parser", "header_split")
		return ex, nil
	}

	subject := msg.Header.Get("Subject")
	if decoded, err := new(mime.WordDecoder).DecodeHeader(subject); err == nil {
		subject = decoded
	}
	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, extractionErr(path, ".eml", fmt.Errorf("reading body: %w", err))
	}

	addMailFragments(ex, subject, string(body))
	return ex, nil
}

// splitHeadersAndBody is the fallback for malformed messages: headers
// run until the first blank line, the subject is whatever follows a
// Subject: prefix.
func splitHeadersAndBody(raw string) (subject, body string) {
	head := raw
	if idx := strings.Index(raw, "\n\n"); idx >= 0 {
		head, body = raw[:idx], raw[idx+2:]
	} else if idx := strings.Index(raw, "\r\n\r\n"); idx >= 0 {
		head, body = raw[:idx], raw[idx+4:]
	}
	for _, line := range strings.Split(head, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimRight(line, "\r"), "Subject:"); ok {
			subject = strings.TrimSpace(rest)
			break
		}
	}
	return subject, body
}

func addMailFragments(ex *Extraction, subject, body string) {
	if strings.TrimSpace(subject) != "" {
		ex.Fragments = append(ex.Fragments, Fragment{Text: subject, Location: "subject"})
	}
	if strings.TrimSpace(body) != "" {
		ex.Fragments = append(ex.Fragments, Fragment{Text: body, Location: "body"})
	}
}

// Outlook item property streams holding the subject and plain-text
// body, in their Unicode and ANSI encodings.
const (
	msgSubjectUnicode = "__substg1.0_0037001F"
	msgSubjectANSI    = "__substg1.0_0037001E"
	msgBodyUnicode    = "__substg1.0_1000001F"
	msgBodyANSI       = "__substg1.0_1000001E"
)

// extractMsg reads an Outlook .msg item, which is a CFB compound
// document with one stream per MAPI property.
func extractMsg(path string) (*Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, extractionErr(path, ".msg", err)
	}
	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return nil, extractionErr(path, ".msg", fmt.Errorf("opening compound file: %w", err))
	}

	var subject, body string
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case msgSubjectUnicode, msgSubjectANSI:
			subject = readMsgStream(entry, entry.Name == msgSubjectUnicode)
		case msgBodyUnicode, msgBodyANSI:
			body = readMsgStream(entry, entry.Name == msgBodyUnicode)
		}
	}

	ex := &Extraction{}
	addMailFragments(ex, subject, body)
	return ex, nil
}

func readMsgStream(r io.Reader, isUnicode bool) string {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	if !isUnicode {
		return string(raw)
	}
	return decodeUTF16LE(raw)
}

func decodeUTF16LE(b []byte) string {
	if len(b) < 2 {
		return ""
	}
	u16 := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u16 = append(u16, uint16(b[i])|uint16(b[i+1])<<8)
	}
	return strings.TrimRight(string(utf16.Decode(u16)), "\x00")
}
