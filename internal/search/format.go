// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// FormatText writes the result line, and the favorite-author line for
// OptionAuthor, to w.
func FormatText(res Result, w io.Writer) {
	if res.Empty() {
		fmt.Fprintln(w, "No articles found")
	} else {
		fmt.Fprintln(w, "Here are your articles: "+Literal(res))
	}

	if res.Option == OptionAuthor {
		not := " not"
		if res.HasFavorite {
			not = ""
		}
		fmt.Fprintf(w, "Your favorite author is%s in the returned articles!\n", not)
	}
}

// FormatJSON writes the result as indented JSON to w.
func FormatJSON(res Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// Literal renders the articles of res in list or dict literal notation:
// ['a', 'b'] for titles, {'a': 1} for timestamps, and
// {'a': {'author': 'x', 'timestamp': 1, 'length': 2}} for details.
func Literal(res Result) string {
	var b strings.Builder
	switch res.Option {
	case OptionInfo:
		b.WriteByte('{')
		for i, d := range res.Details {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: {'author': %s, 'timestamp': %d, 'length': %d}",
				quote(d.Title), quote(d.Author), d.Timestamp, d.Length)
		}
		b.WriteByte('}')
	case OptionTimestamp:
		b.WriteByte('{')
		for i, ts := range res.Timestamps {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(ts.Title) + ": " + strconv.FormatInt(ts.Timestamp, 10))
		}
		b.WriteByte('}')
	default:
		b.WriteByte('[')
		for i, t := range res.Titles {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(t))
		}
		b.WriteByte(']')
	}
	return b.String()
}

// quote wraps s in single quotes, or in double quotes when s contains a
// single quote but no double quote. Non-printable runes are escaped as
// \xNN, \uNNNN, or \UNNNNNNNN.
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == '\\' || r == q:
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(q)
	return b.String()
}
