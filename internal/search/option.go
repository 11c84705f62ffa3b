// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownOption is returned for an advanced option outside 1-6.
var ErrUnknownOption = errors.New("unknown advanced option")

// Option selects the advanced operation applied after the basic search.
type Option int

const (
	OptionInfo      Option = 1
	OptionLength    Option = 2
	OptionTimestamp Option = 3
	OptionAuthor    Option = 4
	OptionKeyword   Option = 5
	OptionNone      Option = 6
)

var optionNames = map[Option]string{
	OptionInfo:      "info",
	OptionLength:    "length",
	OptionTimestamp: "timestamp",
	OptionAuthor:    "author",
	OptionKeyword:   "keyword",
	OptionNone:      "none",
}

// Options lists every option in menu order.
var Options = []Option{OptionInfo, OptionLength, OptionTimestamp, OptionAuthor, OptionKeyword, OptionNone}

// String returns the option name.
func (o Option) String() string {
	if n, ok := optionNames[o]; ok {
		return n
	}
	return fmt.Sprintf("option(%d)", int(o))
}

// Description is the menu text for the option.
func (o Option) Description() string {
	switch o {
	case OptionInfo:
		return "Article title and metadata"
	case OptionLength:
		return "Articles at or below a maximum length"
	case OptionTimestamp:
		return "Article titles and timestamps"
	case OptionAuthor:
		return "Whether your favorite author wrote a returned article"
	case OptionKeyword:
		return "Add the results of another keyword"
	case OptionNone:
		return "None"
	}
	return ""
}

// Prompt is the question asked for the option's parameter, or "" when the
// option takes none.
func (o Option) Prompt() string {
	switch o {
	case OptionLength:
		return "Enter the maximum article length: "
	case OptionAuthor:
		return "Enter your favorite author: "
	case OptionKeyword:
		return "Enter another keyword: "
	}
	return ""
}

// NeedsValue reports whether the option takes a parameter.
func (o Option) NeedsValue() bool {
	return o.Prompt() != ""
}

// Valid reports whether o is one of Options.
func (o Option) Valid() bool {
	_, ok := optionNames[o]
	return ok
}

// ParseOption accepts a menu number ("2") or a name ("length").
func ParseOption(s string) (Option, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		if o := Option(n); o.Valid() {
			return o, nil
		}
		return 0, fmt.Errorf("%w: %d", ErrUnknownOption, n)
	}
	for o, name := range optionNames {
		if name == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOption, s)
}

// MarshalText encodes the option by name.
func (o Option) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOption, int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText accepts the forms ParseOption does.
func (o *Option) UnmarshalText(text []byte) error {
	parsed, err := ParseOption(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
