package deckcode

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Format selects the deck-building rule set. The integer values are part of
// the wire format.
type Format uint32

const (
	Wild     Format = 1
	Standard Format = 2
)

var ErrUnknownFormat = errors.New("unknown format")

var formatNames = map[Format]string{
	Wild:     "wild",
	Standard: "standard",
}

// Formats lists the known formats in wire order.
func Formats() []Format {
	return []Format{Wild, Standard}
}

// ParseFormat resolves a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for f, s := range formatNames {
		if s == n {
			return f, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q (valid formats are standard and wild)", name)
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "format(" + strconv.FormatUint(uint64(f), 10) + ")"
}
