package htmlutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// ErrInvalidCodePoint is returned when a numeric entity does not refer to a
// valid unicode scalar value.
var ErrInvalidCodePoint = errors.New("invalid numeric entity code point")

// namedEntities maps the entity names that are decoded to their code point.
// nbsp intentionally decodes to a plain space.
var namedEntities = map[string]rune{
	"quot": '"', "amp": '&', "lt": '<', "gt": '>', "nbsp": ' ',

	"iexcl": 161, "cent": 162, "pound": 163, "curren": 164, "yen": 165,
	"brvbar": 166, "sect": 167, "uml": 168, "copy": 169, "ordf": 170,
	"laquo": 171, "not": 172, "shy": 173, "reg": 174, "macr": 175,
	"deg": 176, "plusmn": 177, "sup2": 178, "sup3": 179, "acute": 180,
	"micro": 181, "para": 182, "middot": 183, "cedil": 184, "sup1": 185,
	"ordm": 186, "raquo": 187, "frac14": 188, "frac12": 189, "frac34": 190,
	"iquest": 191,

	"Agrave": 192, "Aacute": 193, "Acirc": 194, "Atilde": 195, "Auml": 196,
	"Aring": 197, "AElig": 198, "Ccedil": 199, "Egrave": 200, "Eacute": 201,
	"Ecirc": 202, "Euml": 203, "Igrave": 204, "Iacute": 205, "Icirc": 206,
	"Iuml": 207, "ETH": 208, "Ntilde": 209, "Ograve": 210, "Oacute": 211,
	"Ocirc": 212, "Otilde": 213, "Ouml": 214, "times": 215, "Oslash": 216,
	"Ugrave": 217, "Uacute": 218, "Ucirc": 219, "Uuml": 220, "Yacute": 221,
	"THORN": 222, "szlig": 223,

	"agrave": 224, "aacute": 225, "acirc": 226, "atilde": 227, "auml": 228,
	"aring": 229, "aelig": 230, "ccedil": 231, "egrave": 232, "eacute": 233,
	"ecirc": 234, "euml": 235, "igrave": 236, "iacute": 237, "icirc": 238,
	"iuml": 239, "eth": 240, "ntilde": 241, "ograve": 242, "oacute": 243,
	"ocirc": 244, "otilde": 245, "ouml": 246, "divide": 247, "oslash": 248,
	"ugrave": 249, "uacute": 250, "ucirc": 251, "uuml": 252, "yacute": 253,
	"thorn": 254, "yuml": 255,
}

var namedEntityRegex = regexp.MustCompile(`&([A-Za-z][A-Za-z0-9]*);`)
var numericEntityRegex = regexp.MustCompile(`&#(\d+);`)

// DecodeEntities replaces the named entities of the fixed table and then
// every numeric entity (`&#NNN;`) in s with the characters they stand for.
//
// The named pass runs to completion before the numeric pass, so `&amp;#38;`
// decodes to `&`. Named entities outside of the table are left as is.
func DecodeEntities(s string) (string, error) {
	s = namedEntityRegex.ReplaceAllStringFunc(s, func(entity string) string {
		name := entity[1 : len(entity)-1]
		r, ok := namedEntities[name]
		if !ok {
			return entity
		}
		return string(r)
	})

	var decodeErr error
	s = numericEntityRegex.ReplaceAllStringFunc(s, func(entity string) string {
		if decodeErr != nil {
			return entity
		}
		digits := entity[2 : len(entity)-1]
		code, err := strconv.ParseInt(digits, 10, 32)
		if err != nil || !utf8.ValidRune(rune(code)) {
			decodeErr = fmt.Errorf("%w: %s", ErrInvalidCodePoint, entity)
			return entity
		}
		return string(rune(code))
	})
	if decodeErr != nil {
		return "", decodeErr
	}

	return s, nil
}

// StripNumericEntities removes every `&#NNN;` sequence from s without
// decoding it.
func StripNumericEntities(s string) string {
	return numericEntityRegex.ReplaceAllString(s, "")
}
