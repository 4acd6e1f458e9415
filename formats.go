// Credit to https://github.com/santhosh-tekuri/jsonschema
package jsonschema

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// Formats is the registry of built-in format validators, keyed by format
// name. Each function receives the string content of a NodeString instance
// and reports whether it conforms; FormatEvaluator never calls these for
// non-string instances. Validator.RegisterFormat layers user-defined formats
// in front of this map without mutating it.
var Formats = map[string]func(string) bool{
	"date-time":             IsDateTime,
	"date":                  IsDate,
	"time":                  IsTime,
	"duration":              IsDuration,
	"period":                IsPeriod,
	"hostname":              IsHostname,
	"idn-hostname":          IsIDNHostname,
	"email":                 IsEmail,
	"idn-email":             IsIDNEmail,
	"ipv4":                  IsIPV4,
	"ipv6":                  IsIPV6,
	"uri":                   IsURI,
	"uri-reference":         IsURIReference,
	"iri":                   IsIRI,
	"iri-reference":         IsIRIReference,
	"uri-template":          IsURITemplate,
	"json-pointer":          IsJSONPointer,
	"relative-json-pointer": IsRelativeJSONPointer,
	"uuid":                  IsUUID,
	"regex":                 IsRegex,
}

// IsDateTime tells whether s is a valid date-time, RFC 3339 section 5.6.
func IsDateTime(s string) bool {
	if len(s) < 20 { // yyyy-mm-ddThh:mm:ssZ
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return IsDate(s[:10]) && IsTime(s[11:])
}

// IsDate tells whether s is a valid full-date, RFC 3339 section 5.6.
func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsTime tells whether s is a valid full-time, RFC 3339 section 5.6. Go's
// time package does not support leap seconds, so this parses manually.
func IsTime(s string) bool {
	if len(s) < 9 || s[2] != ':' || s[5] != ':' {
		return false
	}
	isInRange := func(str string, min, max int) (int, bool) {
		n, err := strconv.Atoi(str)
		if err != nil || n < min || n > max {
			return 0, false
		}
		return n, true
	}
	var h, m, sec int
	var ok bool
	if h, ok = isInRange(s[0:2], 0, 23); !ok {
		return false
	}
	if m, ok = isInRange(s[3:5], 0, 59); !ok {
		return false
	}
	if sec, ok = isInRange(s[6:8], 0, 60); !ok {
		return false
	}
	s = s[8:]

	if len(s) > 0 && s[0] == '.' {
		s = s[1:]
		numDigits := 0
		for s != "" && s[0] >= '0' && s[0] <= '9' {
			numDigits++
			s = s[1:]
		}
		if numDigits == 0 {
			return false
		}
	}

	if len(s) == 0 {
		return false
	}

	if s[0] == 'z' || s[0] == 'Z' {
		if len(s) != 1 {
			return false
		}
	} else {
		if len(s) != 6 || s[3] != ':' {
			return false
		}
		var sign int
		switch s[0] {
		case '+':
			sign = -1
		case '-':
			sign = +1
		default:
			return false
		}
		var zh, zm int
		if zh, ok = isInRange(s[1:3], 0, 23); !ok {
			return false
		}
		if zm, ok = isInRange(s[4:6], 0, 59); !ok {
			return false
		}
		hm := (h*60 + m) + sign*(zh*60+zm)
		if hm < 0 {
			hm += 24 * 60
		}
		h, m = hm/60, hm%60
	}

	if sec == 60 && (h != 23 || m != 59) {
		return false
	}
	return true
}

// IsDuration tells whether s is a valid ISO 8601 duration, RFC 3339 appendix A.
func IsDuration(s string) bool {
	if len(s) == 0 || s[0] != 'P' {
		return false
	}
	s = s[1:]
	parseUnits := func() (units string, ok bool) {
		for len(s) > 0 && s[0] != 'T' {
			digits := false
			for len(s) != 0 && s[0] >= '0' && s[0] <= '9' {
				digits = true
				s = s[1:]
			}
			if !digits || len(s) == 0 {
				return units, false
			}
			units += s[:1]
			s = s[1:]
		}
		return units, true
	}
	units, ok := parseUnits()
	if !ok {
		return false
	}
	if units == "W" {
		return len(s) == 0
	}
	if len(units) > 0 {
		if !strings.Contains("YMD", units) { //nolint:gocritic
			return false
		}
		if len(s) == 0 {
			return true
		}
	}
	if len(s) == 0 || s[0] != 'T' {
		return false
	}
	s = s[1:]
	units, ok = parseUnits()
	return ok && len(s) == 0 && len(units) > 0 && strings.Contains("HMS", units) //nolint:gocritic
}

// IsPeriod tells whether s is a valid ISO 8601 time interval.
func IsPeriod(s string) bool {
	slash := strings.IndexByte(s, '/')
	if slash == -1 {
		return false
	}
	start, end := s[:slash], s[slash+1:]
	if IsDateTime(start) {
		return IsDateTime(end) || IsDuration(end)
	}
	return IsDuration(start) && IsDateTime(end)
}

// IsHostname tells whether s is a valid RFC 1034/1123 ASCII hostname.
func IsHostname(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if labelLen := len(label); labelLen < 1 || labelLen > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			if valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'; !valid {
				return false
			}
		}
	}
	return true
}

// IsIDNHostname tells whether s is a valid internationalized hostname: it
// must map to a valid ASCII hostname under IDNA2008 (golang.org/x/net/idna),
// after first normalizing s to NFC as IDNA2008 requires.
func IsIDNHostname(s string) bool {
	ascii, err := idna.Lookup.ToASCII(norm.NFC.String(s))
	if err != nil {
		return false
	}
	return IsHostname(ascii)
}

// IsEmail tells whether s is a valid RFC 5322 email address.
func IsEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at == -1 {
		return false
	}
	local := s[0:at]
	domain := s[at+1:]
	if len(local) > 64 {
		return false
	}
	if len(domain) >= 2 && domain[0] == '[' && domain[len(domain)-1] == ']' {
		ip := domain[1 : len(domain)-1]
		if strings.HasPrefix(ip, "IPv6:") {
			return IsIPV6(strings.TrimPrefix(ip, "IPv6:"))
		}
		return IsIPV4(ip)
	}
	if !IsHostname(domain) {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}

// IsIDNEmail tells whether s is a valid email address whose domain part may
// be internationalized, validated the same way as IsIDNHostname.
func IsIDNEmail(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at == -1 {
		return false
	}
	local, domain := s[0:at], s[at+1:]
	if len(local) == 0 || len(local) > 64 {
		return false
	}
	return IsIDNHostname(domain)
}

// IsIPV4 tells whether s is a valid dotted-quad IPv4 address, RFC 2673 §3.2.
func IsIPV4(s string) bool {
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return false
	}
	for _, group := range groups {
		n, err := strconv.Atoi(group)
		if err != nil || n < 0 || n > 255 {
			return false
		}
		if n != 0 && group[0] == '0' {
			return false
		}
	}
	return true
}

// IsIPV6 tells whether s is a valid IPv6 address, RFC 2373 §2.2.
func IsIPV6(s string) bool {
	if !strings.Contains(s, ":") {
		return false
	}
	return net.ParseIP(s) != nil
}

// IsURI tells whether s is a valid absolute URI, RFC 3986.
func IsURI(s string) bool {
	u, err := urlParse(s)
	return err == nil && u.IsAbs()
}

// IsIRI tells whether s is a valid absolute IRI: an RFC 3987 internationalized
// URI, checked by mapping any non-ASCII host through IDNA before parsing.
func IsIRI(s string) bool {
	return IsURI(normalizeIRIHost(s))
}

func urlParse(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	hostname := u.Hostname()
	if strings.IndexByte(hostname, ':') != -1 {
		if strings.IndexByte(u.Host, '[') == -1 || strings.IndexByte(u.Host, ']') == -1 {
			return nil, ErrIPv6AddressNotEnclosed
		}
		if !IsIPV6(hostname) {
			return nil, ErrInvalidIPv6Address
		}
	}
	return u, nil
}

// normalizeIRIHost rewrites s's host component to its IDNA ASCII form when
// possible, so an IRI with a unicode hostname can be validated with the
// plain URI parser; if conversion fails, s is returned unchanged and IsURI
// will reject it on its own terms.
func normalizeIRIHost(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}
	ascii, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		return s
	}
	u.Host = ascii
	if p := u.Port(); p != "" {
		u.Host = ascii + ":" + p
	}
	return u.String()
}

// IsURIReference tells whether s is a valid URI Reference, RFC 3986.
func IsURIReference(s string) bool {
	_, err := urlParse(s)
	return err == nil && !strings.Contains(s, `\`)
}

// IsIRIReference tells whether s is a valid IRI Reference, RFC 3987.
func IsIRIReference(s string) bool {
	return IsURIReference(normalizeIRIHost(s))
}

// IsURITemplate tells whether s is a valid URI Template, RFC 6570. This
// implementation does minimal brace-balance validation.
func IsURITemplate(s string) bool {
	u, err := urlParse(s)
	if err != nil {
		return false
	}
	for _, item := range strings.Split(u.RawPath, "/") {
		depth := 0
		for _, ch := range item {
			switch ch {
			case '{':
				depth++
				if depth != 1 {
					return false
				}
			case '}':
				depth--
				if depth != 0 {
					return false
				}
			}
		}
		if depth != 0 {
			return false
		}
	}
	return true
}

// IsJSONPointer tells whether s is a valid JSON Pointer (not a URI fragment form).
func IsJSONPointer(s string) bool {
	if s != "" && !strings.HasPrefix(s, "/") {
		return false
	}
	for _, item := range strings.Split(s, "/") {
		for i := 0; i < len(item); i++ {
			if item[i] == '~' {
				if i == len(item)-1 {
					return false
				}
				switch item[i+1] {
				case '0', '1':
				default:
					return false
				}
			}
		}
	}
	return true
}

// IsRelativeJSONPointer tells whether s is a valid Relative JSON Pointer.
func IsRelativeJSONPointer(s string) bool {
	if s == "" {
		return false
	}
	switch {
	case s[0] == '0':
		s = s[1:]
	case s[0] >= '0' && s[0] <= '9':
		for s != "" && s[0] >= '0' && s[0] <= '9' {
			s = s[1:]
		}
	default:
		return false
	}
	return s == "#" || IsJSONPointer(s)
}

// IsUUID tells whether s is a valid UUID, RFC 4122.
func IsUUID(s string) bool {
	parseHex := func(n int) bool {
		for n > 0 {
			if len(s) == 0 {
				return false
			}
			hex := (s[0] >= '0' && s[0] <= '9') || (s[0] >= 'a' && s[0] <= 'f') || (s[0] >= 'A' && s[0] <= 'F')
			if !hex {
				return false
			}
			s = s[1:]
			n--
		}
		return true
	}
	groups := []int{8, 4, 4, 4, 12}
	for i, numDigits := range groups {
		if !parseHex(numDigits) {
			return false
		}
		if i == len(groups)-1 {
			break
		}
		if len(s) == 0 || s[0] != '-' {
			return false
		}
		s = s[1:]
	}
	return len(s) == 0
}

// IsRegex tells whether s compiles as a regular expression.
func IsRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}
