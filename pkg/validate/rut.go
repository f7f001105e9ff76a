package validate

import "strings"

// IsRUT validates a Chilean RUT by its mod-11 check digit. Dots and the
// hyphen are ignored, the check digit may be a digit or K.
func IsRUT(rut string) bool {
	cleaned := strings.NewReplacer(".", "", "-", "").Replace(rut)
	if len(cleaned) < 8 {
		return false
	}

	body := cleaned[:len(cleaned)-1]
	dv := strings.ToUpper(cleaned[len(cleaned)-1:])

	sum := 0
	multiplier := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * multiplier
		multiplier++
		if multiplier > 7 {
			multiplier = 2
		}
	}

	expected := ""
	switch calculated := 11 - (sum % 11); calculated {
	case 11:
		expected = "0"
	case 10:
		expected = "K"
	default:
		expected = string(rune('0' + calculated))
	}

	return dv == expected
}
