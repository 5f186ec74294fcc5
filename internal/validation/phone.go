package validation

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// dialCodes maps ISO 3166-1 alpha-2 codes to their international dial code.
var dialCodes = map[string]string{
	"AE": "+971",
	"AR": "+54",
	"AU": "+61",
	"BD": "+880",
	"BR": "+55",
	"CA": "+1",
	"CH": "+41",
	"CN": "+86",
	"DE": "+49",
	"DZ": "+213",
	"EG": "+20",
	"ES": "+34",
	"FR": "+33",
	"GB": "+44",
	"GH": "+233",
	"ID": "+62",
	"IN": "+91",
	"IT": "+39",
	"JO": "+962",
	"JP": "+81",
	"KE": "+254",
	"KR": "+82",
	"KW": "+965",
	"LB": "+961",
	"MA": "+212",
	"MX": "+52",
	"NG": "+234",
	"NL": "+31",
	"PK": "+92",
	"PL": "+48",
	"QA": "+974",
	"RU": "+7",
	"SA": "+966",
	"SE": "+46",
	"TN": "+216",
	"TR": "+90",
	"UA": "+380",
	"US": "+1",
	"VN": "+84",
	"ZA": "+27",
}

// ValidatePhone cross-checks a dial code, ISO country code and national
// number against the country table and the libphonenumber metadata.
func ValidatePhone(dialCode, isoCode, number string) error {
	isoCode = strings.ToUpper(strings.TrimSpace(isoCode))
	dialCode = strings.TrimSpace(dialCode)
	if !strings.HasPrefix(dialCode, "+") {
		dialCode = "+" + dialCode
	}

	expected, ok := dialCodes[isoCode]
	if !ok {
		return fmt.Errorf("unsupported country code %q", isoCode)
	}
	if expected != dialCode {
		return fmt.Errorf("dial code %s does not belong to %s", dialCode, isoCode)
	}

	parsed, err := phonenumbers.Parse(number, isoCode)
	if err != nil {
		return fmt.Errorf("phone number could not be parsed: %w", err)
	}
	if fmt.Sprintf("+%d", parsed.GetCountryCode()) != dialCode {
		return fmt.Errorf("phone number does not match dial code %s", dialCode)
	}
	if !phonenumbers.IsValidNumberForRegion(parsed, isoCode) {
		return fmt.Errorf("phone number is not valid for %s", isoCode)
	}
	return nil
}
