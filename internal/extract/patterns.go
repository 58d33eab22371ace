package extract

import "regexp"

// Field patterns, compiled once. Each matcher scans whole normalized text
// and returns the first match; matchers are pure and safe for concurrent
// use.
var (
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern   = regexp.MustCompile(`(\+91[-\s]?)?[6-9][0-9]{9}`)
	panPattern     = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
	aadhaarPattern = regexp.MustCompile(`\b[0-9]{4}\s?[0-9]{4}\s?[0-9]{4}\b`)
	ifscPattern    = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)
	accountPattern = regexp.MustCompile(`\b[0-9]{9,18}\b`)
	nonDigit       = regexp.MustCompile(`[^0-9]`)
)

// MatchEmail returns the first email-shaped token in text, or "".
func MatchEmail(text string) string {
	return emailPattern.FindString(text)
}

// MatchPhone returns the first Indian mobile number in text as it appears,
// including any +91/91 prefix, or "".
func MatchPhone(text string) string {
	return phonePattern.FindString(text)
}

// MatchPAN returns the first PAN (5 letters, 4 digits, 1 letter) in text,
// or "".
func MatchPAN(text string) string {
	return panPattern.FindString(text)
}

// MatchAadhaar returns the first Aadhaar number in text as it appears,
// with any 4-4-4 spacing preserved, or "".
func MatchAadhaar(text string) string {
	return aadhaarPattern.FindString(text)
}

// MatchIFSC returns the first IFSC code in text, or "".
func MatchIFSC(text string) string {
	return ifscPattern.FindString(text)
}

// MatchAccountNumbers returns every standalone 9-18 digit run in text, in
// order of appearance.
func MatchAccountNumbers(text string) []string {
	return accountPattern.FindAllString(text, -1)
}

// DigitsOnly strips everything except 0-9.
func DigitsOnly(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// NormalizePhone reduces a phone match to its trailing 10 digits,
// dropping any country prefix and separators.
func NormalizePhone(match string) string {
	digits := DigitsOnly(match)
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}
