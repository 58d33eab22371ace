package extract

import "strings"

// sectionHeaders end a multi-line address block. A line containing any of
// these (case-insensitive) belongs to the next section, not the address.
var sectionHeaders = []string{
	"bank details",
	"bank account",
	"ifsc",
	"emergency contact",
	"pan number",
	"aadhaar number",
	"candidate information",
}

// emergencyWindow is how many trimmed lines, anchor included, are scanned
// for the emergency contact's name and phone.
const emergencyWindow = 5

// lineRule inspects the trimmed-line view of a document and fills in the
// fields it is responsible for. Rules are evaluated in order and each one
// is independent of the others.
type lineRule func(lines []string, rec *Record)

// lineRules is the ordered heuristic list applied after whole-text
// pattern matching.
var lineRules = []lineRule{
	emergencyContactRule,
	candidateNameRule,
	addressRule,
}

// ExtractFields runs rule-based field extraction over one document's raw
// text. It is a pure function: every field is best-effort and resolves to
// nil when its pattern or label is absent, never aborting the rest of the
// pass.
func ExtractFields(text, sourceFileName string) Record {
	norm := NormalizeText(text)
	lines := SplitLines(norm)

	rec := Record{SourceFileName: sourceFileName}

	if m := MatchEmail(norm); m != "" {
		rec.Email = strPtr(m)
	}
	if m := MatchPhone(norm); m != "" {
		rec.Phone = strPtr(NormalizePhone(m))
	}
	if m := MatchPAN(norm); m != "" {
		rec.PAN = strPtr(m)
	}
	if m := MatchAadhaar(norm); m != "" {
		rec.Aadhaar = strPtr(m)
	}
	if m := MatchIFSC(norm); m != "" {
		rec.IFSC = strPtr(m)
	}
	if acct := firstBankAccount(norm, rec.Aadhaar); acct != "" {
		rec.BankAccount = strPtr(acct)
	}

	for _, rule := range lineRules {
		rule(lines, &rec)
	}

	return rec
}

// firstBankAccount returns the first standalone 9-18 digit run that is not
// a re-capture of the Aadhaar number. A candidate is skipped only when it
// equals the Aadhaar digit form exactly and is 12 digits long; any other
// collision is accepted as found.
func firstBankAccount(norm string, aadhaar *string) string {
	aadhaarDigits := ""
	if aadhaar != nil {
		aadhaarDigits = DigitsOnly(*aadhaar)
	}
	for _, digits := range MatchAccountNumbers(norm) {
		if digits == aadhaarDigits && len(digits) == 12 {
			continue
		}
		return digits
	}
	return ""
}

// labelValue extracts the value from a labeled line: the trimmed text
// after the first colon when one is present, otherwise the whole trimmed
// line.
func labelValue(line string) string {
	if idx := strings.Index(line, ":"); idx >= 0 {
		return strings.TrimSpace(line[idx+1:])
	}
	return strings.TrimSpace(line)
}

// emergencyContactRule locates the emergency contact block and pulls the
// contact's phone and name from a five-line window starting at the first
// line mentioning "emergency". Without such a line both fields stay nil.
func emergencyContactRule(lines []string, rec *Record) {
	start := -1
	for i, ln := range lines {
		if strings.Contains(strings.ToLower(ln), "emergency") {
			start = i
			break
		}
	}
	if start == -1 {
		return
	}

	end := start + emergencyWindow
	if end > len(lines) {
		end = len(lines)
	}
	block := lines[start:end]

	for _, ln := range block {
		if m := MatchPhone(ln); m != "" {
			rec.EmergencyContactPhone = strPtr(NormalizePhone(m))
			break
		}
	}
	for _, ln := range block {
		if strings.Contains(strings.ToLower(ln), "name") {
			rec.EmergencyContactName = strPtr(labelValue(ln))
			break
		}
	}
}

// candidateNameRule picks the first "name" line that is neither the
// father's name nor part of the emergency contact block.
func candidateNameRule(lines []string, rec *Record) {
	for _, ln := range lines {
		low := strings.ToLower(ln)
		if !strings.Contains(low, "name") {
			continue
		}
		if strings.Contains(low, "father") || strings.Contains(low, "emergency") {
			continue
		}
		rec.Name = strPtr(labelValue(ln))
		return
	}
}

// addressRule collects the multi-line address block: the remainder of the
// "address" line plus every following line up to, but not including, the
// next section header. Fragments are joined with ", ".
func addressRule(lines []string, rec *Record) {
	start := -1
	for i, ln := range lines {
		if strings.Contains(strings.ToLower(ln), "address") {
			start = i
			break
		}
	}
	if start == -1 {
		return
	}

	var fragments []string
	if idx := strings.Index(lines[start], ":"); idx >= 0 {
		if rest := strings.TrimSpace(lines[start][idx+1:]); rest != "" {
			fragments = append(fragments, rest)
		}
	}

	for _, ln := range lines[start+1:] {
		if isSectionHeader(ln) {
			break
		}
		fragments = append(fragments, ln)
	}

	if len(fragments) > 0 {
		rec.Address = strPtr(strings.Join(fragments, ", "))
	}
}

func isSectionHeader(line string) bool {
	low := strings.ToLower(line)
	for _, h := range sectionHeaders {
		if strings.Contains(low, h) {
			return true
		}
	}
	return false
}
