package extract

// Record holds the structured fields pulled from one candidate document.
// Every field except SourceFileName is optional; a nil pointer means the
// pattern or label was absent from the document text.
type Record struct {
	Name                  *string `json:"name"`
	Email                 *string `json:"email"`
	Phone                 *string `json:"phone"`
	PAN                   *string `json:"pan"`
	Aadhaar               *string `json:"aadhaar"`
	Address               *string `json:"address"`
	BankAccount           *string `json:"bank_account"`
	IFSC                  *string `json:"ifsc"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	SourceFileName        string  `json:"source_file_name"`
}

// Values returns the record's fields in the fixed presentation order:
// name, email, phone, pan, aadhaar, address, bank_account, ifsc,
// emergency_contact_name, emergency_contact_phone, source_file_name.
// Nil fields render as empty strings.
func (r *Record) Values() []string {
	return []string{
		deref(r.Name),
		deref(r.Email),
		deref(r.Phone),
		deref(r.PAN),
		deref(r.Aadhaar),
		deref(r.Address),
		deref(r.BankAccount),
		deref(r.IFSC),
		deref(r.EmergencyContactName),
		deref(r.EmergencyContactPhone),
		r.SourceFileName,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
