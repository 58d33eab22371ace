package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `Candidate Information
Name: Jane Doe
Father's Name: Richard Doe
Address: 12 MG Road
Indiranagar
Bangalore 560038
Bank Details
Account Number: 12345678901234
IFSC: HDFC0001234
PAN Number: ABCDE1234F
Aadhaar Number: 1234 5678 9012
Email: jane.doe@example.com
Phone: +91-9876543210
Emergency Contact
Name: John Smith
Phone: 9123456789`

func TestExtractFieldsSampleDocument(t *testing.T) {
	rec := ExtractFields(sampleDocument, "jane_doe.pdf")

	require.Equal(t, "jane_doe.pdf", rec.SourceFileName)

	require.NotNil(t, rec.Name)
	assert.Equal(t, "Jane Doe", *rec.Name)

	require.NotNil(t, rec.Email)
	assert.Equal(t, "jane.doe@example.com", *rec.Email)

	require.NotNil(t, rec.Phone)
	assert.Equal(t, "9876543210", *rec.Phone)

	require.NotNil(t, rec.PAN)
	assert.Equal(t, "ABCDE1234F", *rec.PAN)

	require.NotNil(t, rec.Aadhaar)
	assert.Equal(t, "1234 5678 9012", *rec.Aadhaar)

	require.NotNil(t, rec.Address)
	assert.Equal(t, "12 MG Road, Indiranagar, Bangalore 560038", *rec.Address)

	require.NotNil(t, rec.BankAccount)
	assert.Equal(t, "12345678901234", *rec.BankAccount)

	require.NotNil(t, rec.IFSC)
	assert.Equal(t, "HDFC0001234", *rec.IFSC)

	require.NotNil(t, rec.EmergencyContactName)
	assert.Equal(t, "John Smith", *rec.EmergencyContactName)

	require.NotNil(t, rec.EmergencyContactPhone)
	assert.Equal(t, "9123456789", *rec.EmergencyContactPhone)
}

func TestExtractFieldsEmptyText(t *testing.T) {
	rec := ExtractFields("", "empty.pdf")

	assert.Equal(t, "empty.pdf", rec.SourceFileName)
	assert.Nil(t, rec.Name)
	assert.Nil(t, rec.Email)
	assert.Nil(t, rec.Phone)
	assert.Nil(t, rec.PAN)
	assert.Nil(t, rec.Aadhaar)
	assert.Nil(t, rec.Address)
	assert.Nil(t, rec.BankAccount)
	assert.Nil(t, rec.IFSC)
	assert.Nil(t, rec.EmergencyContactName)
	assert.Nil(t, rec.EmergencyContactPhone)
}

func TestExtractFieldsIdempotent(t *testing.T) {
	first := ExtractFields(sampleDocument, "jane_doe.pdf")
	second := ExtractFields(sampleDocument, "jane_doe.pdf")
	assert.Equal(t, first, second)
}

func TestExtractFieldsMissingFieldDoesNotAffectOthers(t *testing.T) {
	// No email, no PAN, no bank section; everything else still resolves.
	text := "Name: Jane Doe\nPhone: 9876543210"
	rec := ExtractFields(text, "partial.pdf")

	assert.Nil(t, rec.Email)
	assert.Nil(t, rec.PAN)
	assert.Nil(t, rec.Aadhaar)
	assert.Nil(t, rec.IFSC)
	assert.Nil(t, rec.Address)
	require.NotNil(t, rec.Name)
	assert.Equal(t, "Jane Doe", *rec.Name)
	require.NotNil(t, rec.Phone)
	assert.Equal(t, "9876543210", *rec.Phone)
}

func TestBankAccountSkipsAadhaarCollision(t *testing.T) {
	// A single ungrouped 12-digit number matches both the Aadhaar and the
	// generic account pattern; the account candidate must be skipped.
	rec := ExtractFields("ID: 123456789012", "collision.pdf")

	require.NotNil(t, rec.Aadhaar)
	assert.Equal(t, "123456789012", *rec.Aadhaar)
	assert.Nil(t, rec.BankAccount)
}

func TestBankAccountSkipOnlyOnExactAadhaarMatch(t *testing.T) {
	// The 12-digit Aadhaar is skipped, the separate 11-digit run is not.
	text := "Aadhaar: 123456789012\nAccount: 12345678901"
	rec := ExtractFields(text, "both.pdf")

	require.NotNil(t, rec.Aadhaar)
	assert.Equal(t, "123456789012", *rec.Aadhaar)
	require.NotNil(t, rec.BankAccount)
	assert.Equal(t, "12345678901", *rec.BankAccount)
}

func TestBankAccountGroupedAadhaarNotRecaptured(t *testing.T) {
	// A 4-4-4 grouped Aadhaar has no 9+ digit run, so the only account
	// candidate is the real account number.
	text := "Aadhaar: 1234 5678 9012\nAccount: 123456789012345"
	rec := ExtractFields(text, "grouped.pdf")

	require.NotNil(t, rec.BankAccount)
	assert.Equal(t, "123456789012345", *rec.BankAccount)
}

func TestBankAccountNilWhenNoCandidates(t *testing.T) {
	rec := ExtractFields("no digits of note here", "none.pdf")
	assert.Nil(t, rec.BankAccount)
}

func TestCandidateNameRule(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  *string
	}{
		{
			name:  "colon value",
			lines: []string{"Name: Jane Doe"},
			want:  strPtr("Jane Doe"),
		},
		{
			name:  "father line skipped",
			lines: []string{"Father's Name: Richard Doe", "Name: Jane Doe"},
			want:  strPtr("Jane Doe"),
		},
		{
			name:  "emergency line skipped",
			lines: []string{"Emergency Contact Name: John Smith", "Name: Jane Doe"},
			want:  strPtr("Jane Doe"),
		},
		{
			name:  "no colon keeps whole line",
			lines: []string{"Candidate Name"},
			want:  strPtr("Candidate Name"),
		},
		{
			name:  "no name line",
			lines: []string{"Address: somewhere"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{}
			candidateNameRule(tt.lines, &rec)
			assert.Equal(t, tt.want, rec.Name)
		})
	}
}

func TestEmergencyContactRule(t *testing.T) {
	lines := SplitLines("Emergency Contact\nName: John Smith\nPhone: 9876543210")
	rec := Record{}
	emergencyContactRule(lines, &rec)

	require.NotNil(t, rec.EmergencyContactName)
	assert.Equal(t, "John Smith", *rec.EmergencyContactName)
	require.NotNil(t, rec.EmergencyContactPhone)
	assert.Equal(t, "9876543210", *rec.EmergencyContactPhone)
}

func TestEmergencyContactWindowIsFiveLines(t *testing.T) {
	// The name on the sixth line after the anchor falls outside the
	// five-line window (anchor plus four).
	lines := []string{
		"Emergency Contact",
		"relationship: brother",
		"city: Pune",
		"state: Maharashtra",
		"country: India",
		"Name: Too Far Away",
	}
	rec := Record{}
	emergencyContactRule(lines, &rec)

	assert.Nil(t, rec.EmergencyContactName)
	assert.Nil(t, rec.EmergencyContactPhone)
}

func TestEmergencyContactAbsent(t *testing.T) {
	rec := Record{}
	emergencyContactRule([]string{"Name: Jane Doe", "Phone: 9876543210"}, &rec)

	assert.Nil(t, rec.EmergencyContactName)
	assert.Nil(t, rec.EmergencyContactPhone)
}

func TestEmergencyContactWindowClampedAtEnd(t *testing.T) {
	lines := []string{"Emergency Contact: 9123456789"}
	rec := Record{}
	emergencyContactRule(lines, &rec)

	require.NotNil(t, rec.EmergencyContactPhone)
	assert.Equal(t, "9123456789", *rec.EmergencyContactPhone)
}

func TestAddressRule(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{
			name: "stops before section header",
			text: "Address: 12 MG Road\nBangalore\nBank Details",
			want: strPtr("12 MG Road, Bangalore"),
		},
		{
			name: "label only on first line",
			text: "Address\n42 Park Street\nKolkata\nIFSC: SBIN0001234",
			want: strPtr("42 Park Street, Kolkata"),
		},
		{
			name: "empty text after colon ignored",
			text: "Address:\nMumbai\nEmergency Contact",
			want: strPtr("Mumbai"),
		},
		{
			name: "runs to end of document without header",
			text: "Address: 7 Lake View\nChennai",
			want: strPtr("7 Lake View, Chennai"),
		},
		{
			name: "no address line",
			text: "Name: Jane Doe",
			want: nil,
		},
		{
			name: "header immediately after label yields nil",
			text: "Address:\nBank Details",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{}
			addressRule(SplitLines(tt.text), &rec)
			assert.Equal(t, tt.want, rec.Address)
		})
	}
}

func TestPhoneDigitsCanShadowBankAccount(t *testing.T) {
	// Known heuristic limit: a bare 10-digit phone earlier in the text is
	// a valid 9-18 digit run and wins the bank account scan.
	text := "Phone: 9876543210\nAccount: 12345678901234"
	rec := ExtractFields(text, "shadow.pdf")

	require.NotNil(t, rec.BankAccount)
	assert.Equal(t, "9876543210", *rec.BankAccount)
}

func TestRecordValuesOrder(t *testing.T) {
	rec := Record{
		Name:           strPtr("Jane Doe"),
		Email:          strPtr("jane@example.com"),
		SourceFileName: "jane.pdf",
	}
	vals := rec.Values()

	require.Len(t, vals, 11)
	assert.Equal(t, "Jane Doe", vals[0])
	assert.Equal(t, "jane@example.com", vals[1])
	assert.Equal(t, "", vals[2]) // nil phone renders empty
	assert.Equal(t, "jane.pdf", vals[10])
}
