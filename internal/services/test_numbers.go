package services

// testPhoneOTPs pairs demo phone numbers with fixed codes. These numbers
// bypass code generation and delivery on both the send and verify paths so
// that store reviews and scripted demos stay deterministic. The table is
// checked before the generic path and must never grow to cover arbitrary
// numbers.
var testPhoneOTPs = map[string]string{
	"9167767684": "2308",
	"9004743487": "1234",
	"9321987654": "5678",
	"8080808080": "2468",
	"9765432109": "1357",
	"8596321470": "7890",
	"9223589450": "1234",
}

// testCodeFor looks up the override table by the normalized form first, then
// the raw input.
func testCodeFor(normalized, raw string) (string, bool) {
	if code, ok := testPhoneOTPs[normalized]; ok {
		return code, true
	}
	code, ok := testPhoneOTPs[raw]
	return code, ok
}
