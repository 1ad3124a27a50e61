package valueobjects

// FieldValidity carries validity flags computed by the field-level validators
// that sit outside this module. The renderer never consults them; they travel
// with the header so callers and bundles keep them together.
type FieldValidity struct {
	SSIC           bool `json:"ssic"`
	OriginatorCode bool `json:"originator_code"`
	Date           bool `json:"date"`
	From           bool `json:"from"`
	To             bool `json:"to"`
	Subject        bool `json:"subject"`
}

// AllValid reports whether every flag is set
func (v FieldValidity) AllValid() bool {
	return v.SSIC && v.OriginatorCode && v.Date && v.From && v.To && v.Subject
}

// Letterhead is the centered title block at the top of the first page
type Letterhead struct {
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty" validate:"max=4"`
}

// Signature is the signer block that closes the letter
type Signature struct {
	Name       string `json:"name"`
	Delegation string `json:"delegation,omitempty"`
}

// LetterHeader holds the header fields of a letter. Values arrive already
// validated and the date already normalized.
type LetterHeader struct {
	Letterhead     Letterhead    `json:"letterhead"`
	SSIC           string        `json:"ssic" validate:"max=16"`
	OriginatorCode string        `json:"originator_code" validate:"max=64"`
	Date           string        `json:"date" validate:"max=32"`
	From           string        `json:"from"`
	To             string        `json:"to"`
	Subject        string        `json:"subject"`
	Signature      Signature     `json:"signature"`
	Validity       FieldValidity `json:"validity"`
}
