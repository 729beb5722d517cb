package inventory

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/types"
)

// Sentinel tokens bracketing the JSON payload at the start of a note.
// Both must match byte for byte for a block to be recognised.
const (
	NotePrefix = "[[INV_FIN]]"
	NoteSuffix = "[[/INV_FIN]]"

	// NoteVersion is the only payload version this package reads or writes.
	NoteVersion = 1

	// minPayloadLen is the shortest JSON object ("{}").
	minPayloadLen = 2
)

// notePayload is the wire form of FinancialMetadata.
// Field names are part of the persisted format.
type notePayload struct {
	V              json.RawMessage `json:"v"`
	PricingMode    json.RawMessage `json:"pricingMode"`
	BillingMode    json.RawMessage `json:"billingMode"`
	OperatorID     json.RawMessage `json:"operatorId"`
	SaleUnitPrice  wireAmount      `json:"saleUnitPrice"`
	SaleTotalPrice wireAmount      `json:"saleTotalPrice"`
	Taxable21      wireAmount      `json:"taxable21"`
	Taxable105     wireAmount      `json:"taxable105"`
	ExemptAmount   wireAmount      `json:"exemptAmount"`
	OtherTaxes     wireAmount      `json:"otherTaxes"`
	TransferFeePct wireAmount      `json:"transferFeePct"`
}

// wireAmount is written as a bare JSON number or null. On read it accepts
// numbers, numeric strings and anything else as null.
type wireAmount struct {
	types.OptionalMoney
}

func (a wireAmount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}

func (a *wireAmount) UnmarshalJSON(data []byte) error {
	v, ok := decodeLoose(data)
	if !ok {
		a.OptionalMoney = types.None()
		return nil
	}
	a.OptionalMoney = types.NormalizeMoney(v)
	return nil
}

// decodeLoose decodes a JSON value keeping numbers as json.Number.
func decodeLoose(data []byte) (any, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// EncodeNote embeds meta in front of the free text of a note.
//
// The text is trimmed. When meta is nil or carries no value the trimmed text
// is returned alone, and an empty result means the note should be stored as
// NULL. Otherwise the result is PREFIX<json>SUFFIX, followed by a newline and
// the text when the text is not empty.
func EncodeNote(text string, meta *FinancialMetadata) string {
	text = strings.TrimSpace(text)
	if meta == nil {
		return text
	}
	m := meta.Normalized()
	if !m.HasValue() {
		return text
	}

	body, err := json.Marshal(toPayload(m))
	if err != nil {
		return text
	}

	var b strings.Builder
	b.Grow(len(NotePrefix) + len(body) + len(NoteSuffix) + 1 + len(text))
	b.WriteString(NotePrefix)
	b.Write(body)
	b.WriteString(NoteSuffix)
	if text != "" {
		b.WriteByte('\n')
		b.WriteString(text)
	}
	return b.String()
}

// DecodeNote splits a note into its free text and embedded metadata.
//
// It never fails: a note without a recognisable block is returned verbatim
// as plain text with no metadata. A block of an unknown version is dropped
// and only the trimmed text after the suffix is kept.
func DecodeNote(note string) DecodedNote {
	plain := DecodedNote{Text: note}

	if !strings.HasPrefix(note, NotePrefix) {
		return plain
	}
	rest := note[len(NotePrefix):]
	end := strings.Index(rest, NoteSuffix)
	if end < minPayloadLen {
		return plain
	}
	payload := rest[:end]
	text := strings.TrimSpace(rest[end+len(NoteSuffix):])

	var p notePayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return plain
	}
	if !isVersion(p.V, NoteVersion) {
		return DecodedNote{Text: text}
	}

	meta := fromPayload(p)
	return DecodedNote{Text: text, Financial: &meta}
}

func toPayload(m FinancialMetadata) notePayload {
	operator := json.RawMessage("null")
	if m.OperatorID != nil {
		operator = json.RawMessage(decimal.NewFromInt(*m.OperatorID).String())
	}
	return notePayload{
		V:              json.RawMessage("1"),
		PricingMode:    quote(string(m.PricingMode)),
		BillingMode:    quote(string(m.BillingMode)),
		OperatorID:     operator,
		SaleUnitPrice:  wireAmount{m.SaleUnitPrice},
		SaleTotalPrice: wireAmount{m.SaleTotalPrice},
		Taxable21:      wireAmount{m.Taxable21},
		Taxable105:     wireAmount{m.Taxable105},
		ExemptAmount:   wireAmount{m.ExemptAmount},
		OtherTaxes:     wireAmount{m.OtherTaxes},
		TransferFeePct: wireAmount{m.TransferFeePercent},
	}
}

func fromPayload(p notePayload) FinancialMetadata {
	meta := FinancialMetadata{
		PricingMode:        PricingManual,
		BillingMode:        BillingAuto,
		OperatorID:         positiveInt(p.OperatorID),
		SaleUnitPrice:      p.SaleUnitPrice.OptionalMoney,
		SaleTotalPrice:     p.SaleTotalPrice.OptionalMoney,
		Taxable21:          p.Taxable21.OptionalMoney,
		Taxable105:         p.Taxable105.OptionalMoney,
		ExemptAmount:       p.ExemptAmount.OptionalMoney,
		OtherTaxes:         p.OtherTaxes.OptionalMoney,
		TransferFeePercent: p.TransferFeePct.OptionalMoney,
	}
	if literal(p.PricingMode) == string(PricingTotalSale) {
		meta.PricingMode = PricingTotalSale
	}
	if literal(p.BillingMode) == string(BillingManual) {
		meta.BillingMode = BillingManual
	}
	return meta
}

// isVersion accepts only a JSON number equal to want.
func isVersion(raw json.RawMessage, want int64) bool {
	v, ok := decodeLoose(raw)
	if !ok {
		return false
	}
	n, ok := v.(json.Number)
	if !ok {
		return false
	}
	d, err := types.NewMoneyFromString(string(n))
	if err != nil {
		return false
	}
	return d.Equal(decimal.NewFromInt(want))
}

// positiveInt reads a positive integer from a number or numeric string.
func positiveInt(raw json.RawMessage) *int64 {
	v, ok := decodeLoose(raw)
	if !ok {
		return nil
	}
	var s string
	switch x := v.(type) {
	case json.Number:
		s = string(x)
	case string:
		s = strings.TrimSpace(x)
	default:
		return nil
	}
	d, err := types.NewMoneyFromString(s)
	if err != nil || !d.IsInteger() || !d.IsPositive() || !d.BigInt().IsInt64() {
		return nil
	}
	n := d.IntPart()
	return &n
}

func literal(raw json.RawMessage) string {
	v, ok := decodeLoose(raw)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func quote(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
