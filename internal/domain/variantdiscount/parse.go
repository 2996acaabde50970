package variantdiscount

import (
	"bytes"
	stdjson "encoding/json"
	"strings"

	ierr "github.com/hanahub/ab-discount-app/internal/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// VariantDiscountsField is the only field of the stored document this
// service reads
const VariantDiscountsField = "variantDiscounts"

// Parse strictly decodes a serialized configuration.
//
// An empty blob or a document without variantDiscounts is an empty
// configuration. Malformed JSON, a top-level value that is not an object and
// a variantDiscounts value that is not an object are parse errors. Entries
// that are not JSON numbers are dropped.
func Parse(raw string) (Configuration, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NewConfiguration(nil), nil
	}

	var document map[string]jsoniter.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &document); err != nil {
		return Configuration{}, ierr.WithError(err).
			WithHint("Discount configuration is not a JSON object").
			Mark(ierr.ErrParse)
	}
	if document == nil {
		return Configuration{}, ierr.NewError("discount configuration is null").
			WithHint("Discount configuration is not a JSON object").
			Mark(ierr.ErrParse)
	}

	rawDiscounts, ok := document[VariantDiscountsField]
	if !ok || isNull(rawDiscounts) {
		return NewConfiguration(nil), nil
	}

	var entries map[string]jsoniter.RawMessage
	if err := json.Unmarshal(rawDiscounts, &entries); err != nil {
		return Configuration{}, ierr.WithError(err).
			WithHintf("%s must map variant ids to percentages", VariantDiscountsField).
			Mark(ierr.ErrParse)
	}

	discounts := make(map[string]decimal.Decimal, len(entries))
	for variantID, value := range entries {
		percentage, ok := parseNumber(value)
		if !ok {
			continue
		}
		discounts[variantID] = percentage
	}

	return NewConfiguration(discounts), nil
}

// FromSubmittedValues builds a configuration from what the admin screen
// posts: numbers, numeric strings or empty strings keyed by variant id.
// Anything that does not read as a number is dropped.
func FromSubmittedValues(values map[string]stdjson.RawMessage) Configuration {
	discounts := make(map[string]decimal.Decimal, len(values))
	for variantID, value := range values {
		if percentage, ok := parseNumber(jsoniter.RawMessage(value)); ok {
			discounts[variantID] = percentage
			continue
		}

		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			continue
		}
		percentage, err := decimal.NewFromString(strings.TrimSpace(text))
		if err != nil {
			continue
		}
		discounts[variantID] = percentage
	}
	return NewConfiguration(discounts)
}

// Serialize renders the configuration in the stored document shape with
// percentages as JSON numbers and variant ids in lexical order
func (c Configuration) Serialize() (string, error) {
	entries := make(map[string]jsoniter.RawMessage, len(c.VariantDiscounts))
	for variantID, percentage := range c.VariantDiscounts {
		entries[variantID] = jsoniter.RawMessage(percentage.String())
	}

	out, err := json.Marshal(map[string]interface{}{
		VariantDiscountsField: entries,
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to serialize discount configuration").
			Mark(ierr.ErrSystem)
	}
	return string(out), nil
}

// parseNumber accepts only JSON number literals
func parseNumber(value jsoniter.RawMessage) (decimal.Decimal, bool) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return decimal.Zero, false
	}
	if c := trimmed[0]; c != '-' && (c < '0' || c > '9') {
		return decimal.Zero, false
	}

	percentage, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return decimal.Zero, false
	}
	return percentage, true
}

// isNull reports a JSON null, which jsoniter hands back as an empty raw
// message
func isNull(value jsoniter.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
