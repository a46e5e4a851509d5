package campaigns

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/toko-promo/internal/promo"
)

//go:embed defaults.json
var defaultsJSON []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load decodes and validates a campaigns document. Unknown fields are rejected.
func Load(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode campaigns: %w: %w", promo.ErrInvalidConfiguration, err)
	}
	if err := Validate(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// LoadFile loads a campaigns document from path.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open campaigns file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in production campaign tables.
func Default() (Document, error) {
	return Load(bytes.NewReader(defaultsJSON))
}

// Validate checks field constraints and that every descriptor carries exactly
// the sub-object matching its kind.
func Validate(doc Document) error {
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("validate campaigns: %w: %w", promo.ErrInvalidConfiguration, err)
	}
	for i, d := range doc.Campaigns {
		var set bool
		switch d.Kind {
		case promo.KindBogo:
			set = d.Bogo != nil
		case promo.KindSpendXGetY:
			set = d.SpendXGetY != nil
		case promo.KindTierReward:
			set = d.TierReward != nil
		case promo.KindBundle:
			set = d.Bundle != nil
		}
		if !set || d.variants() != 1 {
			return fmt.Errorf("campaign %d %q: kind %s needs exactly its own settings: %w", i, d.Name, d.Kind, promo.ErrInvalidConfiguration)
		}
	}
	return nil
}
