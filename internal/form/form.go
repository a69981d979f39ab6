// Package form validates the add/edit bouquet form before anything reaches
// the catalog store. The store itself accepts whatever it is given.
package form

import (
	"errors"
	"strconv"
	"strings"

	"github.com/five82/bloom/internal/catalog"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrPriceRequired = errors.New("price is required")
)

// Presets are the category chips offered by the form. Free text is allowed too.
var Presets = []string{
	"Romantic",
	"Birthday",
	"Anniversary",
	"Congratulations",
	"Get Well Soon",
	"Wedding",
	"Funeral",
	"Custom",
}

// Fields holds the raw text a user typed into the form.
type Fields struct {
	Name        string
	Price       string
	Image       string
	Size        string
	Category    string
	Description string
	Purchased   bool
}

// Values is the validated, normalized form content.
type Values struct {
	Name        string
	Price       float64
	Image       string
	Size        string
	Category    string
	Description string
	Purchased   bool
}

// Validate trims every field and parses the price. Name and price must be
// present; a price that does not parse becomes 0 and negatives clamp to 0.
// An empty image is replaced by placeholder.
func Validate(f Fields, placeholder string) (Values, error) {
	name := strings.TrimSpace(f.Name)
	price := strings.TrimSpace(f.Price)

	var errs []error
	if name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if price == "" {
		errs = append(errs, ErrPriceRequired)
	}
	if len(errs) > 0 {
		return Values{}, errors.Join(errs...)
	}

	image := strings.TrimSpace(f.Image)
	if image == "" {
		image = placeholder
	}

	return Values{
		Name:        name,
		Price:       ParsePrice(price),
		Image:       image,
		Size:        strings.TrimSpace(f.Size),
		Category:    strings.TrimSpace(f.Category),
		Description: strings.TrimSpace(f.Description),
		Purchased:   f.Purchased,
	}, nil
}

// ParsePrice reads the leading decimal number in s, the way a browser's
// parseFloat does: "150000" is 150000, "12.5kg" is 12.5 and "150.000" is 150.
// Input with no leading number yields 0, as do negative values.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(s)

	end := 0
	seenDot, seenDigit := false, false
	for i, r := range s {
		if r >= '0' && r <= '9' {
			seenDigit = true
			end = i + 1
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			continue
		}
		if (r == '-' || r == '+') && i == 0 {
			continue
		}
		break
	}
	if !seenDigit {
		return 0
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Input converts validated values for catalog.Store.Create.
func (v Values) Input() catalog.RecordInput {
	return catalog.RecordInput{
		Name:        v.Name,
		Price:       v.Price,
		Image:       v.Image,
		Purchased:   v.Purchased,
		Size:        v.Size,
		Category:    v.Category,
		Description: v.Description,
	}
}

// Patch converts validated values for catalog.Store.Update. Every form field
// is written, matching a full form submit.
func (v Values) Patch() catalog.Patch {
	return catalog.Patch{
		Name:        catalog.String(v.Name),
		Price:       catalog.Float(v.Price),
		Image:       catalog.String(v.Image),
		Purchased:   catalog.Bool(v.Purchased),
		Size:        catalog.String(v.Size),
		Category:    catalog.String(v.Category),
		Description: catalog.String(v.Description),
	}
}

// FromRecord pre-fills the form for editing.
func FromRecord(r catalog.Record) Fields {
	return Fields{
		Name:        r.Name,
		Price:       strconv.FormatFloat(r.Price, 'f', -1, 64),
		Image:       r.Image,
		Size:        r.Size,
		Category:    r.Category,
		Description: r.Description,
		Purchased:   r.Purchased,
	}
}

// NextPreset cycles through Presets starting after current.
func NextPreset(current string) string {
	for i, p := range Presets {
		if strings.EqualFold(p, strings.TrimSpace(current)) {
			return Presets[(i+1)%len(Presets)]
		}
	}
	return Presets[0]
}
