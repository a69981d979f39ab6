package catalog

// DefaultPlaceholderImage is shown for records created without an image.
const DefaultPlaceholderImage = "https://images.unsplash.com/photo-1560743641-3914f2c45636?w=400"

// Record is one bouquet catalog entry. The JSON keys are the persisted format.
type Record struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty"`
	Purchased   bool    `json:"purchased" yaml:"purchased"`
	IsSold      bool    `json:"isSold" yaml:"isSold"`
	Size        string  `json:"size,omitempty" yaml:"size,omitempty"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// RecordInput is everything Create needs; the store mints the ID.
type RecordInput struct {
	Name        string
	Price       float64
	Image       string
	Purchased   bool
	Size        string
	Category    string
	Description string
}

// Patch carries a partial update. Nil fields keep their current value.
// IsSold is fixed at creation and cannot be patched.
type Patch struct {
	Name        *string
	Price       *float64
	Image       *string
	Purchased   *bool
	Size        *string
	Category    *string
	Description *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Image == nil && p.Purchased == nil &&
		p.Size == nil && p.Category == nil && p.Description == nil
}

func (p Patch) apply(r Record) Record {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	if p.Purchased != nil {
		r.Purchased = *p.Purchased
	}
	if p.Size != nil {
		r.Size = *p.Size
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	return r
}

// String, Float and Bool build Patch fields inline:
//
//	store.Update(id, catalog.Patch{Price: catalog.Float(5000)})
func String(v string) *string { return &v }

func Float(v float64) *float64 { return &v }

func Bool(v bool) *bool { return &v }
