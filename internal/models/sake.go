// Package models holds the catalog and preference types shared by the
// catalog store, the matching engines, the questionnaire and the workers.
package models

// TempKey is a serving temperature.
type TempKey string

const (
	TempCold TempKey = "cold"
	TempRoom TempKey = "room"
	TempWarm TempKey = "warm"
)

// AllTempKeys lists the temperature enumeration in display order.
var AllTempKeys = []TempKey{TempCold, TempRoom, TempWarm}

var tempLabels = map[TempKey]string{
	TempCold: "冷やして",
	TempRoom: "常温",
	TempWarm: "燗",
}

// ParseTempKey accepts only the three known keys.
func ParseTempKey(s string) (TempKey, bool) {
	k := TempKey(s)
	return k, k.Valid()
}

func (k TempKey) Valid() bool {
	_, ok := tempLabels[k]
	return ok
}

// Label returns the display label, or the raw key when unknown.
func (k TempKey) Label() string {
	if l, ok := tempLabels[k]; ok {
		return l
	}
	return string(k)
}

// Purchase is the optional rakuten sub-record of a catalog item.
type Purchase struct {
	AffiliateURL string `json:"affiliate_url,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	ItemURL      string `json:"item_url,omitempty"`
	ItemCode     string `json:"item_code,omitempty"`
}

// URL resolves the purchase link: affiliate URL, else item URL, else "".
func (p *Purchase) URL() string {
	if p == nil {
		return ""
	}
	if p.AffiliateURL != "" {
		return p.AffiliateURL
	}
	return p.ItemURL
}

// CatalogItem is one sake record as served by the catalog endpoint.
// Items are never mutated after decoding.
type CatalogItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Brewery    string    `json:"brewery,omitempty"`
	Prefecture string    `json:"prefecture,omitempty"`
	StyleTags  []string  `json:"style_tags,omitempty"`
	TasteTags  []string  `json:"taste_tags,omitempty"`
	ServeTemp  []TempKey `json:"serve_temp,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Purchase   *Purchase `json:"rakuten,omitempty"`
	UpdatedAt  string    `json:"updated_at,omitempty"`
}

func (c CatalogItem) HasAffiliate() bool {
	return c.Purchase != nil && c.Purchase.AffiliateURL != ""
}

func (c CatalogItem) HasImage() bool {
	return c.Purchase != nil && c.Purchase.ImageURL != ""
}

func (c CatalogItem) ImageURL() string {
	if c.Purchase == nil {
		return ""
	}
	return c.Purchase.ImageURL
}

// PurchaseURL is empty when no purchase action is available.
func (c CatalogItem) PurchaseURL() string {
	return c.Purchase.URL()
}

// Tags returns style tags followed by taste tags, without duplicates.
func (c CatalogItem) Tags() []string {
	seen := make(map[string]struct{}, len(c.StyleTags)+len(c.TasteTags))
	out := make([]string, 0, len(c.StyleTags)+len(c.TasteTags))
	for _, group := range [][]string{c.StyleTags, c.TasteTags} {
		for _, t := range group {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// ServesAt reports whether k is one of the item's serving temperatures.
func (c CatalogItem) ServesAt(k TempKey) bool {
	for _, t := range c.ServeTemp {
		if t == k {
			return true
		}
	}
	return false
}

// FindItem returns the item with the given id.
func FindItem(items []CatalogItem, id string) (CatalogItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return CatalogItem{}, false
}
