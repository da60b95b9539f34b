package twittercards

import "strings"

// CardType identifies the kind of Twitter Card.
type CardType string

// CardType constants.
const (
	CardSummary           CardType = "summary"
	CardSummaryLargeImage CardType = "summary_large_image"
	CardPhoto             CardType = "photo"
	CardGallery           CardType = "gallery"
	CardApp               CardType = "app"
	CardPlayer            CardType = "player"
	CardProduct           CardType = "product"
)

// CardTypes returns every known card type.
func CardTypes() []CardType {
	return []CardType{
		CardSummary,
		CardSummaryLargeImage,
		CardPhoto,
		CardGallery,
		CardApp,
		CardPlayer,
		CardProduct,
	}
}

// Known reports whether t has an entry in the mandatory field table.
func (t CardType) Known() bool {
	_, ok := MandatoryFields(t)
	return ok
}

// MandatoryFields returns the normalized keys a card of type t must carry.
// The second result is false for unknown types. The returned slice is a
// fresh copy on every call.
func MandatoryFields(t CardType) ([]string, bool) {
	switch t {
	case CardSummary:
		return []string{"card", "site", "title", "description"}, true
	case CardSummaryLargeImage:
		return []string{"site", "title", "description"}, true
	case CardPhoto:
		return []string{"card", "site", "image", "description"}, true
	case CardGallery:
		return []string{"card", "site", "title", "image0", "image1", "image2", "image3"}, true
	case CardApp:
		return []string{"card", "site", "app_id_iphone", "app_id_ipad", "app_id_googleplay"}, true
	case CardPlayer:
		return []string{"card", "site", "title", "player", "player_width", "player_height", "image", "data1", "label1", "data2", "label2"}, true
	case CardProduct:
		return []string{"card", "site", "title", "description", "image", "data1", "label1", "data2", "label2"}, true
	}
	return nil, false
}

// Type returns the "card" property, or CardSummary when it is absent.
func (c *Card) Type() CardType {
	if v, ok := c.values["card"]; ok {
		return CardType(v)
	}
	return CardSummary
}

// Image returns the "image" property, falling back to "image_src".
func (c *Card) Image() (string, bool) {
	if v, ok := c.values["image"]; ok {
		return v, true
	}
	if v, ok := c.values["image_src"]; ok {
		return v, true
	}
	return "", false
}

// HasImage reports whether Image finds a value.
func (c *Card) HasImage() bool {
	_, ok := c.Image()
	return ok
}

// Is reports whether the card is of type t.
func (c *Card) Is(t CardType) bool {
	return c.Type() == t
}

func (c *Card) IsSummary() bool           { return c.Is(CardSummary) }
func (c *Card) IsSummaryLargeImage() bool { return c.Is(CardSummaryLargeImage) }
func (c *Card) IsPhoto() bool             { return c.Is(CardPhoto) }
func (c *Card) IsGallery() bool           { return c.Is(CardGallery) }
func (c *Card) IsApp() bool               { return c.Is(CardApp) }
func (c *Card) IsPlayer() bool            { return c.Is(CardPlayer) }
func (c *Card) IsProduct() bool           { return c.Is(CardProduct) }

// IsValid reports whether the card carries a non-empty value for every
// mandatory field of its type. Cards of unknown type are never valid.
func (c *Card) IsValid() bool {
	if !c.Type().Known() {
		return false
	}
	return len(c.MissingFields()) == 0
}

// MissingFields returns the mandatory fields of the card's type that are
// absent or empty, in table order. It returns nil for unknown types.
func (c *Card) MissingFields() []string {
	fields, _ := MandatoryFields(c.Type())
	var missing []string
	for _, f := range fields {
		if c.values[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate applies opts to an extraction result. A nil card reports ENOCARD.
// In strict mode a card failing IsValid reports EINVALID. The nil check
// always runs first so IsValid is never consulted without a card.
func Validate(card *Card, opts Options) error {
	if card == nil {
		return Errorf(ENOCARD, "no twitter card data found")
	}
	if !opts.Strict || card.IsValid() {
		return nil
	}
	if !card.Type().Known() {
		return Errorf(EINVALID, "unknown card type %q", card.Type())
	}
	return Errorf(EINVALID, "%s card missing mandatory fields: %s", card.Type(), strings.Join(card.MissingFields(), ", "))
}
