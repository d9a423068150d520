package filters

import (
	"context"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/whatsbygo/whatsbygo/types"
)

// Type matches messages of any of the given types.
func Type(mts ...types.MessageType) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return lo.Contains(mts, m.Type)
	}
}

var (
	// Text matches all text messages.
	Text = Type(types.MessageTypeText)
	// Image matches all image messages.
	Image = Type(types.MessageTypeImage)
	// Video matches all video messages.
	Video = Type(types.MessageTypeVideo)
	// Audio matches all audio messages (voice notes and audio files).
	Audio = Type(types.MessageTypeAudio)
	// Document matches all document messages.
	Document = Type(types.MessageTypeDocument)
	// Sticker matches all sticker messages.
	Sticker = Type(types.MessageTypeSticker)
	// Location matches all location messages.
	Location = Type(types.MessageTypeLocation)
	// Contacts matches all shared-contact messages.
	Contacts = Type(types.MessageTypeContacts)
	// Order matches all order messages.
	Order = Type(types.MessageTypeOrder)
	// Unsupported matches messages the platform could not represent.
	Unsupported = Type(types.MessageTypeUnsupported)
	// Media matches any message carrying a media attachment.
	Media = Type(
		types.MessageTypeImage,
		types.MessageTypeVideo,
		types.MessageTypeAudio,
		types.MessageTypeDocument,
		types.MessageTypeSticker,
	)
)

// Forwarded matches forwarded messages.
func Forwarded(_ context.Context, m *types.Message) bool {
	return m.Forwarded
}

// ForwardedManyTimes matches messages forwarded many times.
func ForwardedManyTimes(_ context.Context, m *types.Message) bool {
	return m.ForwardedManyTimes
}

// IsReply matches messages that reply to another message.
func IsReply(_ context.Context, m *types.Message) bool {
	return m.ReplyToMessageID != ""
}

// HasReferredProduct matches messages asking about a catalog product.
func HasReferredProduct(_ context.Context, m *types.Message) bool {
	return m.ReferredProduct != nil
}

// HasCaption matches media messages that carry a caption.
func HasCaption(_ context.Context, m *types.Message) bool {
	return m.Caption() != ""
}

var nonDigits = regexp.MustCompile(`\D`)

// FromUsers matches updates sent by any of the given numbers. Numbers are
// normalized to digits before comparison.
func FromUsers(numbers ...string) MessageFilter {
	normalized := lo.Map(numbers, func(n string, _ int) string {
		return nonDigits.ReplaceAllString(n, "")
	})
	return func(_ context.Context, m *types.Message) bool {
		return lo.Contains(normalized, m.From.WaID)
	}
}

// FromCountries matches updates whose sender number starts with any of the
// given country-code prefixes.
func FromCountries(prefixes ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return lo.SomeBy(prefixes, func(p string) bool {
			return strings.HasPrefix(m.From.WaID, p)
		})
	}
}

// SentTo matches updates delivered to the given business phone number ID.
// Useful when one webhook serves several numbers.
func SentTo(phoneNumberID string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return m.Metadata.PhoneNumberID == phoneNumberID
	}
}

// TextMatches matches text messages equal to any of the given strings.
func TextMatches(matches ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return m.Type == types.MessageTypeText && lo.Contains(matches, m.Text)
	}
}

// TextMatchesFold is TextMatches with case-insensitive comparison.
func TextMatchesFold(matches ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return m.Type == types.MessageTypeText && lo.SomeBy(matches, func(s string) bool {
			return strings.EqualFold(s, m.Text)
		})
	}
}

// TextContains matches text messages containing any of the given substrings.
func TextContains(subs ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return m.Type == types.MessageTypeText && lo.SomeBy(subs, func(s string) bool {
			return strings.Contains(m.Text, s)
		})
	}
}

// TextContainsFold is TextContains with case-insensitive comparison.
func TextContainsFold(subs ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		if m.Type != types.MessageTypeText {
			return false
		}
		text := strings.ToLower(m.Text)
		return lo.SomeBy(subs, func(s string) bool {
			return strings.Contains(text, strings.ToLower(s))
		})
	}
}

// TextStartsWith matches text messages starting with any of the given
// prefixes.
func TextStartsWith(prefixes ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return m.Type == types.MessageTypeText && lo.SomeBy(prefixes, func(p string) bool {
			return strings.HasPrefix(m.Text, p)
		})
	}
}

// TextEndsWith matches text messages ending with any of the given suffixes.
func TextEndsWith(suffixes ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return m.Type == types.MessageTypeText && lo.SomeBy(suffixes, func(s string) bool {
			return strings.HasSuffix(m.Text, s)
		})
	}
}

// TextRegex matches text messages matching any of the given patterns.
// Patterns are compiled at construction; invalid patterns panic at
// registration time.
func TextRegex(patterns ...string) MessageFilter {
	compiled := lo.Map(patterns, func(p string, _ int) *regexp.Regexp {
		return regexp.MustCompile(p)
	})
	return func(_ context.Context, m *types.Message) bool {
		return m.Type == types.MessageTypeText && lo.SomeBy(compiled, func(re *regexp.Regexp) bool {
			return re.MatchString(m.Text)
		})
	}
}

// LengthRange is an inclusive [Min, Max] text length range.
type LengthRange struct {
	Min, Max int
}

// TextLength matches text messages whose length falls in any of the given
// ranges.
func TextLength(ranges ...LengthRange) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		if m.Type != types.MessageTypeText {
			return false
		}
		n := len(m.Text)
		return lo.SomeBy(ranges, func(r LengthRange) bool {
			return r.Min <= n && n <= r.Max
		})
	}
}

const commandPrefixes = "/!"

// IsCommand matches text messages starting with a command prefix ("/" or "!").
func IsCommand(_ context.Context, m *types.Message) bool {
	return m.Type == types.MessageTypeText && len(m.Text) > 0 &&
		strings.ContainsRune(commandPrefixes, rune(m.Text[0]))
}

// TextCommand matches text messages invoking any of the given commands, e.g.
// TextCommand("start") matches "/start" and "!start arg".
func TextCommand(cmds ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		if m.Type != types.MessageTypeText || len(m.Text) < 2 {
			return false
		}
		if !strings.ContainsRune(commandPrefixes, rune(m.Text[0])) {
			return false
		}
		rest := m.Text[1:]
		return lo.SomeBy(cmds, func(c string) bool {
			return strings.HasPrefix(rest, c)
		})
	}
}

// MimeTypes matches media messages whose attachment has any of the given
// mime types.
func MimeTypes(mimetypes ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		media := m.Media()
		return media != nil && lo.Contains(mimetypes, media.MimeType)
	}
}

// AudioVoice matches audio messages that are voice notes.
func AudioVoice(_ context.Context, m *types.Message) bool {
	return m.Type == types.MessageTypeAudio && m.Audio != nil && m.Audio.Voice
}

// AudioFile matches audio messages that are regular audio files.
func AudioFile(_ context.Context, m *types.Message) bool {
	return m.Type == types.MessageTypeAudio && m.Audio != nil && !m.Audio.Voice
}

// StickerAnimated matches animated stickers.
func StickerAnimated(_ context.Context, m *types.Message) bool {
	return m.Type == types.MessageTypeSticker && m.Sticker != nil && m.Sticker.Animated
}

// StickerStatic matches static stickers.
func StickerStatic(_ context.Context, m *types.Message) bool {
	return m.Type == types.MessageTypeSticker && m.Sticker != nil && !m.Sticker.Animated
}

// ReactionAdded matches reactions that were added.
func ReactionAdded(_ context.Context, m *types.Message) bool {
	return m.Type == types.MessageTypeReaction && m.Reaction != nil && !m.Reaction.IsRemoved()
}

// ReactionRemoved matches reactions that were withdrawn.
func ReactionRemoved(_ context.Context, m *types.Message) bool {
	return m.Type == types.MessageTypeReaction && m.Reaction != nil && m.Reaction.IsRemoved()
}

// ReactionEmojis matches reactions with any of the given emojis.
func ReactionEmojis(emojis ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return m.Type == types.MessageTypeReaction && m.Reaction != nil &&
			lo.Contains(emojis, m.Reaction.Emoji)
	}
}

// LocationCurrent matches live locations (shared position, not a named place).
func LocationCurrent(_ context.Context, m *types.Message) bool {
	return m.Type == types.MessageTypeLocation && m.Location != nil && m.Location.IsCurrent()
}

// LocationInRadius matches locations within radiusKm kilometers of the given
// point.
func LocationInRadius(lat, lon, radiusKm float64) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		return m.Type == types.MessageTypeLocation && m.Location != nil &&
			m.Location.InRadius(lat, lon, radiusKm)
	}
}

// ContactsCount matches contact messages sharing between min and max cards.
func ContactsCount(min, max int) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		n := len(m.Contacts)
		return m.Type == types.MessageTypeContacts && min <= n && n <= max
	}
}

// ContactsHaveWhatsApp matches contact messages where at least one shared
// phone has a WhatsApp account.
func ContactsHaveWhatsApp(_ context.Context, m *types.Message) bool {
	if m.Type != types.MessageTypeContacts {
		return false
	}
	return lo.SomeBy(m.Contacts, func(c types.Contact) bool {
		return lo.SomeBy(c.Phones, func(p types.ContactPhone) bool {
			return p.WaID != ""
		})
	})
}

// ContactsPhones matches contact messages sharing any of the given phone
// numbers. Numbers are normalized to digits before comparison.
func ContactsPhones(phones ...string) MessageFilter {
	normalized := lo.Map(phones, func(p string, _ int) string {
		return nonDigits.ReplaceAllString(p, "")
	})
	return func(_ context.Context, m *types.Message) bool {
		if m.Type != types.MessageTypeContacts {
			return false
		}
		return lo.SomeBy(m.Contacts, func(c types.Contact) bool {
			return lo.SomeBy(c.Phones, func(p types.ContactPhone) bool {
				return lo.Contains(normalized, nonDigits.ReplaceAllString(p.Phone, ""))
			})
		})
	}
}

// OrderPrice matches orders whose total price falls between min and max.
func OrderPrice(min, max float64) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		if m.Type != types.MessageTypeOrder || m.Order == nil {
			return false
		}
		total := m.Order.TotalPrice()
		return min <= total && total <= max
	}
}

// OrderCount matches orders with between min and max line items.
func OrderCount(min, max int) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		if m.Type != types.MessageTypeOrder || m.Order == nil {
			return false
		}
		n := len(m.Order.Products)
		return min <= n && n <= max
	}
}

// OrderHasProducts matches orders containing any of the given SKUs.
func OrderHasProducts(skus ...string) MessageFilter {
	return func(_ context.Context, m *types.Message) bool {
		if m.Type != types.MessageTypeOrder || m.Order == nil {
			return false
		}
		return lo.SomeBy(m.Order.Products, func(p types.OrderProduct) bool {
			return lo.Contains(skus, p.SKU)
		})
	}
}
