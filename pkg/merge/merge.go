package merge

import (
	"sort"

	"kartvizit.link/models"
	"kartvizit.link/pkg/cardfields"
	"kartvizit.link/pkg/ownership"
)

// Merge motoru: firma şablonu + (opsiyonel) seçili kartı tek bir çözülmüş
// görünüm modeline indirger. Önizleme, public kart sayfası, vCard ve
// wallet projeksiyonu hep bu modeli tüketir.

// MergeError merge düzeyindeki hatalar için tipli hata.
type MergeError string

func (e MergeError) Error() string { return string(e) }

// ErrMissingTemplate şablon olmadan çözümleme istendiğinde döner.
const ErrMissingTemplate MergeError = "firma şablonu olmadan kart çözümlenemez"

// Statik son çare değerleri: kartta da şablonda da değer yoksa bunlar geçer.
const (
	DefaultBackgroundColor  = "#FFFFFF"
	DefaultNameTextColor    = "#1F2937"
	DefaultCompanyTextColor = "#6B7280"

	DefaultSaveContactLabel   = "Save contact"
	DefaultSaveContactLabelDE = "Kontakt speichern"
	DefaultWalletLabel        = "Add to Wallet"
	DefaultWalletLabelDE      = "Zur Wallet hinzufügen"
)

// Input çözümleme girdisidir. Card nil ise şablon önizlemesi üretilir.
type Input struct {
	CompanyName    string
	Template       *models.Template
	Card           *models.Card
	Entries        []models.ContactEntry
	HiddenEntryIDs map[uint]bool // bu kart için gizlenen firma varsayılanları
}

// ResolvedEntry çözülmüş tek bir iletişim kaydıdır. Renkler nihaidir:
// kayıt rengi doluysa o, değilse şablonun tür rengi yazılır.
type ResolvedEntry struct {
	ID              uint            `json:"id"`
	Scope           ownership.Scope `json:"scope"`
	ListType        string          `json:"list_type"`
	Label           string          `json:"label"`
	LabelDE         string          `json:"label_de"`
	Value           string          `json:"value"`
	Note            string          `json:"note,omitempty"`
	TextColor       string          `json:"text_color"`
	BackgroundColor string          `json:"background_color"`
	// IsSample sunum amaçlı yer tutucudur, asla persist edilmez.
	IsSample bool `json:"is_sample,omitempty"`
}

// ResolvedCard merge motorunun çıktısıdır; hiçbir zaman persist edilmez.
// *_de ikizleri burada ayrı durur, dil seçimi Localize ile sunumda yapılır.
type ResolvedCard struct {
	CompanyName string `json:"company_name"`
	SerialCode  string `json:"serial_code,omitempty"`
	LinkKey     string `json:"link_key,omitempty"`

	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Title        string `json:"title"`
	TitleDE      string `json:"title_de"`
	Position     string `json:"position"`
	PositionDE   string `json:"position_de"`
	Department   string `json:"department"`
	DepartmentDE string `json:"department_de"`

	Email           string `json:"email"`
	ProfileImageURL string `json:"profile_image_url"`

	BackgroundColor  string `json:"background_color"`
	NameTextColor    string `json:"name_text_color"`
	CompanyTextColor string `json:"company_text_color"`
	BannerURL        string `json:"banner_url"`

	SaveContactLabel   string `json:"save_contact_label"`
	SaveContactLabelDE string `json:"save_contact_label_de"`
	WalletLabel        string `json:"wallet_label"`
	WalletLabelDE      string `json:"wallet_label_de"`

	WalletBgColor   string `json:"wallet_bg_color"`
	WalletTextColor string `json:"wallet_text_color"`
	WalletLogoURL   string `json:"wallet_logo_url"`

	Lists        map[string][]ResolvedEntry `json:"lists"`
	SectionOrder []string                   `json:"section_order"`
}

// Resolve şablon ve kartı tek bir görünüm modelinde birleştirir.
//
// Skaler alanlarda kart değeri doluysa kazanır, değilse şablon, o da boşsa
// statik varsayılan. Listelerde karta özel kayıtlar ekleme sırasıyla önce
// gelir, ardından gizlenmemiş firma varsayılanları eklenir. Aynı türde kart
// kaydı ve firma varsayılanı yan yana yaşayabilir; motor tekilleştirme
// yapmaz (gözlemlenen davranış korunur).
func Resolve(in Input) (*ResolvedCard, error) {
	if in.Template == nil {
		return nil, ErrMissingTemplate
	}
	tpl := in.Template

	resolved := &ResolvedCard{
		CompanyName: in.CompanyName,

		BackgroundColor:  firstNonEmpty(cardScalar(in.Card, func(d *models.CardDetail) string { return d.BackgroundColor }), tpl.BackgroundColor, DefaultBackgroundColor),
		NameTextColor:    firstNonEmpty(cardScalar(in.Card, func(d *models.CardDetail) string { return d.NameTextColor }), tpl.NameTextColor, DefaultNameTextColor),
		CompanyTextColor: firstNonEmpty(cardScalar(in.Card, func(d *models.CardDetail) string { return d.CompanyTextColor }), tpl.CompanyTextColor, DefaultCompanyTextColor),
		BannerURL:        firstNonEmpty(cardScalar(in.Card, func(d *models.CardDetail) string { return d.BannerURL }), tpl.BannerURL),

		SaveContactLabel:   firstNonEmpty(tpl.SaveContactLabel, DefaultSaveContactLabel),
		SaveContactLabelDE: firstNonEmpty(tpl.SaveContactLabelDE, DefaultSaveContactLabelDE),
		WalletLabel:        firstNonEmpty(tpl.WalletLabel, DefaultWalletLabel),
		WalletLabelDE:      firstNonEmpty(tpl.WalletLabelDE, DefaultWalletLabelDE),

		WalletBgColor:   firstNonEmpty(tpl.WalletBgColor, tpl.BackgroundColor, DefaultBackgroundColor),
		WalletTextColor: firstNonEmpty(tpl.WalletTextColor, tpl.NameTextColor, DefaultNameTextColor),
		WalletLogoURL:   tpl.WalletLogoURL,

		Lists: make(map[string][]ResolvedEntry, len(cardfields.ListTypes)),
	}

	if in.Card != nil {
		d := in.Card.Detail
		resolved.SerialCode = in.Card.SerialCode
		resolved.LinkKey = in.Card.LinkKey
		resolved.FirstName = d.FirstName
		resolved.LastName = d.LastName
		resolved.Title = d.Title
		resolved.TitleDE = d.TitleDE
		resolved.Position = d.Position
		resolved.PositionDE = d.PositionDE
		resolved.Department = d.Department
		resolved.DepartmentDE = d.DepartmentDE
		resolved.Email = d.Email
		resolved.ProfileImageURL = d.ProfileImageURL
	}

	for _, listType := range cardfields.ListTypes {
		resolved.Lists[listType] = mergeList(listType, in, tpl)
	}

	if len(tpl.SectionOrder) > 0 && cardfields.IsValidSectionOrder(tpl.SectionOrder) {
		resolved.SectionOrder = append([]string(nil), tpl.SectionOrder...)
	} else {
		resolved.SectionOrder = append([]string(nil), cardfields.DefaultSectionOrder...)
	}

	return resolved, nil
}

// mergeList tek bir liste türünü çözer: önce kart kayıtları, sonra görünür
// firma varsayılanları. Her iki yarıda da ekleme sırası korunur.
func mergeList(listType string, in Input, tpl *models.Template) []ResolvedEntry {
	var cardOwned, defaults []models.ContactEntry
	for _, e := range in.Entries {
		if e.ListType != listType {
			continue
		}
		switch {
		case e.CardID != nil:
			if in.Card != nil && *e.CardID == in.Card.ID {
				cardOwned = append(cardOwned, e)
			}
		default:
			if e.IsHidden || in.HiddenEntryIDs[e.ID] {
				continue
			}
			defaults = append(defaults, e)
		}
	}

	sortEntries(cardOwned)
	sortEntries(defaults)

	out := make([]ResolvedEntry, 0, len(cardOwned)+len(defaults))
	for _, e := range cardOwned {
		out = append(out, toResolvedEntry(e, ownership.ScopeCardSpecific, tpl))
	}
	for _, e := range defaults {
		out = append(out, toResolvedEntry(e, ownership.ScopeCompanyDefault, tpl))
	}
	return out
}

func sortEntries(entries []models.ContactEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].SortIndex != entries[j].SortIndex {
			return entries[i].SortIndex < entries[j].SortIndex
		}
		return entries[i].ID < entries[j].ID
	})
}

func toResolvedEntry(e models.ContactEntry, scope ownership.Scope, tpl *models.Template) ResolvedEntry {
	return ResolvedEntry{
		ID:              e.ID,
		Scope:           scope,
		ListType:        e.ListType,
		Label:           e.Label,
		LabelDE:         e.LabelDE,
		Value:           e.Value,
		Note:            e.Note,
		TextColor:       firstNonEmpty(e.TextColor, templateTextColorFor(tpl, e.ListType)),
		BackgroundColor: firstNonEmpty(e.BackgroundColor, tpl.ButtonBgColor),
	}
}

func templateTextColorFor(tpl *models.Template, listType string) string {
	switch listType {
	case cardfields.SectionPhoneNumbers:
		return tpl.PhoneTextColor
	case cardfields.SectionEmails:
		return tpl.EmailTextColor
	case cardfields.SectionWebsites, cardfields.SectionSocialLinks:
		return tpl.WebsiteTextColor
	case cardfields.SectionAddresses:
		return tpl.AddressTextColor
	case cardfields.SectionButtons:
		return tpl.ButtonTextColor
	default:
		return ""
	}
}

// SampleEntry boş kalan zorunlu bir liste için sunum amaçlı yer tutucu
// üretir. Asla veritabanına yazılmaz.
func SampleEntry(listType string) ResolvedEntry {
	sample := ResolvedEntry{ListType: listType, IsSample: true}
	switch listType {
	case cardfields.SectionPhoneNumbers:
		sample.Label, sample.Value = "Telefon", "+49 30 0000000"
	case cardfields.SectionEmails:
		sample.Label, sample.Value = "E-Mail", "info@example.com"
	case cardfields.SectionWebsites:
		sample.Label, sample.Value = "Website", "https://example.com"
	case cardfields.SectionAddresses:
		sample.Label, sample.Value = "Adresse", "Musterstraße 1, 10115 Berlin"
	default:
		sample.Label = "—"
	}
	return sample
}

func cardScalar(card *models.Card, pick func(*models.CardDetail) string) string {
	if card == nil {
		return ""
	}
	return pick(&card.Detail)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
