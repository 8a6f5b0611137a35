package merge

// Dil seçimi sunum sınırında tek bir yerde yapılır: Almanca ikiz doluysa o,
// değilse temel alan gösterilir. Merge sırasında iki alan da korunur.

// Locale desteklenen arayüz dilleri.
type Locale string

const (
	LocaleDefault Locale = "en"
	LocaleGerman  Locale = "de"
)

// LocalizedEntry dili seçilmiş tek bir iletişim kaydıdır.
type LocalizedEntry struct {
	ID              uint   `json:"id"`
	ListType        string `json:"list_type"`
	Label           string `json:"label"`
	Value           string `json:"value"`
	Note            string `json:"note,omitempty"`
	TextColor       string `json:"text_color"`
	BackgroundColor string `json:"background_color"`
	IsSample        bool   `json:"is_sample,omitempty"`
}

// LocalizedCard dili seçilmiş görünüm modelidir.
type LocalizedCard struct {
	CompanyName string `json:"company_name"`
	SerialCode  string `json:"serial_code,omitempty"`
	LinkKey     string `json:"link_key,omitempty"`

	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Title      string `json:"title"`
	Position   string `json:"position"`
	Department string `json:"department"`

	Email           string `json:"email"`
	ProfileImageURL string `json:"profile_image_url"`

	BackgroundColor  string `json:"background_color"`
	NameTextColor    string `json:"name_text_color"`
	CompanyTextColor string `json:"company_text_color"`
	BannerURL        string `json:"banner_url"`

	SaveContactLabel string `json:"save_contact_label"`
	WalletLabel      string `json:"wallet_label"`

	Lists        map[string][]LocalizedEntry `json:"lists"`
	SectionOrder []string                    `json:"section_order"`
}

// Localize çözülmüş modeli verilen dile indirger.
func Localize(resolved *ResolvedCard, locale Locale) *LocalizedCard {
	german := locale == LocaleGerman

	out := &LocalizedCard{
		CompanyName:      resolved.CompanyName,
		SerialCode:       resolved.SerialCode,
		LinkKey:          resolved.LinkKey,
		FirstName:        resolved.FirstName,
		LastName:         resolved.LastName,
		Title:            pick(german, resolved.TitleDE, resolved.Title),
		Position:         pick(german, resolved.PositionDE, resolved.Position),
		Department:       pick(german, resolved.DepartmentDE, resolved.Department),
		Email:            resolved.Email,
		ProfileImageURL:  resolved.ProfileImageURL,
		BackgroundColor:  resolved.BackgroundColor,
		NameTextColor:    resolved.NameTextColor,
		CompanyTextColor: resolved.CompanyTextColor,
		BannerURL:        resolved.BannerURL,
		SaveContactLabel: pick(german, resolved.SaveContactLabelDE, resolved.SaveContactLabel),
		WalletLabel:      pick(german, resolved.WalletLabelDE, resolved.WalletLabel),
		SectionOrder:     append([]string(nil), resolved.SectionOrder...),
		Lists:            make(map[string][]LocalizedEntry, len(resolved.Lists)),
	}

	for listType, entries := range resolved.Lists {
		localized := make([]LocalizedEntry, 0, len(entries))
		for _, e := range entries {
			localized = append(localized, LocalizedEntry{
				ID:              e.ID,
				ListType:        e.ListType,
				Label:           pick(german, e.LabelDE, e.Label),
				Value:           e.Value,
				Note:            e.Note,
				TextColor:       e.TextColor,
				BackgroundColor: e.BackgroundColor,
				IsSample:        e.IsSample,
			})
		}
		out.Lists[listType] = localized
	}

	return out
}

// pick Almanca istendiyse ve ikiz doluysa ikizi, değilse temel değeri seçer.
func pick(german bool, de, base string) string {
	if german && de != "" {
		return de
	}
	return base
}
