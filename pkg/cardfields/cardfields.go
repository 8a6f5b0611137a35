package cardfields

import "regexp"

// Tek doğruluk kaynağı: kart alanları, liste türleri, kardinalite
// limitleri ve validasyon kuralları burada bir kez tanımlanır. CSV import,
// iletişim kaydı servisleri ve export aynı tanımları kullanır.

// ValidateKind bir alanın validasyon türüdür.
type ValidateKind string

const (
	ValidateNone     ValidateKind = "none"
	ValidateNonEmpty ValidateKind = "nonEmpty"
	ValidateEmail    ValidateKind = "email"
	ValidatePhone    ValidateKind = "phone"
	ValidateURL      ValidateKind = "url"
)

// FieldDefinition tek bir kart alanının tanımıdır.
type FieldDefinition struct {
	Name     string
	Required bool
	Validate ValidateKind
}

// Bölüm kimlikleri. Sıralanabilir beş bölüm + sabit konumlu socialLinks.
const (
	SectionPhoneNumbers = "phoneNumbers"
	SectionEmails       = "emails"
	SectionWebsites     = "websites"
	SectionAddresses    = "addresses"
	SectionButtons      = "buttons"
	SectionSocialLinks  = "socialLinks"
)

// DefaultSectionOrder bölümlerin varsayılan gösterim sırasıdır.
var DefaultSectionOrder = []string{
	SectionPhoneNumbers,
	SectionEmails,
	SectionWebsites,
	SectionAddresses,
	SectionButtons,
}

// ListTypes tüm iletişim listesi türleridir.
var ListTypes = []string{
	SectionPhoneNumbers,
	SectionEmails,
	SectionWebsites,
	SectionAddresses,
	SectionButtons,
	SectionSocialLinks,
}

// definitions CSV import/export sütun sırası ile aynı sırada tutulur.
var definitions = []FieldDefinition{
	{Name: "first_name", Required: true, Validate: ValidateNonEmpty},
	{Name: "last_name", Required: true, Validate: ValidateNonEmpty},
	{Name: "email", Required: true, Validate: ValidateEmail},
	{Name: "phone_number", Required: true, Validate: ValidatePhone},
	{Name: "title", Validate: ValidateNone},
	{Name: "title_de", Validate: ValidateNone},
	{Name: "position", Validate: ValidateNone},
	{Name: "position_de", Validate: ValidateNone},
	{Name: "department", Validate: ValidateNone},
	{Name: "department_de", Validate: ValidateNone},
	{Name: "website", Validate: ValidateURL},
	{Name: "address", Validate: ValidateNone},
	{Name: "profile_image_name", Validate: ValidateNone},
}

// cardinality limitleri; socialLinks sınırsızdır.
var cardinalityLimits = map[string]int{
	SectionPhoneNumbers: 4,
	SectionEmails:       4,
	SectionWebsites:     4,
	SectionAddresses:    4,
	SectionButtons:      5,
}

var (
	emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`)
	phoneRegexp = regexp.MustCompile(`^\+?[0-9\s\-()]{6,20}$`)
	urlRegexp   = regexp.MustCompile(`^(https?://)\S+$`)
)

// Definitions tanımlı tüm alanları bildirim sırası ile döndürür.
func Definitions() []FieldDefinition {
	out := make([]FieldDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// FieldNames alan adlarını bildirim sırası ile döndürür.
func FieldNames() []string {
	names := make([]string, len(definitions))
	for i, d := range definitions {
		names[i] = d.Name
	}
	return names
}

// DefinitionFor verilen adın tanımını döndürür.
func DefinitionFor(name string) (FieldDefinition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}
	return FieldDefinition{}, false
}

// IsRequired alanın zorunlu olup olmadığını söyler.
func IsRequired(name string) bool {
	d, ok := DefinitionFor(name)
	return ok && d.Required
}

// RequiredFieldNames zorunlu alan adlarını döndürür.
func RequiredFieldNames() []string {
	var names []string
	for _, d := range definitions {
		if d.Required {
			names = append(names, d.Name)
		}
	}
	return names
}

// CardinalityLimitFor liste türünün üst sınırını döndürür.
// Sınırsız türlerde ok=false döner.
func CardinalityLimitFor(listType string) (int, bool) {
	limit, ok := cardinalityLimits[listType]
	return limit, ok
}

// IsKnownListType verilen adın tanımlı bir liste türü olup olmadığını söyler.
func IsKnownListType(listType string) bool {
	for _, t := range ListTypes {
		if t == listType {
			return true
		}
	}
	return false
}

// ValidKind listelerin validasyon türünü döndürür (değer alanı için).
func ValidKindForList(listType string) ValidateKind {
	switch listType {
	case SectionPhoneNumbers:
		return ValidatePhone
	case SectionEmails:
		return ValidateEmail
	case SectionWebsites, SectionButtons, SectionSocialLinks:
		return ValidateURL
	default:
		return ValidateNone
	}
}

// Validate değeri verilen türe göre doğrular. Boş değerler geçerli kabul
// edilir; zorunluluk kontrolü çağıranın işidir.
func Validate(kind ValidateKind, value string) bool {
	if value == "" {
		return true
	}
	switch kind {
	case ValidateNonEmpty:
		return trimmedNonEmpty(value)
	case ValidateEmail:
		return emailRegexp.MatchString(value)
	case ValidatePhone:
		return phoneRegexp.MatchString(value)
	case ValidateURL:
		return urlRegexp.MatchString(value)
	default:
		return true
	}
}

func trimmedNonEmpty(value string) bool {
	for _, r := range value {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

// IsValidSectionOrder sıranın beş bilinen bölümün bir permütasyonu olup
// olmadığını kontrol eder.
func IsValidSectionOrder(order []string) bool {
	if len(order) != len(DefaultSectionOrder) {
		return false
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		known := false
		for _, k := range DefaultSectionOrder {
			if k == id {
				known = true
				break
			}
		}
		if !known || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
