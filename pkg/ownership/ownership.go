package ownership

import (
	"kartvizit.link/models"
	"kartvizit.link/pkg/cardfields"
)

// Sahiplik kuralları tek yerde: bir kayıt firma varsayılanı mı karta özel
// mi, hangi düzenleme bağlamında ne yapılabilir. Form ekranları bu paketin
// üzerinden geçer, kendi kopya kontrollerini taşımaz.

// Scope bir kaydın sahiplik sınıfıdır.
type Scope string

const (
	ScopeCompanyDefault Scope = "companyDefault"
	ScopeCardSpecific   Scope = "cardSpecific"
)

// Mode düzenleme bağlamıdır: şablon editörü mü, kart editörü mü.
type Mode string

const (
	ModeTemplate Mode = "template"
	ModeCard     Mode = "card"
)

// Context bir mutasyon isteğinin bağlamını taşır.
type Context struct {
	Mode Mode
}

// OwnershipError sahiplik ihlalleri için tipli hata.
type OwnershipError string

func (e OwnershipError) Error() string { return string(e) }

const (
	// ErrOwnershipViolation firma varsayılanı kart bağlamından silinmeye
	// veya değiştirilmeye çalışıldığında döner; UI gizlemeyi önermelidir.
	ErrOwnershipViolation OwnershipError = "firma varsayılanı bu bağlamdan değiştirilemez, yalnızca gizlenebilir"
	// ErrCardinalityExceeded liste üst sınırına ulaşıldığında döner.
	ErrCardinalityExceeded OwnershipError = "liste için izin verilen kayıt sayısı aşıldı"
)

// Classify kaydın sahiplik sınıfını belirler: CardID dolu ise karta özel.
func Classify(entry *models.ContactEntry) Scope {
	if entry.CardID != nil {
		return ScopeCardSpecific
	}
	return ScopeCompanyDefault
}

// CanDelete kaydın verilen bağlamdan silinip silinemeyeceğini söyler.
// Karta özel kayıtlar her zaman silinebilir; firma varsayılanlarını
// yalnızca şablon editörü silebilir.
func CanDelete(entry *models.ContactEntry, ctx Context) bool {
	if Classify(entry) == ScopeCardSpecific {
		return true
	}
	return ctx.Mode == ModeTemplate
}

// CanEditValue değer düzeyinde düzenlemeye izin var mı.
// Kart bağlamında görüntülenen firma varsayılanları salt okunurdur;
// yalnızca görünürlükleri değiştirilebilir.
func CanEditValue(entry *models.ContactEntry, ctx Context) bool {
	if Classify(entry) == ScopeCompanyDefault && ctx.Mode == ModeCard {
		return false
	}
	return true
}

// EnforceCardinality listeye yeni kayıt eklenmeden önce çağrılır.
// Şablon modu limitlerden muaftır; kart modunda limit dolmuşsa
// ErrCardinalityExceeded döner.
func EnforceCardinality(currentCount int, listType string, ctx Context) error {
	if ctx.Mode == ModeTemplate {
		return nil
	}
	limit, bounded := cardfields.CardinalityLimitFor(listType)
	if !bounded {
		return nil
	}
	if currentCount >= limit {
		return ErrCardinalityExceeded
	}
	return nil
}
