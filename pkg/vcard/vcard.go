package vcard

import (
	"strings"

	"kartvizit.link/pkg/cardfields"
	"kartvizit.link/pkg/merge"
)

// vCard 3.0 üretimi: çözülmüş görünüm modeli üzerinde saf fonksiyondur,
// I/O yapmaz. Alan sırası sabittir: N, FN, ORG, TITLE, ROLE, TEL, EMAIL,
// ADR, URL(+NOTE). Boş alanlar tamamen atlanır, boş satır üretilmez.

// Render verilen model ve dil için vCard metni üretir.
func Render(resolved *merge.ResolvedCard, locale merge.Locale) string {
	card := merge.Localize(resolved, locale)

	var b strings.Builder
	writeLine(&b, "BEGIN:VCARD")
	writeLine(&b, "VERSION:3.0")

	if card.FirstName != "" || card.LastName != "" {
		writeLine(&b, "N:"+escape(card.LastName)+";"+escape(card.FirstName)+";;;")
	}
	fullName := strings.TrimSpace(card.FirstName + " " + card.LastName)
	if fullName != "" {
		writeLine(&b, "FN:"+escape(fullName))
	}
	if card.CompanyName != "" {
		writeLine(&b, "ORG:"+escape(card.CompanyName))
	}
	if card.Title != "" {
		writeLine(&b, "TITLE:"+escape(card.Title))
	}
	if card.Position != "" {
		writeLine(&b, "ROLE:"+escape(card.Position))
	}

	for _, e := range card.Lists[cardfields.SectionPhoneNumbers] {
		if e.Value == "" || e.IsSample {
			continue
		}
		writeLine(&b, "TEL;TYPE=WORK,VOICE:"+escape(e.Value))
	}
	for _, e := range card.Lists[cardfields.SectionEmails] {
		if e.Value == "" || e.IsSample {
			continue
		}
		writeLine(&b, "EMAIL;TYPE=INTERNET:"+escape(e.Value))
	}
	if card.Email != "" && !containsValue(card.Lists[cardfields.SectionEmails], card.Email) {
		writeLine(&b, "EMAIL;TYPE=INTERNET:"+escape(card.Email))
	}
	for _, e := range card.Lists[cardfields.SectionAddresses] {
		if e.Value == "" || e.IsSample {
			continue
		}
		writeLine(&b, "ADR;TYPE=WORK:;;"+escape(e.Value)+";;;;")
	}
	for _, e := range card.Lists[cardfields.SectionWebsites] {
		if e.Value == "" || e.IsSample {
			continue
		}
		writeLine(&b, "URL:"+escape(e.Value))
	}
	for _, e := range card.Lists[cardfields.SectionButtons] {
		if e.Value == "" || e.IsSample {
			continue
		}
		writeLine(&b, "URL:"+escape(e.Value))
		if e.Note != "" {
			writeLine(&b, "NOTE:"+escape(e.Note))
		}
	}

	writeLine(&b, "END:VCARD")
	return b.String()
}

// FileName indirme dosya adını üretir: {first_name}_vcard.vcf.
func FileName(resolved *merge.ResolvedCard) string {
	name := strings.TrimSpace(resolved.FirstName)
	if name == "" {
		name = "kartvizit"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return name + "_vcard.vcf"
}

func containsValue(entries []merge.LocalizedEntry, value string) bool {
	for _, e := range entries {
		if e.Value == value {
			return true
		}
	}
	return false
}

// escape vCard 3.0 özel karakterlerini kaçırır.
func escape(value string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"\n", "\\n",
		",", "\\,",
		";", "\\;",
	)
	return r.Replace(value)
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}
