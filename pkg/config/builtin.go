package config

import (
	"sync"
)

// BuiltinConfig holds the built-in catalogue and word lists.
type BuiltinConfig struct {
	Rules         []RuleConfig
	Cities        []string
	Titles        []string
	Abbreviations []string
	DatePattern   string
	DateKeywords  []string
}

var (
	builtinConfig     *BuiltinConfig
	builtinConfigOnce sync.Once
)

// GetBuiltinConfig returns the singleton built-in configuration (thread-safe, lazy-initialized)
func GetBuiltinConfig() *BuiltinConfig {
	builtinConfigOnce.Do(initBuiltinConfig)
	return builtinConfig
}

func initBuiltinConfig() {
	builtinConfig = &BuiltinConfig{
		Rules:         initBuiltinRules(),
		Cities:        []string{"İstanbul", "Ankara", "İzmir", "Bursa", "Antalya", "Adana", "Konya"},
		Titles:        []string{"Genel Müdür", "Müdür", "Yönetim Kurulu Başkanı", "Şube Müdürü", "Av.", "Dr.", "Prof. Dr."},
		Abbreviations: []string{"Mr", "Mrs", "Dr", "Prof", "Sn", "T.C", "No", "Madde", "Md", "Bkz"},
		DatePattern:   `\d{1,2}\.\d{1,2}\.\d{2,4}`,
		DateKeywords:  []string{"tarih", "TARİH"},
	}
}

// initBuiltinRules returns the ordered rule catalogue.
//
// Ordering constraints:
//   - labelled account and tax numbers run before "No: <digits>" so the label survives
//   - adres_no runs right after adres_satiri
//   - madde_no runs before madde_atifi, which therefore only fires on text madde_no left alone
//   - tc_kimlik runs after iban and hesap_no
//   - the two-capitalized-word person fallback runs last
func initBuiltinRules() []RuleConfig {
	return []RuleConfig{
		{
			Name:        "sirket_adi",
			Pattern:     `[ A-ZÇĞİÖŞÜ0-9&\.\-]+(A\.?Ş\.?|AŞ|LTD\.?\s*ŞTİ\.?|Limited\s+Şirketi?|Anonim\s+Şirketi?)`,
			Replacement: "[ŞİRKET_ADI]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Company names ending in a legal-entity suffix",
		},
		{
			Name:        "taraf_adi",
			Pattern:     `Taraf\s+[A-Z0-9]+`,
			Replacement: "[TARAF_ADI]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Party references",
		},
		{
			Name:        "yer_adi",
			Gazetteer:   GazetteerCities,
			Replacement: "[YER_ADI]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "City names",
		},
		{
			Name:        "iban",
			Pattern:     `TR[0-9]{2}(?:\s?[0-9]{4}){5}`,
			Replacement: "[BANKA_BILGISI]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Turkish IBANs",
		},
		{
			Name:        "hesap_no",
			Pattern:     `(Hesap\s*No[:\.]?\s*)([0-9]{6,})`,
			Replacement: "${1}[BANKA_BILGISI]",
			Token:       "[BANKA_BILGISI]",
			IgnoreCase:  true,
			Description: "Account numbers after an account label",
		},
		{
			Name:        "vergi_no",
			Pattern:     `(Vergi\s*No[:\.]?\s*)([0-9]{6,})`,
			Replacement: "${1}[VERGI_NO]",
			Token:       "[VERGI_NO]",
			IgnoreCase:  true,
			Description: "Tax numbers after a tax label",
		},
		{
			Name:        "adres_satiri",
			Pattern:     `[A-ZÇĞİÖŞÜa-zçğıöşü0-9\s\.,/-]{0,80}(Mah\.?|Mahallesi|Cad\.?|Caddesi|Sok\.?|Sokağı|Bulvarı|Blv\.?)[A-ZÇĞİÖŞÜa-zçığıöşü0-9\s\.,/-]{0,120}`,
			Replacement: "[ADRES]",
			Description: "Address lines around a street or neighbourhood marker",
		},
		{
			Name:        "adres_no",
			Pattern:     `No[:\.]?\s*\d+`,
			Replacement: "[ADRES]",
			IgnoreCase:  true,
			WordEnd:     true,
			Description: "Building numbers",
		},
		{
			Name:        "tarih_sayisal",
			Pattern:     `(?:\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}[./-]\d{1,2}[./-]\d{1,2})`,
			Replacement: "[TARİH]",
			WordStart:   true,
			WordEnd:     true,
			Description: "Numeric dates",
		},
		{
			Name:        "tarih_yazili",
			Pattern:     `\d{1,2}\s+(Ocak|Şubat|Mart|Nisan|Mayıs|Haziran|Temmuz|Ağustos|Eylül|Ekim|Kasım|Aralık)\s+\d{2,4}`,
			Replacement: "[TARİH]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Dates with a written month",
		},
		{
			Name:        "sure",
			Pattern:     `\d+\s+(gün|hafta|ay|yıl|yil)`,
			Replacement: "[SÜRE]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Durations",
		},
		{
			Name:        "madde_no",
			Pattern:     `Madde\s+\d+[a-zA-Z]?`,
			Replacement: "[MADDE_NO]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Article numbers",
		},
		{
			Name:        "madde_atifi",
			Pattern:     `Madde\s+\d+[a-zA-Z]?['’]?(e|ye|ye göre|e göre|uyarınca)`,
			Replacement: "[MADDE_ATIFI]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Article references with an inflected suffix",
		},
		{
			Name:        "tutar",
			Pattern:     `[\d\.]+(?:,\d+)?\s?(TL|₺|TRY|USD|EUR|Euro|Dolar)`,
			Replacement: "[TUTAR]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Amounts with a currency",
		},
		{
			Name:        "para_birimi",
			Pattern:     `(Türk\s+Lirası|Amerikan\s+Doları|Euro)`,
			Replacement: "[PARA_BIRIMI]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Spelled-out currency names",
		},
		{
			Name:        "tc_kimlik",
			Pattern:     `\d{11}`,
			Replacement: "[KIMLIK_NO]",
			WordStart:   true,
			WordEnd:     true,
			Description: "National ID numbers",
		},
		{
			Name:        "telefon",
			Pattern:     `(?:\+?90|0)\s?(?:\(?\d{3}\)?)[\s\-]?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}`,
			Replacement: "[ILETISIM_BILGISI]",
			WordStart:   true,
			WordEnd:     true,
			Description: "Phone numbers",
		},
		{
			Name:        "email",
			Pattern:     `[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}`,
			Replacement: "[ILETISIM_BILGISI]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Email addresses",
		},
		{
			Name:        "url",
			Pattern:     `(?:https?://|www\.)[^\s,]+`,
			Replacement: "[WEB_ADRESI]",
			IgnoreCase:  true,
			WordStart:   true,
			Description: "Web addresses",
		},
		{
			Name:        "vergi_dairesi",
			Pattern:     `[A-ZÇĞİÖŞÜa-zçğıöşü\s]+Vergi\s+Dairesi`,
			Replacement: "[VERGI_DAIRESI]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Tax office names",
		},
		{
			Name:        "ek_referansi",
			Pattern:     `Ek[-\s]?\d+[^\n,]*`,
			Replacement: "[EK_REFERANSI]",
			IgnoreCase:  true,
			WordStart:   true,
			Description: "Attachment references with trailing context",
		},
		{
			Name:        "kanun_adi",
			Pattern:     `[ A-ZÇĞİÖŞÜa-zçğıöşü0-9\-]+(Kanunu|Kanun|Yönetmeliği|Yönetmelik|Tebliği|Teblig)`,
			Replacement: "[KANUN_ADI]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Statute and regulation names",
		},
		{
			Name:        "unvan",
			Gazetteer:   GazetteerTitles,
			Replacement: "[UNVAN]",
			IgnoreCase:  true,
			WordStart:   true,
			WordEnd:     true,
			Description: "Titles and honorifics",
		},
		{
			Name:        "kisi_adi",
			Pattern:     `[A-ZÇĞİÖŞÜ][a-zçğıöşü]+\s+[A-ZÇĞİÖŞÜ][a-zçğıöşü]+`,
			Replacement: "[KİŞİ_ADI]",
			WordStart:   true,
			WordEnd:     true,
			Exclude:     []string{"Hesap", "No", "Vergi"},
			Description: "Two capitalized words (person-name fallback)",
		},
	}
}
