package models

import "strings"

// ItalianProvinces lists the administrative provinces accepted for the
// province field, as shown in the profile editor dropdown.
var ItalianProvinces = []string{
	"Agrigento", "Alessandria", "Ancona", "Aosta", "Arezzo", "Ascoli Piceno", "Asti", "Avellino", "Bari", "Barletta-Andria-Trani",
	"Belluno", "Benevento", "Bergamo", "Biella", "Bologna", "Bolzano", "Brescia", "Brindisi", "Cagliari", "Caltanissetta",
	"Campobasso", "Caserta", "Catania", "Catanzaro", "Chieti", "Como", "Cosenza", "Cremona", "Crotone", "Cuneo",
	"Enna", "Fermo", "Ferrara", "Firenze", "Foggia", "Forlì-Cesena", "Frosinone", "Genova", "Gorizia", "Grosseto",
	"Imperia", "Isernia", "La Spezia", "L'Aquila", "Latina", "Lecce", "Lecco", "Livorno", "Lodi", "Lucca",
	"Macerata", "Mantova", "Massa-Carrara", "Matera", "Messina", "Milano", "Modena", "Monza e Brianza", "Napoli", "Novara",
	"Nuoro", "Oristano", "Padova", "Palermo", "Parma", "Pavia", "Perugia", "Pesaro e Urbino", "Pescara", "Piacenza",
	"Pisa", "Pistoia", "Pordenone", "Potenza", "Prato", "Ragusa", "Ravenna", "Reggio Calabria", "Reggio Emilia", "Rieti",
	"Rimini", "Roma", "Rovigo", "Salerno", "Sassari", "Savona", "Siena", "Siracusa", "Sondrio", "Sud Sardegna",
	"Taranto", "Teramo", "Terni", "Torino", "Trapani", "Trento", "Treviso", "Trieste", "Udine", "Varese",
	"Venezia", "Verbano-Cusio-Ossola", "Vercelli", "Verona", "Vibo Valentia", "Vicenza", "Viterbo",
}

// DialCode is a phone country code offered in the phone input.
type DialCode struct {
	Code    string `json:"code"`
	Country string `json:"country"`
}

// DialCodes lists the dial codes the app offers, Italy first, then the
// Arabic-speaking countries most of the user base calls home.
var DialCodes = []DialCode{
	{Code: "+39", Country: "إيطاليا"}, {Code: "+966", Country: "السعودية"},
	{Code: "+20", Country: "مصر"}, {Code: "+962", Country: "الأردن"},
	{Code: "+961", Country: "لبنان"}, {Code: "+964", Country: "العراق"},
	{Code: "+963", Country: "سوريا"}, {Code: "+970", Country: "فلسطين"},
	{Code: "+212", Country: "المغرب"}, {Code: "+213", Country: "الجزائر"},
	{Code: "+216", Country: "تونس"}, {Code: "+218", Country: "ليبيا"},
	{Code: "+971", Country: "الإمارات"}, {Code: "+974", Country: "قطر"},
	{Code: "+968", Country: "عمان"}, {Code: "+973", Country: "البحرين"},
	{Code: "+965", Country: "الكويت"}, {Code: "+967", Country: "اليمن"},
	{Code: "+249", Country: "السودان"}, {Code: "+90", Country: "تركيا"},
	{Code: "+49", Country: "ألمانيا"}, {Code: "+33", Country: "فرنسا"},
	{Code: "+44", Country: "بريطانيا"}, {Code: "+34", Country: "إسبانيا"},
	{Code: "+1", Country: "أمريكا"},
}

// ValidProvince reports whether p is one of the known provinces.
func ValidProvince(p string) bool {
	for _, prov := range ItalianProvinces {
		if strings.EqualFold(prov, p) {
			return true
		}
	}
	return false
}

// ValidDialCode reports whether code is one of the offered dial codes.
func ValidDialCode(code string) bool {
	for _, dc := range DialCodes {
		if dc.Code == code {
			return true
		}
	}
	return false
}
