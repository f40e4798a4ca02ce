package locale

import "strings"

// PhoneFormat is a country's mobile numbering plan.
type PhoneFormat struct {
	// Code is the international calling code including "+". Empty means the
	// number is rendered in national form only.
	Code string
	// Length is the national significant number length in digits.
	Length int
	// AreaCodes, when set, lead the number. MobileFirstDigit follows them.
	AreaCodes        []string
	MobileFirstDigit string
	// MobilePrefixes lead the number when AreaCodes is empty.
	MobilePrefixes []string
	// Format renders exactly Length digits with the national punctuation.
	Format func(digits string) string
}

// grouped splits digits into runs of the given sizes joined by sep. The last
// group takes whatever remains.
func grouped(sep string, sizes ...int) func(string) string {
	return func(d string) string {
		parts := make([]string, 0, len(sizes)+1)
		pos := 0
		for _, n := range sizes {
			if pos+n > len(d) {
				break
			}
			parts = append(parts, d[pos:pos+n])
			pos += n
		}
		if pos < len(d) {
			parts = append(parts, d[pos:])
		}
		return strings.Join(parts, sep)
	}
}

// northAmerican renders (AAA) BBB-CCCC.
func northAmerican(d string) string {
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}

var phoneFormats = map[string]PhoneFormat{
	"United States": {
		Code:      "+1",
		Length:    10,
		AreaCodes: []string{"201", "202", "212", "213", "214", "215", "216", "217", "234", "248", "253", "267", "281", "301", "302", "303", "305", "310", "312", "313", "314", "315", "323", "347", "352", "386", "404", "407", "408", "410", "412", "415", "424", "425", "469", "470", "480", "484", "503", "504", "505", "508", "509", "510", "512", "513", "516", "518", "520", "530", "540", "551", "559", "562", "571", "573", "585", "602", "603", "609", "610", "612", "614", "615", "616", "617", "619", "626", "630", "631", "646", "650", "657", "661", "678", "702", "703", "704", "708", "713", "714", "716", "718", "720", "724", "727", "732", "734", "737", "747", "754", "757", "760", "762", "770", "773", "774", "781", "786", "801", "802", "804", "805", "810", "813", "814", "816", "817", "818", "828", "831", "832", "845", "847", "848", "856", "857", "858", "859", "860", "862", "863", "864", "865", "909", "910", "916", "917", "918", "919", "920", "925", "929", "936", "937", "940", "941", "949", "951", "952", "954", "956", "970", "971", "972", "973", "978", "979", "980"},
		Format:    northAmerican,
	},
	"Canada": {
		Code:      "+1",
		Length:    10,
		AreaCodes: []string{"204", "226", "236", "249", "250", "289", "306", "343", "365", "403", "416", "418", "431", "437", "438", "450", "506", "514", "519", "548", "579", "581", "587", "604", "613", "639", "647", "705", "709", "778", "780", "782", "807", "819", "825", "867", "873", "902", "905"},
		Format:    northAmerican,
	},
	"United Kingdom": {
		Code:           "+44",
		Length:         10,
		MobilePrefixes: []string{"71", "72", "73", "74", "75", "76", "77", "78", "79"},
		Format:         grouped(" ", 4, 3),
	},
	"China": {
		Code:           "+86",
		Length:         11,
		MobilePrefixes: []string{"130", "131", "132", "133", "134", "135", "136", "137", "138", "139", "150", "151", "152", "153", "155", "156", "157", "158", "159", "166", "170", "171", "172", "173", "175", "176", "177", "178", "180", "181", "182", "183", "184", "185", "186", "187", "188", "189", "191", "198", "199"},
		Format:         grouped(" ", 3, 4),
	},
	// Japanese sites expect the domestic form, so no calling code and the trunk zero stays.
	"Japan": {
		Code:           "",
		Length:         11,
		MobilePrefixes: []string{"070", "080", "090"},
		Format:         grouped("-", 3, 4),
	},
	"South Korea": {
		Code:           "+82",
		Length:         10,
		MobilePrefixes: []string{"10"},
		Format:         grouped("-", 2, 4),
	},
	"Germany": {
		Code:           "+49",
		Length:         11,
		MobilePrefixes: []string{"151", "152", "155", "157", "159", "160", "162", "163", "170", "171", "172", "173", "174", "175", "176", "177", "178", "179"},
		Format:         grouped(" ", 3, 4),
	},
	"France": {
		Code:           "+33",
		Length:         9,
		MobilePrefixes: []string{"6", "7"},
		Format:         grouped(" ", 1, 2, 2, 2),
	},
	"Italy": {
		Code:           "+39",
		Length:         10,
		MobilePrefixes: []string{"320", "322", "323", "327", "328", "329", "330", "331", "333", "334", "335", "336", "337", "338", "339", "340", "342", "345", "346", "347", "348", "349", "350", "360", "366", "368", "370", "377", "380", "388", "389", "391", "392", "393"},
		Format:         grouped(" ", 3, 3),
	},
	"Spain": {
		Code:           "+34",
		Length:         9,
		MobilePrefixes: []string{"6", "7"},
		Format:         grouped(" ", 3, 3),
	},
	"Russia": {
		Code:           "+7",
		Length:         10,
		MobilePrefixes: []string{"900", "901", "902", "903", "904", "905", "906", "908", "909", "910", "911", "912", "913", "914", "915", "916", "917", "918", "919", "920", "921", "922", "923", "924", "925", "926", "927", "928", "929", "930", "931", "932", "933", "934", "936", "937", "938", "939", "950", "951", "952", "953", "958", "960", "961", "962", "963", "964", "965", "966", "967", "968", "969", "977", "978", "980", "981", "982", "983", "984", "985", "986", "987", "988", "989", "991", "992", "993", "994", "995", "996", "997", "999"},
		Format: func(d string) string {
			return d[:3] + " " + d[3:6] + "-" + d[6:8] + "-" + d[8:]
		},
	},
	"Brazil": {
		Code:             "+55",
		Length:           11,
		AreaCodes:        []string{"11", "12", "13", "14", "15", "16", "17", "18", "19", "21", "22", "24", "27", "28", "31", "32", "33", "34", "35", "37", "38", "41", "42", "43", "44", "45", "46", "47", "48", "49", "51", "53", "54", "55", "61", "62", "63", "64", "65", "66", "67", "68", "69", "71", "73", "74", "75", "77", "79", "81", "82", "83", "84", "85", "86", "87", "88", "89", "91", "92", "93", "94", "95", "96", "97", "98", "99"},
		MobileFirstDigit: "9",
		Format: func(d string) string {
			return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
		},
	},
	"India": {
		Code:           "+91",
		Length:         10,
		MobilePrefixes: []string{"6", "7", "8", "9"},
		Format:         grouped(" ", 5),
	},
	"Australia": {
		Code:           "+61",
		Length:         9,
		MobilePrefixes: []string{"4"},
		Format:         grouped(" ", 3, 3),
	},
	"Mexico": {
		Code:      "+52",
		Length:    10,
		AreaCodes: []string{"33", "55", "81", "222", "229", "442", "444", "449", "462", "477", "492", "551", "552", "553", "554", "555", "556", "557", "558", "614", "618", "624", "627", "656", "667", "686", "722", "744", "747", "753", "777", "818", "833", "844", "861", "862", "867", "871", "899", "921", "951", "961", "981", "984", "998", "999"},
		Format:    grouped(" ", 3, 3),
	},
	"Singapore": {
		Code:           "+65",
		Length:         8,
		MobilePrefixes: []string{"8", "9"},
		Format:         grouped(" ", 4),
	},
	"Hong Kong": {
		Code:           "+852",
		Length:         8,
		MobilePrefixes: []string{"5", "6", "9"},
		Format:         grouped(" ", 4),
	},
	"Taiwan": {
		Code:           "+886",
		Length:         9,
		MobilePrefixes: []string{"9"},
		Format:         grouped(" ", 3, 3),
	},
	"Netherlands": {
		Code:           "+31",
		Length:         9,
		MobilePrefixes: []string{"6"},
		Format:         grouped(" ", 1, 2, 2, 2),
	},
}

// PhoneFormatFor returns the numbering plan for a country and whether the
// country has its own entry. Unknown countries get the DefaultCountry plan.
func PhoneFormatFor(country string) (PhoneFormat, bool) {
	if pf, ok := phoneFormats[country]; ok {
		return pf, true
	}
	return phoneFormats[DefaultCountry], false
}
