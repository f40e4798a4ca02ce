package locale

import (
	"github.com/geofill/geofill-cli/api/schemas"
)

// cityTable lists real city/state pairs per country with the leading part
// of their postal codes.
var cityTable = map[string][]schemas.Location{
	"United States": {
		{City: "New York", State: "New York", ZipPrefix: "100"},
		{City: "Los Angeles", State: "California", ZipPrefix: "900"},
		{City: "Chicago", State: "Illinois", ZipPrefix: "606"},
		{City: "Houston", State: "Texas", ZipPrefix: "770"},
		{City: "Phoenix", State: "Arizona", ZipPrefix: "850"},
		{City: "Philadelphia", State: "Pennsylvania", ZipPrefix: "191"},
		{City: "San Antonio", State: "Texas", ZipPrefix: "782"},
		{City: "San Diego", State: "California", ZipPrefix: "921"},
		{City: "Dallas", State: "Texas", ZipPrefix: "752"},
		{City: "San Jose", State: "California", ZipPrefix: "951"},
		{City: "Austin", State: "Texas", ZipPrefix: "787"},
		{City: "Seattle", State: "Washington", ZipPrefix: "981"},
		{City: "Denver", State: "Colorado", ZipPrefix: "802"},
		{City: "Boston", State: "Massachusetts", ZipPrefix: "021"},
		{City: "Miami", State: "Florida", ZipPrefix: "331"},
		{City: "Atlanta", State: "Georgia", ZipPrefix: "303"},
		{City: "Las Vegas", State: "Nevada", ZipPrefix: "891"},
		{City: "Portland", State: "Oregon", ZipPrefix: "972"},
		{City: "Detroit", State: "Michigan", ZipPrefix: "482"},
		{City: "Minneapolis", State: "Minnesota", ZipPrefix: "554"},
	},
	"United Kingdom": {
		{City: "London", State: "Greater London", ZipPrefix: "W1"},
		{City: "Birmingham", State: "West Midlands", ZipPrefix: "B1"},
		{City: "Manchester", State: "Greater Manchester", ZipPrefix: "M1"},
		{City: "Glasgow", State: "Scotland", ZipPrefix: "G1"},
		{City: "Liverpool", State: "Merseyside", ZipPrefix: "L1"},
		{City: "Leeds", State: "West Yorkshire", ZipPrefix: "LS1"},
		{City: "Sheffield", State: "South Yorkshire", ZipPrefix: "S1"},
		{City: "Edinburgh", State: "Scotland", ZipPrefix: "EH1"},
		{City: "Bristol", State: "South West England", ZipPrefix: "BS1"},
		{City: "Leicester", State: "East Midlands", ZipPrefix: "LE1"},
		{City: "Newcastle", State: "Tyne and Wear", ZipPrefix: "NE1"},
		{City: "Nottingham", State: "East Midlands", ZipPrefix: "NG1"},
	},
	"Canada": {
		{City: "Toronto", State: "Ontario", ZipPrefix: "M5"},
		{City: "Montreal", State: "Quebec", ZipPrefix: "H2"},
		{City: "Vancouver", State: "British Columbia", ZipPrefix: "V6"},
		{City: "Calgary", State: "Alberta", ZipPrefix: "T2"},
		{City: "Edmonton", State: "Alberta", ZipPrefix: "T5"},
		{City: "Ottawa", State: "Ontario", ZipPrefix: "K1"},
		{City: "Winnipeg", State: "Manitoba", ZipPrefix: "R3"},
		{City: "Quebec City", State: "Quebec", ZipPrefix: "G1"},
		{City: "Hamilton", State: "Ontario", ZipPrefix: "L8"},
		{City: "Victoria", State: "British Columbia", ZipPrefix: "V8"},
	},
	"Australia": {
		{City: "Sydney", State: "New South Wales", ZipPrefix: "2000"},
		{City: "Melbourne", State: "Victoria", ZipPrefix: "3000"},
		{City: "Brisbane", State: "Queensland", ZipPrefix: "4000"},
		{City: "Perth", State: "Western Australia", ZipPrefix: "6000"},
		{City: "Adelaide", State: "South Australia", ZipPrefix: "5000"},
		{City: "Gold Coast", State: "Queensland", ZipPrefix: "4217"},
		{City: "Canberra", State: "Australian Capital Territory", ZipPrefix: "2600"},
		{City: "Newcastle", State: "New South Wales", ZipPrefix: "2300"},
		{City: "Hobart", State: "Tasmania", ZipPrefix: "7000"},
		{City: "Darwin", State: "Northern Territory", ZipPrefix: "0800"},
	},
	"China": {
		{City: "Beijing", State: "Beijing", ZipPrefix: "100000"},
		{City: "Shanghai", State: "Shanghai", ZipPrefix: "200000"},
		{City: "Guangzhou", State: "Guangdong", ZipPrefix: "510000"},
		{City: "Shenzhen", State: "Guangdong", ZipPrefix: "518000"},
		{City: "Chengdu", State: "Sichuan", ZipPrefix: "610000"},
		{City: "Hangzhou", State: "Zhejiang", ZipPrefix: "310000"},
		{City: "Wuhan", State: "Hubei", ZipPrefix: "430000"},
		{City: "Xi'an", State: "Shaanxi", ZipPrefix: "710000"},
		{City: "Nanjing", State: "Jiangsu", ZipPrefix: "210000"},
		{City: "Chongqing", State: "Chongqing", ZipPrefix: "400000"},
		{City: "Tianjin", State: "Tianjin", ZipPrefix: "300000"},
		{City: "Suzhou", State: "Jiangsu", ZipPrefix: "215000"},
		{City: "Dongguan", State: "Guangdong", ZipPrefix: "523000"},
		{City: "Qingdao", State: "Shandong", ZipPrefix: "266000"},
	},
	"Japan": {
		{City: "Tokyo", State: "Tokyo", ZipPrefix: "100"},
		{City: "Osaka", State: "Osaka", ZipPrefix: "530"},
		{City: "Yokohama", State: "Kanagawa", ZipPrefix: "220"},
		{City: "Nagoya", State: "Aichi", ZipPrefix: "450"},
		{City: "Sapporo", State: "Hokkaido", ZipPrefix: "060"},
		{City: "Fukuoka", State: "Fukuoka", ZipPrefix: "810"},
		{City: "Kobe", State: "Hyogo", ZipPrefix: "650"},
		{City: "Kyoto", State: "Kyoto", ZipPrefix: "600"},
		{City: "Kawasaki", State: "Kanagawa", ZipPrefix: "210"},
		{City: "Sendai", State: "Miyagi", ZipPrefix: "980"},
	},
	"South Korea": {
		{City: "Seoul", State: "Seoul", ZipPrefix: "04"},
		{City: "Busan", State: "Busan", ZipPrefix: "46"},
		{City: "Incheon", State: "Incheon", ZipPrefix: "21"},
		{City: "Daegu", State: "Daegu", ZipPrefix: "41"},
		{City: "Daejeon", State: "Daejeon", ZipPrefix: "34"},
		{City: "Gwangju", State: "Gwangju", ZipPrefix: "61"},
		{City: "Suwon", State: "Gyeonggi", ZipPrefix: "16"},
		{City: "Ulsan", State: "Ulsan", ZipPrefix: "44"},
		{City: "Changwon", State: "South Gyeongsang", ZipPrefix: "51"},
		{City: "Seongnam", State: "Gyeonggi", ZipPrefix: "13"},
	},
	"Germany": {
		{City: "Berlin", State: "Berlin", ZipPrefix: "10"},
		{City: "Hamburg", State: "Hamburg", ZipPrefix: "20"},
		{City: "Munich", State: "Bavaria", ZipPrefix: "80"},
		{City: "Cologne", State: "North Rhine-Westphalia", ZipPrefix: "50"},
		{City: "Frankfurt", State: "Hesse", ZipPrefix: "60"},
		{City: "Stuttgart", State: "Baden-Württemberg", ZipPrefix: "70"},
		{City: "Düsseldorf", State: "North Rhine-Westphalia", ZipPrefix: "40"},
		{City: "Leipzig", State: "Saxony", ZipPrefix: "04"},
		{City: "Dortmund", State: "North Rhine-Westphalia", ZipPrefix: "44"},
		{City: "Dresden", State: "Saxony", ZipPrefix: "01"},
	},
	"France": {
		{City: "Paris", State: "Île-de-France", ZipPrefix: "75"},
		{City: "Marseille", State: "Provence-Alpes-Côte d'Azur", ZipPrefix: "13"},
		{City: "Lyon", State: "Auvergne-Rhône-Alpes", ZipPrefix: "69"},
		{City: "Toulouse", State: "Occitanie", ZipPrefix: "31"},
		{City: "Nice", State: "Provence-Alpes-Côte d'Azur", ZipPrefix: "06"},
		{City: "Nantes", State: "Pays de la Loire", ZipPrefix: "44"},
		{City: "Strasbourg", State: "Grand Est", ZipPrefix: "67"},
		{City: "Montpellier", State: "Occitanie", ZipPrefix: "34"},
		{City: "Bordeaux", State: "Nouvelle-Aquitaine", ZipPrefix: "33"},
		{City: "Lille", State: "Hauts-de-France", ZipPrefix: "59"},
	},
	"Russia": {
		{City: "Moscow", State: "Moscow", ZipPrefix: "101"},
		{City: "Saint Petersburg", State: "Saint Petersburg", ZipPrefix: "190"},
		{City: "Novosibirsk", State: "Novosibirsk Oblast", ZipPrefix: "630"},
		{City: "Yekaterinburg", State: "Sverdlovsk Oblast", ZipPrefix: "620"},
		{City: "Kazan", State: "Tatarstan", ZipPrefix: "420"},
		{City: "Nizhny Novgorod", State: "Nizhny Novgorod Oblast", ZipPrefix: "603"},
		{City: "Chelyabinsk", State: "Chelyabinsk Oblast", ZipPrefix: "454"},
		{City: "Samara", State: "Samara Oblast", ZipPrefix: "443"},
	},
	"Spain": {
		{City: "Madrid", State: "Madrid", ZipPrefix: "28"},
		{City: "Barcelona", State: "Catalonia", ZipPrefix: "08"},
		{City: "Valencia", State: "Valencia", ZipPrefix: "46"},
		{City: "Seville", State: "Andalusia", ZipPrefix: "41"},
		{City: "Zaragoza", State: "Aragon", ZipPrefix: "50"},
		{City: "Málaga", State: "Andalusia", ZipPrefix: "29"},
		{City: "Murcia", State: "Murcia", ZipPrefix: "30"},
		{City: "Bilbao", State: "Basque Country", ZipPrefix: "48"},
	},
	"Italy": {
		{City: "Rome", State: "Lazio", ZipPrefix: "00"},
		{City: "Milan", State: "Lombardy", ZipPrefix: "20"},
		{City: "Naples", State: "Campania", ZipPrefix: "80"},
		{City: "Turin", State: "Piedmont", ZipPrefix: "10"},
		{City: "Palermo", State: "Sicily", ZipPrefix: "90"},
		{City: "Genoa", State: "Liguria", ZipPrefix: "16"},
		{City: "Bologna", State: "Emilia-Romagna", ZipPrefix: "40"},
		{City: "Florence", State: "Tuscany", ZipPrefix: "50"},
		{City: "Venice", State: "Veneto", ZipPrefix: "30"},
	},
	"Brazil": {
		{City: "São Paulo", State: "São Paulo", ZipPrefix: "01"},
		{City: "Rio de Janeiro", State: "Rio de Janeiro", ZipPrefix: "20"},
		{City: "Brasília", State: "Federal District", ZipPrefix: "70"},
		{City: "Salvador", State: "Bahia", ZipPrefix: "40"},
		{City: "Fortaleza", State: "Ceará", ZipPrefix: "60"},
		{City: "Belo Horizonte", State: "Minas Gerais", ZipPrefix: "30"},
		{City: "Curitiba", State: "Paraná", ZipPrefix: "80"},
		{City: "Recife", State: "Pernambuco", ZipPrefix: "50"},
	},
	"India": {
		{City: "Mumbai", State: "Maharashtra", ZipPrefix: "400"},
		{City: "Delhi", State: "Delhi", ZipPrefix: "110"},
		{City: "Bangalore", State: "Karnataka", ZipPrefix: "560"},
		{City: "Hyderabad", State: "Telangana", ZipPrefix: "500"},
		{City: "Chennai", State: "Tamil Nadu", ZipPrefix: "600"},
		{City: "Kolkata", State: "West Bengal", ZipPrefix: "700"},
		{City: "Ahmedabad", State: "Gujarat", ZipPrefix: "380"},
		{City: "Pune", State: "Maharashtra", ZipPrefix: "411"},
		{City: "Jaipur", State: "Rajasthan", ZipPrefix: "302"},
	},
	"Singapore": {
		{City: "Singapore", State: "Central Region", ZipPrefix: "01"},
		{City: "Jurong East", State: "West Region", ZipPrefix: "60"},
		{City: "Tampines", State: "East Region", ZipPrefix: "52"},
		{City: "Woodlands", State: "North Region", ZipPrefix: "73"},
		{City: "Bedok", State: "East Region", ZipPrefix: "46"},
		{City: "Ang Mo Kio", State: "North-East Region", ZipPrefix: "56"},
	},
	"Taiwan": {
		{City: "Taipei", State: "Taipei City", ZipPrefix: "100"},
		{City: "Kaohsiung", State: "Kaohsiung City", ZipPrefix: "800"},
		{City: "Taichung", State: "Taichung City", ZipPrefix: "400"},
		{City: "Tainan", State: "Tainan City", ZipPrefix: "700"},
		{City: "Hsinchu", State: "Hsinchu City", ZipPrefix: "300"},
		{City: "Taoyuan", State: "Taoyuan City", ZipPrefix: "330"},
	},
	// Hong Kong has no postal codes.
	"Hong Kong": {
		{City: "Central", State: "Hong Kong Island"},
		{City: "Kowloon", State: "Kowloon"},
		{City: "Tsim Sha Tsui", State: "Kowloon"},
		{City: "Mong Kok", State: "Kowloon"},
		{City: "Causeway Bay", State: "Hong Kong Island"},
		{City: "Sha Tin", State: "New Territories"},
	},
	"Mexico": {
		{City: "Mexico City", State: "Mexico City", ZipPrefix: "06"},
		{City: "Guadalajara", State: "Jalisco", ZipPrefix: "44"},
		{City: "Monterrey", State: "Nuevo León", ZipPrefix: "64"},
		{City: "Puebla", State: "Puebla", ZipPrefix: "72"},
		{City: "Tijuana", State: "Baja California", ZipPrefix: "22"},
		{City: "Cancún", State: "Quintana Roo", ZipPrefix: "77"},
	},
	"Netherlands": {
		{City: "Amsterdam", State: "North Holland", ZipPrefix: "10"},
		{City: "Rotterdam", State: "South Holland", ZipPrefix: "30"},
		{City: "The Hague", State: "South Holland", ZipPrefix: "25"},
		{City: "Utrecht", State: "Utrecht", ZipPrefix: "35"},
		{City: "Eindhoven", State: "North Brabant", ZipPrefix: "56"},
		{City: "Groningen", State: "Groningen", ZipPrefix: "97"},
	},
}

// CitiesFor returns the city table for a country and whether the country has
// its own table. Unknown countries get the DefaultCountry table.
func CitiesFor(country string) ([]schemas.Location, bool) {
	if locs, ok := cityTable[country]; ok {
		return locs, true
	}
	return cityTable[DefaultCountry], false
}
