package locale

var streetNames = map[string][]string{
	"United States": {"Main St", "Oak Ave", "Park Rd", "Cedar Ln", "Maple Dr", "Pine St", "Elm Ave", "Washington Blvd",
		"Broadway", "Market St", "Highland Ave", "Lake St", "Walnut St", "Chestnut St", "Spring St", "Center St",
		"Church St", "Madison Ave", "Jefferson Blvd", "Lincoln Way", "Franklin St", "Union St", "Liberty Ave"},
	"United Kingdom": {"High St", "Church Rd", "Station Rd", "Victoria Rd", "Manor Rd", "Park Lane", "Mill Lane",
		"Queen St", "King St", "London Rd", "Bridge St", "Green Lane", "North St", "South St", "West St", "East St"},
	"Canada": {"Main St", "King St", "Queen St", "Yonge St", "Dundas St", "Bloor St", "College St", "Bay St",
		"Avenue Rd", "Rue Sainte-Catherine", "Boulevard Saint-Laurent", "Rue Sherbrooke"},
	"Australia": {"George St", "Elizabeth St", "Collins St", "Bourke St", "Flinders St", "King St", "Queen St",
		"William St", "Victoria St", "Albert St", "Edward St", "Adelaide St"},
	"China": {"Nanjing Road", "Chang'an Street", "Wangfujing Street", "Huaihai Road", "Beijing Road",
		"Zhongshan Road", "Jiefang Road", "Renmin Road", "Xingfu Road", "Heping Road"},
	"Japan": {"Ginza", "Omotesando", "Shibuya", "Shinjuku", "Harajuku", "Akihabara", "Aoyama", "Roppongi"},
	"Germany": {"Hauptstraße", "Bahnhofstraße", "Schulstraße", "Gartenstraße", "Dorfstraße", "Kirchstraße",
		"Berliner Straße", "Münchner Straße", "Frankfurter Allee"},
	"France": {"Rue de la Paix", "Avenue des Champs-Élysées", "Boulevard Saint-Germain", "Rue de Rivoli",
		"Boulevard Haussmann", "Rue du Faubourg Saint-Honoré", "Avenue Montaigne"},
	"South Korea": {"Gangnam-daero", "Teheran-ro", "Sejong-daero", "Itaewon-ro", "Hongdae-ro", "Myeongdong-gil",
		"Samseong-ro", "Apgujeong-ro", "Sinsa-dong-gil", "Bukchon-ro", "Insadong-gil", "Jongno"},
	"Russia": {"Tverskaya Ulitsa", "Nevsky Prospekt", "Arbat Ulitsa", "Kutuzovsky Prospekt", "Leninsky Prospekt",
		"Novy Arbat", "Sadovaya Ulitsa", "Bolshaya Morskaya", "Liteyny Prospekt", "Moskovsky Prospekt"},
	"Spain": {"Gran Vía", "Paseo de la Castellana", "Calle Mayor", "La Rambla", "Passeig de Gràcia",
		"Calle Serrano", "Calle de Alcalá", "Avenida Diagonal", "Calle Preciados", "Calle Fuencarral"},
	"Italy": {"Via del Corso", "Via Condotti", "Via Montenapoleone", "Via Roma", "Via Veneto",
		"Via della Spiga", "Corso Buenos Aires", "Via Toledo", "Via Tornabuoni", "Corso Vittorio Emanuele"},
	"Brazil": {"Avenida Paulista", "Rua Oscar Freire", "Avenida Atlântica", "Rua Augusta", "Avenida Rio Branco",
		"Rua das Laranjeiras", "Avenida Vieira Souto", "Rua do Catete", "Avenida Nossa Senhora de Copacabana"},
	"India": {"MG Road", "Brigade Road", "Commercial Street", "Park Street", "Connaught Place",
		"Marine Drive", "Linking Road", "FC Road", "Residency Road", "Anna Salai", "Mount Road"},
	"Singapore": {"Orchard Road", "Raffles Boulevard", "Marina Bay", "Shenton Way", "Bukit Timah Road",
		"Changi Road", "Serangoon Road", "Tanjong Pagar Road", "Beach Road", "Victoria Street", "Arab Street"},
	"Hong Kong": {"Nathan Road", "Queen's Road", "Des Voeux Road", "Hennessy Road", "Canton Road",
		"Lockhart Road", "Jaffe Road", "Wellington Street", "Hollywood Road", "Tsim Sha Tsui Promenade"},
	"Taiwan": {"Zhongxiao Road", "Xinyi Road", "Renai Road", "Dunhua Road", "Zhongshan Road",
		"Nanjing Road", "Minquan Road", "Minsheng Road", "Fuxing Road", "Guangfu Road", "Zhongzheng Road"},
	"Mexico": {"Paseo de la Reforma", "Avenida Insurgentes", "Avenida Juárez", "Calle Madero",
		"Avenida Chapultepec", "Calle 5 de Mayo", "Avenida Revolución", "Calle Hidalgo", "Avenida Universidad"},
	"Netherlands": {"Kalverstraat", "Leidsestraat", "Damrak", "Rokin", "Nieuwendijk",
		"P.C. Hooftstraat", "Van Baerlestraat", "Beethovenstraat", "Utrechtsestraat", "Haarlemmerstraat"},
}

// defaultStreets is used for countries without their own street list.
var defaultStreets = []string{"Main St", "Central Ave", "Park Rd", "First St", "Second Ave", "Third St", "North Rd", "South Blvd"}

// StreetsFor returns the street names for a country or the generic list.
func StreetsFor(country string) []string {
	if streets, ok := streetNames[country]; ok {
		return streets
	}
	return defaultStreets
}
