package locale

// Lexicon is a pool of given names and family names for one language.
type Lexicon struct {
	FirstNames []string
	LastNames  []string
}

var lexicons = map[string]Lexicon{
	"en": {
		FirstNames: []string{"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph", "Thomas", "Charles",
			"Emma", "Olivia", "Ava", "Isabella", "Sophia", "Mia", "Charlotte", "Amelia", "Harper", "Evelyn"},
		LastNames: []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
			"Anderson", "Taylor", "Thomas", "Moore", "Jackson", "Martin", "Lee", "Thompson", "White", "Harris"},
	},
	// Pinyin.
	"zh": {
		FirstNames: []string{"Wei", "Fang", "Lei", "Yang", "Jing", "Ming", "Hua", "Xin", "Jun", "Yan",
			"Lin", "Chen", "Hao", "Tao", "Peng", "Yun", "Feng", "Qiang", "Bo", "Kai"},
		LastNames: []string{"Wang", "Li", "Zhang", "Liu", "Chen", "Yang", "Huang", "Zhao", "Wu", "Zhou",
			"Xu", "Sun", "Ma", "Zhu", "Hu", "Guo", "He", "Lin", "Luo", "Gao"},
	},
	// Romaji. Japanese profiles normally use the three-script pools in japan.go.
	"ja": {
		FirstNames: []string{"Yuki", "Haruto", "Sota", "Yuto", "Riku", "Sakura", "Hina", "Yui", "Mio", "Aoi",
			"Ren", "Takumi", "Kaito", "Hinata", "Yuna", "Akari", "Mei", "Rin", "Koharu", "Sora"},
		LastNames: []string{"Sato", "Suzuki", "Takahashi", "Tanaka", "Watanabe", "Ito", "Yamamoto", "Nakamura", "Kobayashi", "Kato",
			"Yoshida", "Yamada", "Sasaki", "Yamaguchi", "Matsumoto", "Inoue", "Kimura", "Hayashi", "Shimizu", "Yamazaki"},
	},
	"ko": {
		FirstNames: []string{"Minho", "Jinho", "Junho", "Seungmin", "Jaemin", "Yuna", "Jiyeon", "Soojin", "Minjung", "Hana",
			"Jihoon", "Dongwoo", "Sunwoo", "Yoojin", "Minji", "Soyeon", "Daeun", "Yerin", "Chaewon", "Jiwon"},
		LastNames: []string{"Kim", "Lee", "Park", "Choi", "Jung", "Kang", "Cho", "Yoon", "Jang", "Lim",
			"Han", "Oh", "Seo", "Shin", "Kwon", "Hwang", "Ahn", "Song", "Yoo", "Hong"},
	},
	"de": {
		FirstNames: []string{"Maximilian", "Alexander", "Paul", "Leon", "Lukas", "Emma", "Mia", "Hannah", "Sofia", "Anna",
			"Felix", "Jonas", "Tim", "David", "Finn", "Lena", "Laura", "Marie", "Lea", "Julia"},
		LastNames: []string{"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker", "Schulz", "Hoffmann",
			"Koch", "Richter", "Klein", "Wolf", "Schröder", "Neumann", "Schwarz", "Zimmermann", "Braun", "Hofmann"},
	},
	"fr": {
		FirstNames: []string{"Jean", "Pierre", "Michel", "André", "Philippe", "Marie", "Jeanne", "Françoise", "Monique", "Catherine",
			"Lucas", "Hugo", "Louis", "Gabriel", "Emma", "Léa", "Chloé", "Manon", "Camille", "Jade"},
		LastNames: []string{"Martin", "Bernard", "Thomas", "Petit", "Robert", "Richard", "Durand", "Dubois", "Moreau", "Laurent",
			"Simon", "Michel", "Lefebvre", "Leroy", "Roux", "David", "Bertrand", "Morel", "Fournier", "Girard"},
	},
	"ru": {
		FirstNames: []string{"Alexander", "Dmitri", "Maxim", "Artem", "Ivan", "Anastasia", "Maria", "Daria", "Anna", "Sophia",
			"Mikhail", "Nikita", "Andrei", "Sergei", "Alexei", "Ekaterina", "Olga", "Natalia", "Elena", "Irina"},
		LastNames: []string{"Ivanov", "Smirnov", "Kuznetsov", "Popov", "Vasiliev", "Petrov", "Sokolov", "Mikhailov", "Novikov", "Fedorov",
			"Morozov", "Volkov", "Alexeev", "Lebedev", "Semenov", "Egorov", "Pavlov", "Kozlov", "Stepanov", "Nikolaev"},
	},
	"es": {
		FirstNames: []string{"Antonio", "José", "Manuel", "Francisco", "David", "María", "Carmen", "Ana", "Isabel", "Laura",
			"Pablo", "Daniel", "Alejandro", "Carlos", "Javier", "Lucia", "Marta", "Paula", "Sara", "Elena"},
		LastNames: []string{"García", "Fernandez", "Gonzalez", "Rodriguez", "Lopez", "Martinez", "Sanchez", "Perez", "Gomez", "Martin",
			"Jimenez", "Ruiz", "Hernandez", "Diaz", "Moreno", "Alvarez", "Muñoz", "Romero", "Alonso", "Gutierrez"},
	},
}

// LexiconFor returns the name pool for a country's language, falling back to English.
func LexiconFor(country string) Lexicon {
	if lex, ok := lexicons[Language(country)]; ok {
		return lex
	}
	return lexicons["en"]
}
