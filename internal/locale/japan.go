package locale

// JapaneseSurname is a family name in kanji, katakana and romaji.
type JapaneseSurname struct {
	Kanji  string
	Kana   string
	Romaji string
}

// JapaneseGivenName is a given name in three scripts with its usual gender.
type JapaneseGivenName struct {
	Kanji  string
	Kana   string
	Romaji string
	Gender string
}

// JapaneseAddress is a real landmark address split the way Japanese forms ask for it.
type JapaneseAddress struct {
	Prefecture string
	City       string
	Chome      string
	Building   string
	// Zip is the seven digit postal code without the hyphen.
	Zip string
}

var JapaneseSurnames = []JapaneseSurname{
	{"佐藤", "サトウ", "Sato"},
	{"鈴木", "スズキ", "Suzuki"},
	{"高橋", "タカハシ", "Takahashi"},
	{"田中", "タナカ", "Tanaka"},
	{"渡辺", "ワタナベ", "Watanabe"},
	{"伊藤", "イトウ", "Ito"},
	{"山本", "ヤマモト", "Yamamoto"},
	{"中村", "ナカムラ", "Nakamura"},
	{"小林", "コバヤシ", "Kobayashi"},
	{"加藤", "カトウ", "Kato"},
	{"吉田", "ヨシダ", "Yoshida"},
	{"山田", "ヤマダ", "Yamada"},
	{"佐々木", "ササキ", "Sasaki"},
	{"山口", "ヤマグチ", "Yamaguchi"},
	{"松本", "マツモト", "Matsumoto"},
	{"井上", "イノウエ", "Inoue"},
	{"木村", "キムラ", "Kimura"},
	{"林", "ハヤシ", "Hayashi"},
	{"清水", "シミズ", "Shimizu"},
	{"山崎", "ヤマザキ", "Yamazaki"},
}

var JapaneseGivenNames = []JapaneseGivenName{
	{"太郎", "タロウ", "Taro", "male"},
	{"一郎", "イチロウ", "Ichiro", "male"},
	{"健二", "ケンジ", "Kenji", "male"},
	{"大輝", "ダイキ", "Daiki", "male"},
	{"悠真", "ユウマ", "Yuma", "male"},
	{"蓮", "レン", "Ren", "male"},
	{"翔太", "ショウタ", "Shota", "male"},
	{"拓海", "タクミ", "Takumi", "male"},
	{"陽向", "ヒナタ", "Hinata", "male"},
	{"颯太", "ソウタ", "Sota", "male"},
	{"花子", "ハナコ", "Hanako", "female"},
	{"陽子", "ヨウコ", "Yoko", "female"},
	{"美咲", "ミサキ", "Misaki", "female"},
	{"結衣", "ユイ", "Yui", "female"},
	{"葵", "アオイ", "Aoi", "female"},
	{"陽菜", "ヒナ", "Hina", "female"},
	{"凛", "リン", "Rin", "female"},
	{"咲良", "サクラ", "Sakura", "female"},
	{"芽依", "メイ", "Mei", "female"},
	{"心春", "コハル", "Koharu", "female"},
}

var JapaneseAddresses = []JapaneseAddress{
	{"東京都", "千代田区", "丸の内1-1-1", "丸の内ビルディング", "1000005"},
	{"東京都", "港区", "六本木6-10-1", "六本木ヒルズ森タワー", "1066108"},
	{"東京都", "渋谷区", "神宮前1-14-30", "ウィズ原宿", "1500001"},
	{"東京都", "新宿区", "西新宿2-8-1", "東京都庁", "1638001"},
	{"東京都", "中央区", "銀座4-6-16", "銀座三越", "1040061"},
	{"大阪府", "大阪市北区", "大深町4-20", "グランフロント大阪 タワーA", "5300011"},
	{"大阪府", "大阪市中央区", "難波5-1-60", "なんばパークス", "5560011"},
	{"大阪府", "大阪市天王寺区", "悲田院町10-39", "天王寺ミオ", "5430055"},
	{"神奈川県", "横浜市西区", "みなとみらい2-3-1", "クイーンズタワーA", "2200012"},
	{"神奈川県", "川崎市川崎区", "駅前本町11-2", "川崎フロンティアビル", "2100007"},
	{"愛知県", "名古屋市中村区", "名駅3-28-12", "大名古屋ビルヂング", "4500002"},
	{"愛知県", "名古屋市中区", "栄3-6-1", "ラシック", "4600008"},
	{"北海道", "札幌市中央区", "北三条西4-1-1", "日本生命札幌ビル", "0600003"},
	{"福岡県", "福岡市中央区", "天神2-5-55", "アクロス福岡", "8100001"},
	{"兵庫県", "神戸市中央区", "三宮町1-9-1", "センタープラザ", "6500021"},
	{"京都府", "京都市下京区", "烏丸通七条下る東塩小路町", "京都駅ビル", "6008216"},
	{"宮城県", "仙台市青葉区", "中央1-3-1", "AER", "9806116"},
	{"広島県", "広島市中区", "基町6-78", "リーガロイヤルホテル広島", "7300011"},
	{"埼玉県", "さいたま市大宮区", "桜木町1-7-5", "ソニックシティ", "3300854"},
	{"千葉県", "千葉市美浜区", "ひび野2-4", "プレナ幕張", "2610021"},
}

// FormattedZip renders the postal code as NNN-NNNN.
func (a JapaneseAddress) FormattedZip() string {
	if len(a.Zip) != 7 {
		return a.Zip
	}
	return a.Zip[:3] + "-" + a.Zip[3:]
}

// GivenNamesFor returns the given names matching gender, or all of them for an unknown gender.
func GivenNamesFor(gender string) []JapaneseGivenName {
	var out []JapaneseGivenName
	for _, n := range JapaneseGivenNames {
		if n.Gender == gender {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return JapaneseGivenNames
	}
	return out
}
