package locale

// Coordinate is a city center in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

var cityCoordinates = map[string]Coordinate{
	"New York":         {40.7128, -74.0060},
	"Los Angeles":      {34.0522, -118.2437},
	"Chicago":          {41.8781, -87.6298},
	"Houston":          {29.7604, -95.3698},
	"Phoenix":          {33.4484, -112.0740},
	"San Francisco":    {37.7749, -122.4194},
	"Seattle":          {47.6062, -122.3321},
	"Miami":            {25.7617, -80.1918},
	"Boston":           {42.3601, -71.0589},
	"Denver":           {39.7392, -104.9903},
	"London":           {51.5074, -0.1278},
	"Manchester":       {53.4808, -2.2426},
	"Birmingham":       {52.4862, -1.8904},
	"Toronto":          {43.6532, -79.3832},
	"Vancouver":        {49.2827, -123.1207},
	"Montreal":         {45.5017, -73.5673},
	"Sydney":           {-33.8688, 151.2093},
	"Melbourne":        {-37.8136, 144.9631},
	"Brisbane":         {-27.4698, 153.0251},
	"Beijing":          {39.9042, 116.4074},
	"Shanghai":         {31.2304, 121.4737},
	"Guangzhou":        {23.1291, 113.2644},
	"Shenzhen":         {22.5431, 114.0579},
	"Hangzhou":         {30.2741, 120.1551},
	"Tokyo":            {35.6762, 139.6503},
	"Osaka":            {34.6937, 135.5023},
	"Yokohama":         {35.4437, 139.6380},
	"Kyoto":            {35.0116, 135.7681},
	"Seoul":            {37.5665, 126.9780},
	"Busan":            {35.1796, 129.0756},
	"Incheon":          {37.4563, 126.7052},
	"Berlin":           {52.5200, 13.4050},
	"Munich":           {48.1351, 11.5820},
	"Frankfurt":        {50.1109, 8.6821},
	"Paris":            {48.8566, 2.3522},
	"Lyon":             {45.7640, 4.8357},
	"Marseille":        {43.2965, 5.3698},
	"Singapore":        {1.3521, 103.8198},
	"Jurong East":      {1.3329, 103.7436},
	"Tampines":         {1.3496, 103.9568},
	"Central":          {22.2819, 114.1577},
	"Kowloon":          {22.3193, 114.1694},
	"Tsim Sha Tsui":    {22.2988, 114.1722},
	"Taipei":           {25.0330, 121.5654},
	"Kaohsiung":        {22.6273, 120.3014},
	"Taichung":         {24.1477, 120.6736},
	"Moscow":           {55.7558, 37.6173},
	"Saint Petersburg": {59.9343, 30.3351},
	"Madrid":           {40.4168, -3.7038},
	"Barcelona":        {41.3851, 2.1734},
	"Rome":             {41.9028, 12.4964},
	"Milan":            {45.4642, 9.1900},
	"São Paulo":        {-23.5505, -46.6333},
	"Rio de Janeiro":   {-22.9068, -43.1729},
	"Mumbai":           {19.0760, 72.8777},
	"Delhi":            {28.7041, 77.1025},
	"Bangalore":        {12.9716, 77.5946},
	"Mexico City":      {19.4326, -99.1332},
	"Guadalajara":      {20.6597, -103.3496},
	"Amsterdam":        {52.3676, 4.9041},
	"Rotterdam":        {51.9244, 4.4777},
}

// CoordinatesFor returns the center of a known city.
func CoordinatesFor(city string) (Coordinate, bool) {
	c, ok := cityCoordinates[city]
	return c, ok
}
