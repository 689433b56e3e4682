// Package knowledge holds the static interest knowledge base: a
// multi-language synonym dictionary and an interest relation graph, plus
// the semantic expansion and similarity operations built on top of them.
//
// All tables are immutable after process start; the package performs no
// I/O and every operation is a pure function over the tables.
package knowledge

// Node describes one interest in the relation graph. Direct relations are
// strongly associated concepts, indirect relations are loosely associated
// ones, and subcategories are narrower terms folded into expansions.
type Node struct {
	Direct        []string
	Indirect      []string
	Subcategories []string
	Weight        float64
}

// translations maps an interest to its known translations per language
// code. Languages are kept in a fixed order (de, es, fr) when expansions
// are assembled so results stay deterministic.
var translations = map[string]map[string][]string{
	"music": {
		"de": {"musik"},
		"es": {"musica", "música"},
		"fr": {"musique"},
	},
	"sport": {
		"de": {"sport"},
		"es": {"deporte"},
		"fr": {"sport"},
	},
	"food": {
		"de": {"essen"},
		"es": {"comida"},
		"fr": {"nourriture", "cuisine"},
	},
	"technology": {
		"de": {"technologie", "technik"},
		"es": {"tecnologia", "tecnología"},
		"fr": {"technologie"},
	},
	"art": {
		"de": {"kunst"},
		"es": {"arte"},
		"fr": {"art"},
	},
	"travel": {
		"de": {"reisen"},
		"es": {"viaje", "viajes"},
		"fr": {"voyage"},
	},
	"nature": {
		"de": {"natur"},
		"es": {"naturaleza"},
		"fr": {"nature"},
	},
	"politics": {
		"de": {"politik"},
		"es": {"politica", "política"},
		"fr": {"politique"},
	},
	"science": {
		"de": {"wissenschaft"},
		"es": {"ciencia"},
		"fr": {"science"},
	},
	"health": {
		"de": {"gesundheit"},
		"es": {"salud"},
		"fr": {"sante", "santé"},
	},
	"fashion": {
		"de": {"mode"},
		"es": {"moda"},
		"fr": {"mode"},
	},
	"film": {
		"de": {"film", "kino"},
		"es": {"cine", "pelicula"},
		"fr": {"cinema", "cinéma"},
	},
	"books": {
		"de": {"bucher", "bücher", "literatur"},
		"es": {"libros", "literatura"},
		"fr": {"livres", "litterature"},
	},
	"gaming": {
		"de": {"spiele"},
		"es": {"videojuegos"},
		"fr": {"jeux video"},
	},
	"photography": {
		"de": {"fotografie"},
		"es": {"fotografia", "fotografía"},
		"fr": {"photographie"},
	},
	"soccer": {
		"de": {"fussball", "fußball"},
		"es": {"futbol", "fútbol"},
		"fr": {"football"},
	},
	"coffee": {
		"de": {"kaffee"},
		"es": {"cafe", "café"},
		"fr": {"cafe", "café"},
	},
	"yoga": {
		"de": {"yoga"},
		"es": {"yoga"},
		"fr": {"yoga"},
	},
}

// graph is the interest relation graph. Weights express how specific an
// interest is: niche interests score higher than umbrella categories when
// used as match signals.
var graph = map[string]Node{
	"music": {
		Direct:        []string{"concert", "festival", "band", "dj"},
		Indirect:      []string{"art", "culture", "nightlife"},
		Subcategories: []string{"jazz", "techno", "rock", "classical", "hiphop"},
		Weight:        0.8,
	},
	"sport": {
		Direct:        []string{"fitness", "training", "competition"},
		Indirect:      []string{"health", "outdoor"},
		Subcategories: []string{"soccer", "running", "cycling", "climbing", "swimming"},
		Weight:        0.8,
	},
	"soccer": {
		Direct:        []string{"sport", "bundesliga", "champions league"},
		Indirect:      []string{"fitness", "stadium"},
		Subcategories: nil,
		Weight:        0.9,
	},
	"food": {
		Direct:        []string{"restaurant", "cooking", "recipe"},
		Indirect:      []string{"travel", "culture"},
		Subcategories: []string{"vegan", "streetfood", "baking", "wine", "coffee"},
		Weight:        0.8,
	},
	"coffee": {
		Direct:        []string{"cafe", "espresso", "barista"},
		Indirect:      []string{"food", "breakfast"},
		Subcategories: nil,
		Weight:        0.9,
	},
	"technology": {
		Direct:        []string{"software", "startup", "innovation"},
		Indirect:      []string{"science", "business"},
		Subcategories: []string{"ai", "robotics", "blockchain", "programming"},
		Weight:        0.8,
	},
	"ai": {
		Direct:        []string{"technology", "machine learning", "neural networks"},
		Indirect:      []string{"science", "robotics", "data"},
		Subcategories: nil,
		Weight:        0.9,
	},
	"art": {
		Direct:        []string{"gallery", "exhibition", "museum"},
		Indirect:      []string{"music", "culture"},
		Subcategories: []string{"painting", "sculpture", "streetart", "design"},
		Weight:        0.8,
	},
	"travel": {
		Direct:        []string{"vacation", "adventure", "tourism"},
		Indirect:      []string{"nature", "photography"},
		Subcategories: []string{"backpacking", "camping", "roadtrip"},
		Weight:        0.7,
	},
	"nature": {
		Direct:        []string{"hiking", "outdoor", "wildlife"},
		Indirect:      []string{"travel", "environment"},
		Subcategories: []string{"forest", "mountains", "birdwatching", "gardening"},
		Weight:        0.7,
	},
	"politics": {
		Direct:        []string{"government", "election", "democracy"},
		Indirect:      []string{"economy", "society"},
		Subcategories: []string{"local politics", "climate policy"},
		Weight:        0.7,
	},
	"science": {
		Direct:        []string{"research", "university", "study"},
		Indirect:      []string{"technology", "health"},
		Subcategories: []string{"physics", "biology", "astronomy", "chemistry"},
		Weight:        0.8,
	},
	"health": {
		Direct:        []string{"fitness", "wellness", "nutrition"},
		Indirect:      []string{"sport", "food"},
		Subcategories: []string{"yoga", "meditation", "mental health"},
		Weight:        0.8,
	},
	"yoga": {
		Direct:        []string{"health", "meditation", "wellness"},
		Indirect:      []string{"fitness", "mindfulness"},
		Subcategories: nil,
		Weight:        0.9,
	},
	"fashion": {
		Direct:        []string{"style", "clothing", "design"},
		Indirect:      []string{"art", "shopping"},
		Subcategories: []string{"vintage", "streetwear", "sustainable fashion"},
		Weight:        0.7,
	},
	"film": {
		Direct:        []string{"cinema", "movie", "screening"},
		Indirect:      []string{"art", "culture"},
		Subcategories: []string{"documentary", "arthouse", "animation"},
		Weight:        0.8,
	},
	"books": {
		Direct:        []string{"reading", "library", "author"},
		Indirect:      []string{"art", "culture"},
		Subcategories: []string{"fiction", "poetry", "comics"},
		Weight:        0.7,
	},
	"gaming": {
		Direct:        []string{"esports", "videogames", "console"},
		Indirect:      []string{"technology", "entertainment"},
		Subcategories: []string{"indie games", "boardgames", "retro gaming"},
		Weight:        0.8,
	},
	"photography": {
		Direct:        []string{"camera", "photo", "portrait"},
		Indirect:      []string{"art", "travel"},
		Subcategories: []string{"street photography", "analog", "landscape"},
		Weight:        0.8,
	},
}

// typoVariants lists known misspellings for hot interests. Only terms that
// show up misspelled in real user input belong here.
var typoVariants = map[string][]string{
	"technology":  {"tecnology", "technolgy"},
	"soccer":      {"socer"},
	"restaurant":  {"restaurnt", "restuarant"},
	"photography": {"photograhy"},
	"science":     {"sciense"},
	"politics":    {"politcs"},
}

// diacriticFold maps accented runes to their ASCII fold. Applied to every
// expansion term so "fútbol" and "futbol" match the same tokens.
var diacriticFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ñ': 'n', 'ç': 'c', 'ß': 's',
}

// languageOrder fixes the iteration order over translation languages so
// expansion output is deterministic.
var languageOrder = []string{"de", "es", "fr"}
