package analysis

// AllergenCategory is one of the 14 UK regulatory allergen categories. The
// enumeration is closed; nothing extends it at runtime.
type AllergenCategory string

const (
	CategoryMilk        AllergenCategory = "Milk/Dairy"
	CategoryEggs        AllergenCategory = "Eggs"
	CategoryPeanuts     AllergenCategory = "Peanuts"
	CategoryTreeNuts    AllergenCategory = "Tree Nuts"
	CategoryGluten      AllergenCategory = "Gluten/Cereals"
	CategorySoya        AllergenCategory = "Soya"
	CategoryFish        AllergenCategory = "Fish"
	CategoryCrustaceans AllergenCategory = "Crustaceans"
	CategoryMolluscs    AllergenCategory = "Molluscs"
	CategorySesame      AllergenCategory = "Sesame"
	CategoryMustard     AllergenCategory = "Mustard"
	CategoryCelery      AllergenCategory = "Celery"
	CategoryLupin       AllergenCategory = "Lupin"
	CategorySulphites   AllergenCategory = "Sulphites"
)

// CategoryOrder is the fixed evaluation order for keyword matching. When an
// ingredient could match two categories the first in this order wins, so
// classification stays deterministic. Categories with narrow keywords come
// before Milk and Gluten, whose broad keywords ("butter", "flour") would
// otherwise swallow compounds like "peanut butter" or "lupin flour".
var CategoryOrder = []AllergenCategory{
	CategoryPeanuts,
	CategoryTreeNuts,
	CategorySesame,
	CategoryMustard,
	CategoryCelery,
	CategoryLupin,
	CategoryCrustaceans,
	CategoryMolluscs,
	CategoryFish,
	CategoryEggs,
	CategorySoya,
	CategorySulphites,
	CategoryMilk,
	CategoryGluten,
}

// AllergenKeywords maps each category to its curated keyword list. Matching
// is case-insensitive substring containment against the normalized
// ingredient. These lists are data, not control flow: tests exercise them
// per category and they can be revised without touching the classifier.
var AllergenKeywords = map[AllergenCategory][]string{
	CategoryMilk: {
		"milk", "dairy", "cheese", "butter", "cream", "yogurt", "yoghurt",
		"whey", "casein", "lactose", "ghee", "buttermilk", "custard",
		"creme fraiche", "quark", "kefir",
	},
	CategoryEggs: {
		"egg", "albumen", "albumin", "ovalbumin", "mayonnaise", "meringue",
		"ovomucoid",
	},
	CategoryPeanuts: {
		"peanut", "groundnut", "monkey nut", "arachis",
	},
	CategoryTreeNuts: {
		"almond", "hazelnut", "walnut", "cashew", "pecan", "pistachio",
		"macadamia", "brazil nut", "praline", "marzipan", "nut butter",
	},
	CategoryGluten: {
		"wheat", "gluten", "barley", "rye", "oat", "spelt", "kamut",
		"semolina", "couscous", "durum", "malted", "malt extract",
		"barley malt", "malt vinegar", "flour", "bran",
		"breadcrumb", "bulgur", "farro",
	},
	CategorySoya: {
		"soy", "soya", "soja", "edamame", "tofu", "tempeh", "miso",
		"textured vegetable protein",
	},
	CategoryFish: {
		"fish", "anchovy", "anchovies", "cod", "salmon", "tuna", "haddock",
		"sardine", "mackerel", "pollock", "trout", "herring",
		"worcestershire",
	},
	CategoryCrustaceans: {
		"prawn", "shrimp", "crab", "lobster", "crayfish", "langoustine",
		"scampi", "krill",
	},
	CategoryMolluscs: {
		"mussel", "oyster", "squid", "calamari", "clam", "scallop",
		"octopus", "snail", "whelk", "winkle", "abalone",
	},
	CategorySesame: {
		"sesame", "tahini", "halva", "gomashio", "benne",
	},
	CategoryMustard: {
		"mustard",
	},
	CategoryCelery: {
		"celery", "celeriac",
	},
	CategoryLupin: {
		"lupin", "lupine",
	},
	CategorySulphites: {
		"sulphite", "sulfite", "sulphur dioxide", "sulfur dioxide",
		"metabisulphite", "metabisulfite", "bisulphite", "bisulfite",
	},
}

// AdditiveNames is the curated list of additive identities that don't carry
// an E-number in label text. Case-insensitive substring match.
var AdditiveNames = []string{
	"msg", "monosodium glutamate", "aspartame", "saccharin", "sucralose",
	"acesulfame", "sodium benzoate", "potassium sorbate", "sodium nitrite",
	"sodium nitrate", "lecithin", "xanthan gum", "guar gum", "carrageenan",
	"pectin", "sorbitol", "mannitol", "maltodextrin", "modified starch",
	"tartrazine", "annatto", "carmine", "cochineal", "bha", "bht",
	"citric acid", "ascorbic acid", "glucose syrup", "invert sugar",
}

// derivation maps an additive identity to the allergen category it is
// derived from even though its name never says so. Checked before generic
// keyword matching so that, e.g., "E221" lands on Sulphites without the word
// appearing anywhere.
type derivation struct {
	keyword  string
	category AllergenCategory
}

var allergenDerivedAdditives = []derivation{
	// Sulphur dioxide and the sulphite preservative range.
	{"e220", CategorySulphites},
	{"e221", CategorySulphites},
	{"e222", CategorySulphites},
	{"e223", CategorySulphites},
	{"e224", CategorySulphites},
	{"e225", CategorySulphites},
	{"e226", CategorySulphites},
	{"e227", CategorySulphites},
	{"e228", CategorySulphites},

	// Lactic-acid family, conventionally dairy-derived.
	{"e270", CategoryMilk},
	{"e325", CategoryMilk},
	{"e326", CategoryMilk},
	{"e327", CategoryMilk},
	{"e966", CategoryMilk},
	{"lactic acid", CategoryMilk},
	{"lactate", CategoryMilk},
	{"lactitol", CategoryMilk},

	// Lysozyme is extracted from egg white.
	{"e1105", CategoryEggs},
	{"lysozyme", CategoryEggs},

	// Soy-sourced emulsifiers and thickeners.
	{"soy lecithin", CategorySoya},
	{"soya lecithin", CategorySoya},
	{"e322", CategorySoya},
	{"e426", CategorySoya},
	{"e479b", CategorySoya},

	// Starch derivatives only count as gluten when explicitly
	// wheat-qualified on the label.
	{"wheat starch", CategoryGluten},
	{"wheat maltodextrin", CategoryGluten},
	{"wheat dextrin", CategoryGluten},

	{"e640", CategoryCelery},
	{"celery extract", CategoryCelery},
}
