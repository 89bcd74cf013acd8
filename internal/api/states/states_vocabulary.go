package states

// Names is the closed vocabulary of canonical state tokens.
var Names = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado", "connecticut",
	"delaware", "florida", "georgia", "hawaii", "idaho", "illinois", "indiana", "iowa",
	"kansas", "kentucky", "louisiana", "maine", "maryland", "massachusetts", "michigan",
	"minnesota", "mississippi", "missouri", "montana", "nebraska", "nevada", "new hampshire",
	"new jersey", "new mexico", "new york", "north carolina", "north dakota", "ohio",
	"oklahoma", "oregon", "pennsylvania", "rhode island", "south carolina", "south dakota",
	"tennessee", "texas", "utah", "vermont", "virginia", "washington", "west virginia",
	"wisconsin", "wyoming",
}

var nameSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Names))
	for _, n := range Names {
		m[n] = struct{}{}
	}
	return m
}()

// PostalCodes maps lowercase two-letter codes to state tokens.
var PostalCodes = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas", "ca": "california",
	"co": "colorado", "ct": "connecticut", "de": "delaware", "fl": "florida", "ga": "georgia",
	"hi": "hawaii", "id": "idaho", "il": "illinois", "in": "indiana", "ia": "iowa",
	"ks": "kansas", "ky": "kentucky", "la": "louisiana", "me": "maine", "md": "maryland",
	"ma": "massachusetts", "mi": "michigan", "mn": "minnesota", "ms": "mississippi",
	"mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada", "nh": "new hampshire",
	"nj": "new jersey", "nm": "new mexico", "ny": "new york", "nc": "north carolina",
	"nd": "north dakota", "oh": "ohio", "ok": "oklahoma", "or": "oregon", "pa": "pennsylvania",
	"ri": "rhode island", "sc": "south carolina", "sd": "south dakota", "tn": "tennessee",
	"tx": "texas", "ut": "utah", "vt": "vermont", "va": "virginia", "wa": "washington",
	"wv": "west virginia", "wi": "wisconsin", "wy": "wyoming",
}

// sentenceForms are unambiguous colloquial names, keyed without spaces. They are
// recognised anywhere in a sentence.
var sentenceForms = map[string]string{
	"cali":          "california",
	"socal":         "california",
	"norcal":        "california",
	"calif":         "california",
	"newyork":       "new york",
	"nyc":           "new york",
	"newjersey":     "new jersey",
	"newmexico":     "new mexico",
	"newhampshire":  "new hampshire",
	"northcarolina": "north carolina",
	"northdakota":   "north dakota",
	"southcarolina": "south carolina",
	"southdakota":   "south dakota",
	"rhodeisland":   "rhode island",
	"westvirginia":  "west virginia",
	"westvirgina":   "west virginia",
}

// shortForms collide with ordinary words ("miss", "mass", "wash") and are only
// honoured when they are the whole input, like the postal codes.
var shortForms = map[string]string{
	"jersey": "new jersey",
	"mass":   "massachusetts",
	"penn":   "pennsylvania",
	"penna":  "pennsylvania",
	"wash":   "washington",
	"tex":    "texas",
	"zona":   "arizona",
	"ariz":   "arizona",
	"fla":    "florida",
	"colo":   "colorado",
	"conn":   "connecticut",
	"mich":   "michigan",
	"minn":   "minnesota",
	"miss":   "mississippi",
	"tenn":   "tennessee",
	"wisc":   "wisconsin",
	"okla":   "oklahoma",
	"ore":    "oregon",
	"nev":    "nevada",
	"mont":   "montana",
	"nebr":   "nebraska",
	"wyo":    "wyoming",
	"ala":    "alabama",
	"ark":    "arkansas",
}

// Greetings never name a state, even when they are fuzzy-close to one.
var Greetings = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "hola": {}, "yo": {}, "howdy": {}, "namaste": {},
	"hiya": {}, "sup": {}, "greetings": {}, "good morning": {}, "good evening": {},
}
