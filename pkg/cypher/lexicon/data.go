package lexicon

// Built-in tables. Kept as plain data so tests and overrides stay simple.

var defaultCliches = []string{
	"drop the mic",
	"mic drop",
	"spit hot fire",
	"in the house",
	"make you say",
	"rhymes so sick",
	"off the chain",
	"keep it real",
	"at the end of the day",
	"step up to the plate",
	"take it to the next level",
	"game over",
	"no pain no gain",
	"straight outta",
	"haters gonna hate",
}

var defaultDoubleEntendres = []string{
	"bars behind bars",
	"heavy bars",
	"cold as ice",
	"killing it",
	"murder the beat",
	"bodied the track",
	"fire in the booth",
	"sick with it",
	"bread on my mind",
	"paper chase",
}

var defaultSimileCues = []string{
	"like a",
	"like the",
	"as a",
	"as if",
	"cold like",
	"hot like",
	"flow like",
}

var defaultHomonyms = [][]string{
	{"steel", "steal"},
	{"right", "write"},
	{"night", "knight"},
	{"break", "brake"},
	{"pray", "prey"},
	{"son", "sun"},
	{"cell", "sell"},
	{"peace", "piece"},
	{"whole", "hole"},
	{"flow", "floe"},
	{"bored", "board"},
	{"weak", "week"},
}

var defaultAggressive = []string{
	"destroy", "crush", "demolish", "bury", "end", "finish",
	"murder", "kill", "slay", "smoke", "burn", "torch",
	"weak", "wack", "trash", "garbage", "fake", "soft",
	"king", "champion", "legend", "greatest", "untouchable", "supreme",
	"dominate", "own", "run", "rule",
}

// defaultSynonyms backs enhancement substitutions: slang variants that can
// swap in for a flat word when one of them rhymes with the line ending.
var defaultSynonyms = map[string][]string{
	"money":  {"cash", "dough", "paper", "cheddar", "bread"},
	"friend": {"homie", "partner", "ace"},
	"car":    {"whip", "ride"},
	"gun":    {"heat", "steel", "iron"},
	"house":  {"crib", "pad", "spot"},
	"good":   {"tight", "fresh", "dope", "clean"},
	"bad":    {"wack", "weak", "lame"},
	"fight":  {"battle", "scrap", "war"},
	"fast":   {"quick", "swift"},
	"look":   {"peep", "scope", "see"},
	"talk":   {"spit", "speak", "preach"},
	"crazy":  {"wild", "insane", "sick"},
	"mad":    {"angry", "irate", "heated"},
	"cold":   {"icy", "chill", "freezing"},
	"smart":  {"sharp", "slick", "wise"},
	"walk":   {"stroll", "creep", "step"},
	"rap":    {"rhyme", "flow", "spit"},
	"song":   {"track", "cut", "jam"},
	"head":   {"dome", "crown", "mind"},
	"feet":   {"kicks", "heat"},
	"win":    {"take", "claim", "seal"},
	"time":   {"clock", "minute", "moment"},
	"night":  {"dark", "late"},
	"street": {"block", "curb", "avenue"},
}
