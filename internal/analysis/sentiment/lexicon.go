package sentiment

// Lexicon order matters: matched keywords are reported in this order.
var positiveWords = []string{
	"good", "great", "excellent", "amazing", "awesome", "wonderful", "fantastic",
	"brilliant", "outstanding", "superb", "love", "loved", "like", "enjoy",
	"happy", "glad", "pleased", "delighted", "excited", "thrilled", "joy",
	"beautiful", "perfect", "best", "better", "nice", "cool", "fun",
	"helpful", "useful", "valuable", "impressive", "incredible", "inspiring",
	"innovative", "creative", "smart", "clever", "elegant", "efficient",
	"effective", "success", "successful", "win", "winning", "positive",
	"optimistic", "hopeful", "grateful", "thanks", "thank", "appreciate",
	"agree", "support", "recommend", "favorite", "powerful", "strong",
	"secure", "safe", "reliable", "fast", "easy", "clean", "stable",
	"progress", "improve", "improved", "breakthrough", "revolutionary",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "poor", "worst", "worse",
	"hate", "hated", "dislike", "angry", "mad", "furious", "annoyed",
	"sad", "unhappy", "depressed", "disappointed", "frustrated", "upset",
	"ugly", "broken", "buggy", "bug", "fail", "failed", "failure", "error",
	"problem", "issue", "wrong", "useless", "waste", "slow", "difficult",
	"hard", "confusing", "complicated", "boring", "weak", "dangerous",
	"risky", "unsafe", "insecure", "vulnerable", "scam", "fraud", "fake",
	"crash", "crashed", "lost", "lose", "losing", "pain", "painful",
	"worried", "worry", "afraid", "scared", "fear", "negative", "pessimistic",
	"disagree", "reject", "regret", "sorry", "unfortunately", "never",
	"nothing", "doubt", "concern", "toxic", "chaos", "dystopian",
}

// Emotion patterns are matched against the lowercased text; every occurrence counts.
var emotionPatterns = []struct {
	name    string
	pattern string
}{
	{"joy", `\b(happy|happiness|joy|joyful|delight\w*|glad|cheer\w*|excit\w*|thrill\w*|love|fun)\b`},
	{"sadness", `\b(sad|sadness|unhappy|depress\w*|cry\w*|tears?|grief|sorrow\w*|lonely|miss(ed|ing)?|regret\w*)\b`},
	{"anger", `\b(angry|anger|mad|furious|rage|hate\w*|annoy\w*|irritat\w*|outrage\w*|frustrat\w*)\b`},
	{"fear", `\b(afraid|fear\w*|scared|scary|terrif\w*|anxious|anxiety|worr(y|ied|ies)|panic\w*|nervous|dread\w*)\b`},
	{"surprise", `\b(surpris\w*|amaz\w*|astonish\w*|shock\w*|unexpected\w*|wow|whoa|incredible|unbelievable)\b`},
	{"disgust", `\b(disgust\w*|gross|nasty|revolting|repuls\w*|sick(ening)?|vile|awful|toxic)\b`},
	{"trust", `\b(trust\w*|reliab\w*|depend\w*|faith\w*|loyal\w*|honest\w*|secure|safe|confiden\w*|believe)\b`},
	{"anticipation", `\b(anticipat\w*|expect\w*|await\w*|hope\w*|eager\w*|soon|future|upcoming|plan\w*|ready)\b`},
}
