package rules

import "strings"

const (
	CategoryPremium = "premium"
	CategoryClaim   = "claim"
	CategoryPolicy  = "policy"
	CategoryNominee = "nominee"
	CategoryGeneral = "general"

	LangHindi   = "hindi"
	LangEnglish = "english"
)

type answerSet struct {
	hindi   string
	english string
}

func (a answerSet) in(language string) string {
	if language == LangEnglish {
		return a.english
	}
	return a.hindi
}

type keywordRule struct {
	category string
	keywords []string
	answer   answerSet
}

// Evaluated top to bottom; the first rule with any matching keyword wins.
var chatbotRules = []keywordRule{
	{
		category: CategoryPremium,
		keywords: []string{"premium", "प्रीमियम"},
		answer: answerSet{
			hindi:   "प्रीमियम भुगतान के लिए आप ऑनलाइन, UPI, या नजदीकी शाखा का उपयोग कर सकते हैं।",
			english: "You can pay your premium online, through UPI, or at your nearest branch.",
		},
	},
	{
		category: CategoryClaim,
		keywords: []string{"claim", "दावा", "क्लेम"},
		answer: answerSet{
			hindi:   "क्लेम करने के लिए: 1) हेल्पलाइन पर कॉल करें 2) जरूरी दस्तावेज तैयार करें 3) फॉर्म भरें",
			english: "To file a claim: 1) Call the helpline 2) Keep the required documents ready 3) Fill out the claim form",
		},
	},
	{
		category: CategoryPolicy,
		keywords: []string{"policy", "पॉलिसी"},
		answer: answerSet{
			hindi:   "आपकी पॉलिसी की जानकारी के लिए अपना पॉलिसी नंबर या रजिस्टर्ड मोबाइल नंबर बताएं।",
			english: "Please share your policy number or registered mobile number to see your policy details.",
		},
	},
	{
		category: CategoryNominee,
		keywords: []string{"nominee", "नॉमिनी"},
		answer: answerSet{
			hindi:   "नॉमिनी बदलने के लिए नॉमिनी अपडेट फॉर्म भरें।",
			english: "Fill out the nominee update form to change your nominee.",
		},
	},
}

var fallbackAnswer = answerSet{
	hindi:   "मैं आपकी मदद करने की कोशिश कर रहा हूं। कृपया अधिक विस्तार से बताएं।",
	english: "I am trying to help you. Please tell me in more detail.",
}

// Reply is the outcome of one chatbot turn.
type Reply struct {
	Category string
	Answer   string
}

// Answer matches question against the keyword table case-insensitively and returns the canned
// reply in language. Unknown languages get the Hindi text.
func Answer(question, language string) Reply {
	q := strings.ToLower(question)
	for _, r := range chatbotRules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return Reply{Category: r.category, Answer: r.answer.in(language)}
			}
		}
	}
	return Reply{Category: CategoryGeneral, Answer: fallbackAnswer.in(language)}
}

// FallbackAnswer is the clarification text returned when nothing matches.
func FallbackAnswer(language string) string {
	return fallbackAnswer.in(language)
}

// Categories lists the categories Answer can produce, general last.
func Categories() []string {
	out := make([]string, 0, len(chatbotRules)+1)
	for _, r := range chatbotRules {
		out = append(out, r.category)
	}
	return append(out, CategoryGeneral)
}
