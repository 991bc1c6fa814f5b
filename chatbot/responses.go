package chatbot

// emotionContent holds the canned conversational responses and the
// recommendation list for one emotion.
type emotionContent struct {
	Responses       []string
	Recommendations []string
}

var emotionResponses = map[string]emotionContent{
	"Happy": {
		Responses: []string{
			"It's wonderful to see you happy! Keep nurturing this positive energy.",
			"Your happiness is contagious! What made you feel this way today?",
			"Embrace this joy - it's a powerful emotion that boosts your wellbeing.",
		},
		Recommendations: []string{
			"Share your happiness with others - it multiplies!",
			"Practice gratitude journaling to maintain this positive state",
			"Listen to upbeat music to amplify your mood",
		},
	},
	"Sad": {
		Responses: []string{
			"I'm here for you. It's okay to feel sad - emotions are temporary visitors.",
			"Your feelings are valid. Would you like to talk about what's on your mind?",
			"Sadness is a natural part of life. Let's work through this together.",
		},
		Recommendations: []string{
			"Try a 5-minute breathing exercise to center yourself",
			"Reach out to a friend or loved one - connection helps",
			"Listen to gentle, uplifting music or nature sounds",
			"Take a short walk outside - movement can shift your mood",
		},
	},
	"Angry": {
		Responses: []string{
			"I sense you're feeling angry. Let's find healthy ways to process this.",
			"Anger often signals that something important needs attention.",
			"Your anger is valid. Let's channel it constructively.",
		},
		Recommendations: []string{
			"Try progressive muscle relaxation to release tension",
			"Write down what's bothering you - it helps process emotions",
			"Take 10 deep breaths, counting to 4 on each inhale and exhale",
			"Listen to calming instrumental music",
		},
	},
	"Fear": {
		Responses: []string{
			"Feeling fear is completely natural. You're safe right now.",
			"Fear often shows us what we care about deeply.",
			"Let's work together to find your inner strength.",
		},
		Recommendations: []string{
			"Practice grounding: name 5 things you can see, 4 you can touch...",
			"Try a short guided meditation for anxiety relief",
			"Listen to calming nature sounds or gentle music",
			"Remember past times you've overcome challenges",
		},
	},
	"Surprise": {
		Responses: []string{
			"What a surprise! How are you feeling about this unexpected moment?",
			"Surprises can be exciting or overwhelming - both are okay.",
			"This surprise has shifted your energy - notice how you feel.",
		},
		Recommendations: []string{
			"Take a moment to process this surprise mindfully",
			"Share this moment with someone you trust",
			"Write about this experience to capture your feelings",
		},
	},
	"Neutral": {
		Responses: []string{
			"I see you're in a calm, neutral state. This is a good baseline for mindfulness.",
			"Neutral emotions are perfect moments for self-reflection.",
			"How are you feeling in this moment of calm?",
		},
		Recommendations: []string{
			"Try a brief mindfulness meditation",
			"Practice gratitude by noticing three good things",
			"Take a moment to check in with your body and breath",
		},
	},
}

var wellnessTips = []string{
	"Remember to drink water regularly - hydration affects mood!",
	"Take short breaks every hour to stretch and breathe",
	"Connect with nature daily, even if just looking out a window",
	"Practice self-compassion - treat yourself as you would a good friend",
	"Get adequate sleep - it's crucial for emotional regulation",
	"Limit social media if it's affecting your mood negatively",
	"Practice saying no to protect your energy",
	"Celebrate small wins throughout your day",
}

// meditationGuide is a titled sequence of steps.
type meditationGuide struct {
	Title string
	Steps []string
}

var meditationGuides = []meditationGuide{
	{
		Title: "5-Minute Calming Breath",
		Steps: []string{
			"Find a comfortable position and close your eyes",
			"Inhale slowly for 4 counts",
			"Hold your breath gently for 4 counts",
			"Exhale slowly for 6 counts",
			"Repeat this cycle for 5 minutes",
			"Notice how your body feels more relaxed",
		},
	},
	{
		Title: "Quick Body Scan",
		Steps: []string{
			"Start at the top of your head",
			"Slowly scan down through your body",
			"Notice any tension without trying to change it",
			"Breathe into areas of tightness",
			"Allow your whole body to relax",
		},
	},
	{
		Title: "Gratitude Reflection",
		Steps: []string{
			"Think of three things you're grateful for today",
			"Focus on each one for 30 seconds",
			"Notice how gratitude feels in your body",
			"Let this feeling expand throughout your being",
		},
	},
}

type keywordEmotion struct {
	Keyword string
	Emotion string
}

// messageEmotions routes free-text keywords to the emotion whose canned
// responses fit best. Checked in order, so earlier keywords win when a
// message mentions several.
var messageEmotions = []keywordEmotion{
	{"happy", "Happy"},
	{"joy", "Happy"},
	{"excited", "Happy"},
	{"sad", "Sad"},
	{"down", "Sad"},
	{"depressed", "Sad"},
	{"angry", "Angry"},
	{"mad", "Angry"},
	{"frustrated", "Angry"},
	{"scared", "Fear"},
	{"anxious", "Fear"},
	{"worried", "Fear"},
	{"surprised", "Surprise"},
	{"calm", "Neutral"},
}

var meditationTriggers = []string{"meditation", "breathe", "relax"}

var tipTriggers = []string{"tip", "advice", "help", "suggestion"}

var defaultResponses = []string{
	"I'm here to listen. Tell me more about how you're feeling.",
	"Thank you for sharing that with me. What else is on your mind?",
	"Your wellbeing matters. How can I support you right now?",
}

var defaultRecommendations = []string{
	"Take a few deep breaths and check in with yourself",
	"Try a brief mindfulness exercise",
	"Consider writing down how you feel right now",
}
