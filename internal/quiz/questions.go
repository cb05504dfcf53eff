package quiz

// Question is one multiple-choice entry of the friendship quiz. The gateway
// renders localized texts itself; the core keeps the canonical bank because
// answer validation needs each question's option count.
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Questions is the fixed 15-question bank, in asking order.
var Questions = [QuestionCount]Question{
	{
		Text:    "What's my favorite color?",
		Options: []string{"🔴 Red", "🔵 Blue", "🟢 Green", "🟡 Yellow", "🟣 Purple", "⚫ Black"},
	},
	{
		Text:    "What's my approximate height?",
		Options: []string{"📏 150-160 cm", "📏 160-170 cm", "📏 170-180 cm", "📏 180+ cm"},
	},
	{
		Text:    "What color are my eyes?",
		Options: []string{"👁️ Black", "👁️ Brown", "👁️ Blue", "👁️ Green", "👁️ Gray"},
	},
	{
		Text:    "Where do I like to vacation?",
		Options: []string{"🏖️ Beach", "🏔️ Mountains", "🏙️ City", "🏡 Home", "🏕️ Nature", "🏝️ Tropical islands"},
	},
	{
		Text:    "What's my favorite food?",
		Options: []string{"🍕 Pizza", "🍝 Pasta", "🍣 Sushi", "🍔 Burger", "🥗 Salad", "🍜 Plov"},
	},
	{
		Text:    "What pet do I want?",
		Options: []string{"🐕 Dog", "🐈 Cat", "🐦 Bird", "🐠 Fish", "🐴 Horse", "🐰 Rabbit"},
	},
	{
		Text:    "What do I do in my free time?",
		Options: []string{"📚 Reading", "🎮 Gaming", "🎬 Movies", "🎵 Music", "🎨 Drawing", "⚽ Sports"},
	},
	{
		Text:    "What's my favorite season?",
		Options: []string{"🌸 Spring", "☀️ Summer", "🍂 Fall", "❄️ Winter", "🌦️ All seasons"},
	},
	{
		Text:    "What do I drink in the morning/evening?",
		Options: []string{"☕ Coffee", "🍵 Tea", "🥤 Juice", "💧 Water", "🥛 Milk", "🧃 Energy drink"},
	},
	{
		Text:    "What sport do I like?",
		Options: []string{"⚽ Soccer", "🏀 Basketball", "🎾 Tennis", "🏊 Swimming", "🏋️ Fitness", "♟ Chess"},
	},
	{
		Text:    "What's my favorite music genre?",
		Options: []string{"🎸 Rock", "🎤 Pop", "🎵 Jazz", "🎹 Classical", "🎧 Electronic", "🎺 Hip-hop"},
	},
	{
		Text:    "What do I like to do with friends?",
		Options: []string{"🎉 Parties", "🎬 Movies", "🍽️ Restaurants", "🎲 Games", "🎤 Karaoke", "☕ Coffee shops"},
	},
	{
		Text:    "When am I most active?",
		Options: []string{"🌅 Early morning", "☀️ Daytime", "🌆 Evening", "🌙 Night", "🌤️ Always"},
	},
	{
		Text:    "What's my favorite movie genre?",
		Options: []string{"😂 Comedy", "😱 Horror", "❤️ Romance", "🎬 Drama", "🚀 Sci-Fi", "🕵️ Mystery"},
	},
	{
		Text:    "Where do I dream of traveling?",
		Options: []string{"🗼 Paris", "🗽 New York", "🗾 Tokyo", "🏛️ Rome", "🕌 Istanbul", "🕋 Saudi Arabia"},
	},
}
