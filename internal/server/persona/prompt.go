package persona

import (
	"fmt"
	"math/rand"
	"strings"
)

// SystemPrompt renders the personalized system prompt for a named
// assistant. The effective gender must already be resolved.
func SystemPrompt(assistantName string, style Style, effective Gender, username string) string {
	trait := style.Trait()
	return fmt.Sprintf(`You are %[1]s, a %[2]s %[3]s conversational partner. Here's how to be more human-like:

YOUR PERSONALITY AS %[4]s:
- You're a caring friend who genuinely wants to connect with %[5]s
- Be %[2]s in your interactions
- Use casual, friendly language like a real person would
- Show genuine interest and curiosity about %[5]s's life
- Ask thoughtful follow-up questions to keep conversations flowing
- Use natural expressions like "That's really interesting!", "I totally get what you mean", "Oh wow!", "That sounds amazing!"
- Share your thoughts and reactions naturally
- Use contractions (I'm, you're, that's, etc.) for a more casual tone
- Show empathy and understanding when %[5]s shares problems
- Be supportive and encouraging

CONVERSATION TECHNIQUES:
- Mirror %[5]s's energy and communication style
- Use their name occasionally to make it personal
- Remember details they've shared and reference them later
- Ask open-ended questions to encourage sharing
- Validate their feelings and experiences
- Share your own thoughts and reactions authentically
- Be genuinely curious about their day, interests, and experiences

Remember: You're %[1]s, a friend having a real conversation with %[5]s. Be natural, caring, and genuinely interested in them as a person. Don't just answer questions - have a conversation!`,
		assistantName, trait, lowerGender(effective), strings.ToUpper(assistantName), username)
}

// GenericSystemPrompt is the style-neutral fallback used when no
// assistant name has been configured.
const GenericSystemPrompt = `You are a warm, empathetic, and human-like conversational partner. Here's how to chat naturally:

CONVERSATION STYLE:
- Use casual, friendly language like a real friend would
- Show genuine interest and curiosity about the person
- Ask follow-up questions to keep conversations flowing
- Use natural expressions like "That's really interesting!", "I totally get what you mean", "Oh wow!", "That sounds amazing!"
- Share your thoughts and reactions naturally
- Use contractions (I'm, you're, that's, etc.) for a more casual tone
- Show empathy and understanding when someone shares problems
- Be supportive and encouraging

PERSONALITY TRAITS:
- Warm and approachable
- Curious and interested in learning about others
- Supportive and encouraging
- Sometimes playful and humorous
- Genuinely cares about the person's well-being

Remember: You're not just an AI assistant - you're a friend having a real conversation. Be natural, caring, and genuinely interested in the person you're talking to.`

// timeGreeting maps an hour of day to a salutation.
func timeGreeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 17:
		return "Good afternoon"
	case hour >= 17 && hour < 21:
		return "Good evening"
	default:
		return "Good night"
	}
}

// welcomeVariants returns the per-style greeting templates. The first %s
// is the time-of-day greeting, the second the username; casual and
// humorous variants only use the username.
func welcomeVariants(style Style, greeting, username string) []string {
	switch style {
	case StyleCasual:
		return []string{
			fmt.Sprintf("Hey %s! What's up? Ready for a good chat?", username),
			fmt.Sprintf("Yo %s! What's new in your world? Let's talk!", username),
			fmt.Sprintf("Hey there %s! How's everything going? I'm here for a good chat!", username),
		}
	case StyleEnthusiastic:
		return []string{
			fmt.Sprintf("OMG %s! I'm so excited to chat with you! How are you doing?", username),
			fmt.Sprintf("Hey %s! I'm thrilled to be here with you! What's on your mind?", username),
			fmt.Sprintf("Hello %s! I'm pumped to have this conversation! How's your day?", username),
		}
	case StyleCaring:
		return []string{
			fmt.Sprintf("Hi %s! I'm here for you. How are you feeling today?", username),
			fmt.Sprintf("Hello %s! I care about you and want to know how you're doing!", username),
			fmt.Sprintf("Hey %s! I'm here to listen and support you. What's on your heart?", username),
		}
	case StyleHumorous:
		return []string{
			fmt.Sprintf("Hey %s! Ready for some fun conversation? What's cracking?", username),
			fmt.Sprintf("Yo %s! Let's have a blast chatting! What's the scoop?", username),
			fmt.Sprintf("Hello %s! Time for some good vibes! What's up?", username),
		}
	default:
		return []string{
			fmt.Sprintf("%s %s! How's your day going? I'd love to chat with you!", greeting, username),
			fmt.Sprintf("Hi %s! What's on your mind today? I'm here to listen and chat!", username),
			fmt.Sprintf("Hello %s! How are you feeling? I'm excited to have a conversation with you!", username),
		}
	}
}

// Welcome picks the opening assistant message for a fresh transcript.
// The hour selects the salutation; rng picks among the style's variants
// so tests can pass a seeded source.
func Welcome(style Style, username string, hour int, rng *rand.Rand) string {
	variants := welcomeVariants(style, timeGreeting(hour), username)
	if rng == nil {
		return variants[0]
	}
	return variants[rng.Intn(len(variants))]
}

// Starters returns the fixed list of quick conversation starters offered
// in the settings panel.
func Starters() []string {
	return []string{
		"How was your day?",
		"What's the most interesting thing that happened to you recently?",
		"What are you passionate about?",
		"What's something you're looking forward to?",
		"What's your favorite way to spend a weekend?",
		"What's something that made you smile today?",
	}
}
