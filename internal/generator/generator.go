// Package generator produces template-based creative content: stories,
// emails, blog posts and text continuations.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

var storyTemplates = []string{
	"Once upon a time in %[1]s, there lived a %[2]s who %[3]s.",
	"In the year %[4]s, %[2]s discovered %[5]s while %[6]s.",
	"The %[7]s %[2]s decided to %[3]s despite the %[8]s.",
	"Every morning, %[2]s would %[9]s before %[6]s.",
}

var emailTemplates = map[string]string{
	"professional": "Dear %[1]s,\n\nI hope this email finds you well. I am writing to %[3]s. %[4]s\n\nBest regards,\n%[2]s",
	"casual":       "Hi %[1]s!\n\n%[5]s I wanted to %[3]s. %[4]s\n\nTalk soon,\n%[2]s",
	"formal":       "Dear %[1]s,\n\nI am writing to formally %[3]s. %[4]s\n\nSincerely,\n%[2]s",
}

var blogTemplates = []string{
	"# %[1]s\n\n%[2]s\n\n## Main Points\n\n%[3]s\n\n## Conclusion\n\n%[4]s",
	"# %[1]s\n\n%[5]s\n\n%[3]s\n\n**Key Takeaways:**\n- %[6]s\n- %[7]s\n- %[8]s",
}

var wordBanks = map[string][]string{
	"settings":    {"a distant galaxy", "ancient Rome", "modern Tokyo", "a small village", "the deep ocean", "a magical forest"},
	"characters":  {"brave knight", "curious scientist", "young artist", "wise elder", "mysterious stranger", "talented musician"},
	"actions":     {"embarked on an adventure", "made an important discovery", "faced their greatest fear", "learned a valuable lesson"},
	"adjectives":  {"determined", "creative", "ambitious", "thoughtful", "innovative", "passionate"},
	"years":       {"2025", "2030", "2040", "3025", "1995", "2050"},
	"discoveries": {"a hidden treasure", "ancient wisdom", "new technology", "a secret passage", "magical powers"},
	"activities":  {"exploring caves", "reading old books", "experimenting in the lab", "traveling the world"},
	"obstacles":   {"terrible storm", "lack of resources", "fierce competition", "personal doubts"},
	"routines":    {"meditate quietly", "practice their craft", "study ancient texts", "exercise vigorously"},
}

var (
	storyConsequences = []string{"unexpected consequences", "new friendships", "great success", "valuable lessons"}
	storyResolutions  = []string{"achieved their goal", "found peace", "inspired others", "discovered their true purpose"}
)

var continuations = map[string][]string{
	"creative": {
		" This sparked a new idea that would change everything.",
		" Little did they know, this was just the beginning.",
		" The implications of this were far-reaching.",
		" Something unexpected was about to happen.",
		" This moment would be remembered for years to come.",
	},
	"informative": {
		" Research shows that this approach has several benefits.",
		" It's important to consider the following factors.",
		" This concept can be applied in various contexts.",
		" Further analysis reveals additional insights.",
		" These findings suggest new possibilities.",
	},
	"conversational": {
		" You might be wondering what happened next.",
		" I think you'll find this interesting.",
		" This reminds me of something similar.",
		" Here's what I learned from this experience.",
		" Let me tell you what happened after that.",
	},
}

var defaultContinuations = []string{
	" This leads to several important considerations.",
	" The next step involves careful planning.",
	" These developments warrant further attention.",
	" Such circumstances require thoughtful analysis.",
}

// Result is one generated document.
type Result struct {
	GeneratedText  string `json:"generated_text"`
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
	Type           string `json:"type"`
}

// ContinuationResult is the outcome of continuing an existing text.
type ContinuationResult struct {
	GeneratedText  string `json:"generated_text"`
	OriginalLength int    `json:"original_length"`
	NewLength      int    `json:"new_length"`
	AddedText      string `json:"added_text"`
	Type           string `json:"type"`
}

// Generator fills templates with random word-bank choices. The random
// source is guarded by a mutex, so a Generator is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Generator seeded from the clock.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a Generator with a fixed seed for reproducible output.
func NewSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) pick(choices []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return choices[g.rng.Intn(len(choices))]
}

// Story generates a short template story. Length medium appends one
// consequence sentence and long appends a resolution as well. A non-empty
// theme is prefixed as an annotation.
func (g *Generator) Story(theme, length string) *Result {
	template := g.pick(storyTemplates)
	story := fmt.Sprintf(template,
		g.pick(wordBanks["settings"]),
		g.pick(wordBanks["characters"]),
		g.pick(wordBanks["actions"]),
		g.pick(wordBanks["years"]),
		g.pick(wordBanks["discoveries"]),
		g.pick(wordBanks["activities"]),
		g.pick(wordBanks["adjectives"]),
		g.pick(wordBanks["obstacles"]),
		g.pick(wordBanks["routines"]),
	)

	switch length {
	case "medium":
		story += fmt.Sprintf(" This led to %s.", g.pick(storyConsequences))
	case "long":
		story += fmt.Sprintf(" This led to %s.", g.pick(storyConsequences))
		story += fmt.Sprintf(" Eventually, they %s.", g.pick(storyResolutions))
	}

	if theme != "" {
		story = fmt.Sprintf("[Theme: %s] %s", theme, story)
	}
	return result(story, "story")
}

// Email generates an email in the given style. Unknown styles fall back to
// professional. The detail sentence is chosen from the purpose's wording.
func (g *Generator) Email(style, purpose, recipient, sender string) (*Result, error) {
	if strings.TrimSpace(purpose) == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "email purpose is required")
	}
	if recipient == "" {
		recipient = "Recipient"
	}
	if sender == "" {
		sender = "Sender"
	}

	template, ok := emailTemplates[style]
	if !ok {
		template = emailTemplates["professional"]
	}

	var details, greeting string
	purposeLower := strings.ToLower(purpose)
	switch {
	case strings.Contains(purposeLower, "meeting"):
		details = "I would like to schedule a meeting to discuss this matter further. Please let me know your availability."
		greeting = "Hope you're having a great day!"
	case strings.Contains(purposeLower, "follow"):
		details = "I wanted to follow up on our previous conversation and see if you had any questions."
		greeting = "Hope you're doing well!"
	case strings.Contains(purposeLower, "thank"):
		details = "I wanted to express my sincere gratitude for your time and assistance."
		greeting = "Hope this finds you well!"
	default:
		details = "I look forward to your response and any feedback you might have."
		greeting = "Hope you're having a wonderful day!"
	}

	email := fmt.Sprintf(template, recipient, sender, purpose, details, greeting)
	return result(email, "email"), nil
}

// BlogPost generates a markdown post from a title and main points. Fewer
// than three points are padded into the takeaway list.
func (g *Generator) BlogPost(title string, mainPoints []string) (*Result, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "blog title is required")
	}
	if len(mainPoints) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "at least one main point is required")
	}

	intro := fmt.Sprintf("In this post, we'll explore %s and discuss why it matters in today's world.", strings.ToLower(title))
	sections := make([]string, len(mainPoints))
	for i, point := range mainPoints {
		sections[i] = fmt.Sprintf("### %s\n\nThis is an important aspect that deserves careful consideration.", point)
	}
	content := strings.Join(sections, "\n\n")
	conclusion := "In summary, these insights can help guide future decisions and actions."

	takeaways := append([]string(nil), mainPoints...)
	for len(takeaways) < 3 {
		takeaways = append(takeaways, "Consider the broader implications")
	}

	post := fmt.Sprintf(g.pick(blogTemplates),
		title, intro, content, conclusion,
		"Have you ever wondered about this topic?",
		takeaways[0], takeaways[1], takeaways[2],
	)
	return result(post, "blog_post"), nil
}

// Continue appends a style-appropriate continuation sentence to the input.
func (g *Generator) Continue(input, style string) (*ContinuationResult, error) {
	if strings.TrimSpace(input) == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "input text is required")
	}

	choices, ok := continuations[style]
	if !ok {
		choices = defaultContinuations
	}
	added := g.pick(choices)
	continued := input + added

	return &ContinuationResult{
		GeneratedText:  continued,
		OriginalLength: len(strings.Fields(input)),
		NewLength:      len(strings.Fields(continued)),
		AddedText:      added,
		Type:           "continuation",
	}, nil
}

func result(text, kind string) *Result {
	return &Result{
		GeneratedText:  text,
		WordCount:      len(strings.Fields(text)),
		CharacterCount: len(text),
		Type:           kind,
	}
}
