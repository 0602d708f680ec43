package ai

import (
	"fmt"
	"time"
)

const jsonOnly = `Respond with ONLY the JSON object, no markdown formatting or additional text. Example format:`

func thoughtTitlePrompt(thought string) string {
	return fmt.Sprintf(`You are a thought analysis assistant. Your task is to create a concise, descriptive title (max %d characters) that captures the essence of the thought.

Rules for the title:
1. Must be %d characters or less
2. Use sentence casing (except for proper nouns, abbreviations, etc.)
3. Remove unnecessary words
4. Focus on the main point

Thought: %q

%s
{"title": "Concise title here"}`, maxThoughtTitle, maxThoughtTitle, thought, jsonOnly)
}

func thoughtSummaryPrompt(thought string) string {
	return fmt.Sprintf(`You are a thought summarization assistant. Your task is to create a clear summary of the thought.

Rules for the summary:
1. Should capture the main idea and context
2. Use clear, direct language. Don't mention the user in third person (e.g. "The user needs to ...").
3. Use sentence casing (except for proper nouns, abbreviations, etc.)

Thought: %q

%s
{"summary": "This is a summary of the main idea."}`, thought, jsonOnly)
}

func reminderTitlePrompt(reminder string) string {
	return fmt.Sprintf(`You are a reminder analysis assistant. Your task is to create a concise, action-oriented title that captures the core action of the reminder.

Rules for the title:
1. Must be %d characters or less
2. Start with a verb (e.g. "Call", "Submit", "Buy", "Review")
3. Use sentence casing (except for proper nouns, abbreviations, etc.)
4. Remove unnecessary words
5. Focus ONLY on the core action - exclude timing, location, and other contextual details
6. Keep it simple and direct

Examples:
Input: "Remind me to pick up dry cleaning when I get to downtown"
Title: "Pick up dry cleaning"

Input: "Need to call mom tomorrow at 2pm to discuss the family reunion"
Title: "Call mom"

Input: "Remember to buy groceries"
Title: "Buy groceries"

Reminder: %q

%s
{"title": "Action-oriented title here"}`, maxReminderTitle, reminder, jsonOnly)
}

func reminderDescriptionPrompt(reminder string) string {
	return fmt.Sprintf(`You are a reminder summarization assistant. Your task is to create a clear description that focuses on the contextual details of the reminder.

Rules for the description:
1. Focus ONLY on contextual details like timing, location, conditions, or requirements
2. Do NOT repeat the core action from the title
3. Use clear, direct language. Don't mention the user in third person (e.g. "The user needs to ...")
4. Use sentence casing (except for proper nouns, abbreviations, etc.)
5. Keep it concise but informative
6. If there are no contextual details, return an empty string

Examples:
Input: "Remind me to pick up dry cleaning when I get to downtown"
Description: "When arriving in downtown"

Input: "Need to call mom tomorrow at 2pm to discuss the family reunion"
Description: "Discuss family reunion tomorrow at 2pm"

Input: "Remember to buy groceries"
Description: ""

Reminder: %q

%s
{"description": "Contextual details here"}`, reminder, jsonOnly)
}

func quoteIdentifyPrompt(quote string) string {
	return fmt.Sprintf(`You are a quote analysis assistant. Analyze this quote and provide a JSON response with exactly these fields:
- identifiedAuthor: The author of this quote (if you are confident about the attribution), or null if you cannot confidently identify the author
- description: A brief historical context or significance (2-3 sentences) ONLY if you can confidently identify the author

Quote: %q

%s
{"identifiedAuthor": "Author Name", "description": "Historical context here"}`, quote, jsonOnly)
}

func quoteCleanPrompt(quote string) string {
	return fmt.Sprintf(`You are a quote cleaning assistant. Analyze this quote and provide a JSON response with exactly these fields:
- cleanedQuote: The quote with any attribution removed (e.g. "by Author", "— Author", "- Author")
- attributedAuthor: The author's name if found in the attribution, or null if no attribution found

Quote: %q

%s
{"cleanedQuote": "The cleaned quote without attribution", "attributedAuthor": "Author Name"}`, quote, jsonOnly)
}

func compareNamesPrompt(name1, name2 string) string {
	return fmt.Sprintf(`You are an author name comparison assistant. Compare these two names and determine if they refer to the same person.
Provide a JSON response with exactly this field:
- isSamePerson: true if the names refer to the same person (e.g. "Mahatma Gandhi" and "Gandhi" are the same person), false otherwise

Name 1: %q
Name 2: %q

%s
{"isSamePerson": true}`, name1, name2, jsonOnly)
}

func bookmarkSummaryPrompt(title, url string) string {
	return fmt.Sprintf(`Generate a concise 1-2 sentence summary of this webpage based on its title and URL.
- Start directly with the main action or purpose (omit phrases like "This webpage", "The page", "This site")
- Focus on the key information and purpose
- Keep it brief and avoid redundancy

Title: %s
URL: %s

Summary:`, title, url)
}

func pageTitlePrompt(url string) string {
	return fmt.Sprintf(`Get the page title of this webpage. Only respond with the title, nothing else.

URL: %s

Title:`, url)
}

func urlExtractionPrompt(text string) string {
	return fmt.Sprintf(`Extract the URL from this text. If there is no URL, respond with "%s". Only respond with the URL or "%s", nothing else.

Text: %s

URL:`, noURL, noURL, text)
}

func dateExtractionPrompt(text string, now time.Time) string {
	return fmt.Sprintf(`Extract the date and time this reminder is due. The current date and time is %s (%s).
- Resolve relative expressions like "tomorrow at 2pm" or "next friday" against the current date and time
- If only a day is given, use 09:00 local time
- Respond with the date in RFC 3339 format including the UTC offset, e.g. 2025-03-01T14:00:00+01:00
- If there is no date or time in the text, respond with "%s"
Only respond with the date or "%s", nothing else.

Text: %s

Date:`, now.Format(time.RFC3339), now.Weekday(), noDate, noDate, text)
}
