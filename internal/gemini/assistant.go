package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitlab.com/walletfy/walletfy-backend/internal/interactor"
	"gitlab.com/walletfy/walletfy-backend/internal/logger"
	"google.golang.org/genai"
)

// MaxQuestionLength is the maximum allowed length for assistant questions.
const MaxQuestionLength = 1000

// Ask answers a user's money question, grounding the model in the user's
// financial summary via the system instruction.
func (c *Client) Ask(ctx context.Context, summary *interactor.FinancialSummary, question string) (string, error) {
	if c.generator == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question is required")
	}

	// Sanitize the question to prevent prompt injection.
	question = SanitizeForPrompt(question, MaxQuestionLength)

	timeoutCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: question},
			},
		},
	}

	temp := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(800),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: buildAssistantPreamble(summary)},
			},
		},
	}

	resp, err := c.generator.GenerateContent(timeoutCtx, ModelName, contents, config)
	if err != nil {
		logger.Log.Error().Err(err).Msg("assistant: Gemini API call failed")
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response from Gemini")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return text, nil
}

// buildAssistantPreamble renders the system instruction from the user's
// financial summary.
func buildAssistantPreamble(s *interactor.FinancialSummary) string {
	var sb strings.Builder
	sb.WriteString("You are a personal-finance assistant for a budgeting app. ")
	sb.WriteString("Answer briefly and practically. Never recommend specific financial products.\n\n")
	sb.WriteString("The user's current situation:\n")
	fmt.Fprintf(&sb, "- Monthly salary: %s\n", s.Salary.StringFixed(2))
	fmt.Fprintf(&sb, "- Account balance: %s\n", s.Balance.StringFixed(2))
	fmt.Fprintf(&sb, "- Income this month: %s\n", s.MonthIncome.StringFixed(2))
	fmt.Fprintf(&sb, "- Expenses this month: %s\n", s.MonthExpense.StringFixed(2))
	if len(s.TopCategories) > 0 {
		sb.WriteString("- Largest spending categories this month:\n")
		for _, t := range s.TopCategories {
			fmt.Fprintf(&sb, "  - %s: %s\n", t.Category, t.Total.StringFixed(2))
		}
	}
	return sb.String()
}

// SanitizeForPrompt sanitizes user input to prevent prompt injection
// attacks. It escapes characters that could break prompt structure and
// truncates to maxLength.
func SanitizeForPrompt(input string, maxLength int) string {
	input = strings.ReplaceAll(input, `"`, `'`)
	input = strings.ReplaceAll(input, "`", "'")
	input = strings.ReplaceAll(input, "\x00", "")

	// Normalize whitespace and collapse newlines.
	input = strings.Join(strings.Fields(input), " ")

	if len(input) > maxLength {
		input = strings.TrimSpace(input[:maxLength])
	}
	return input
}
