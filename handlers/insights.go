package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"
)

// CategorySuggestion is one AI-proposed assignment for an uncategorized
// transaction.
type CategorySuggestion struct {
	TransactionID     string `json:"transaction_id"`
	SuggestedCategory string `json:"suggested_category"`
}

// SuggestCategories asks Gemini to propose categories for the user's
// uncategorized transactions, preferring the user's existing category names.
func (h *Handler) SuggestCategories(c *fiber.Ctx) error {
	if h.Cfg.GeminiAPIKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "AI not configured",
			"message": "GEMINI_API_KEY is not set",
		})
	}

	uid := userID(c)

	// Limit to 50 to avoid token limits and ensure speed
	txns, err := h.Store.Transactions.FindUncategorized(uid, 50)
	if err != nil {
		return internalError(c, "Failed to fetch transactions")
	}
	if len(txns) == 0 {
		return c.JSON(fiber.Map{
			"message":     "No uncategorized transactions found",
			"suggestions": []CategorySuggestion{},
		})
	}

	categories, err := h.Store.Categories.ListByUser(uid)
	if err != nil {
		return internalError(c, "Failed to fetch categories")
	}
	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}

	var promptBuilder strings.Builder
	promptBuilder.WriteString("You are a personal finance assistant. Assign a category to each transaction below.\n")
	promptBuilder.WriteString("Return a RAW JSON ARRAY of objects. Do NOT use markdown formatting.\n")
	promptBuilder.WriteString("Each object must have: 'transaction_id' and 'suggested_category'.\n")
	if len(names) > 0 {
		promptBuilder.WriteString("Prefer one of the user's existing categories: " + strings.Join(names, ", ") + ".\n")
	}
	promptBuilder.WriteString("\n")
	for _, t := range txns {
		promptBuilder.WriteString(fmt.Sprintf(`{"transaction_id": "%s", "description": "%s", "amount": %.2f}`+"\n",
			t.ID, t.Description, t.Amount))
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: h.Cfg.GeminiAPIKey})
	if err != nil {
		log.Printf("Error initializing AI client: %v", err)
		return internalError(c, "Failed to init AI client")
	}

	resp, err := client.Models.GenerateContent(ctx, "gemini-1.5-flash", genai.Text(promptBuilder.String()), nil)
	if err != nil {
		log.Printf("Error during AI generation: %v", err)
		return internalError(c, "AI generation failed")
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return internalError(c, "Empty response from AI")
	}

	rawText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			rawText += part.Text
		}
	}

	// Strip markdown fences; Gemini loves adding ```json ... ```
	rawText = strings.TrimSpace(rawText)
	rawText = strings.TrimPrefix(rawText, "```json")
	rawText = strings.TrimPrefix(rawText, "```")
	rawText = strings.TrimSuffix(rawText, "```")

	var suggestions []CategorySuggestion
	if err := json.Unmarshal([]byte(rawText), &suggestions); err != nil {
		log.Printf("Error parsing AI response: %v", err)
		return internalError(c, "Failed to parse AI response")
	}

	return c.JSON(fiber.Map{
		"count":       len(suggestions),
		"suggestions": suggestions,
	})
}
