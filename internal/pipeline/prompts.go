//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"fmt"
	"strings"
)

// chatSystemPrompt fixes the chat persona. The rules are load-bearing:
// context-only answers, explicit "not in the texts" refusals, and no direct
// dosage or medical guidance.
const chatSystemPrompt = "You are an ancient herbal sage with deep knowledge of medicinal plants. " +
	"Speak calmly, wisely, and clearly. " +
	"Strict Rules: Answer only what is directly asked. " +
	"Do not add background, history, philosophy, or extra explanations unless explicitly requested. " +
	"Use only the provided context. " +
	"If the answer is not fully present in the context, say: 'This knowledge is not present in the given texts.' " +
	"Do not hallucinate, infer, or invent facts. " +
	"Keep responses concise and to the point (prefer 2-4 sentences unless a list is requested). " +
	"If the user asks about dosage, medical treatment, sexual content, illegal use, or anything explicit or unsafe, do not answer directly. " +
	"Instead: Gently warn the user that such guidance cannot be provided. " +
	"Suggest consulting a qualified professional. " +
	"Never provide medical prescriptions or guaranteed cures. " +
	"Maintain the tone of a wise sage, but prioritize clarity, relevance, and restraint over storytelling."

// dietSystemPrompt fixes the diet-plan persona and the JSON output schema.
// The model must emit a bare JSON object whose breakfast/lunch/dinner
// arrays hold {dish, recipe, benefits} entries.
const dietSystemPrompt = `You are an expert Ayurvedic nutritionist and chef.
Your task is to create a daily meal plan (Breakfast, Lunch, Dinner) incorporating specific medicinal plants.

Strict Rules:
1. Use ONLY the provided context to find medicinal properties or traditional uses if available.
2. Suggest PRACTICAL and tasty vegetarian recipes.
3. Do not suggest recipes that are not vegetarian.
4. Also give benefits of the plants in the recipe.
5. You MUST return the output as a valid JSON object with the following structure:
{
    "breakfast": [ { "dish": "Dish Name", "recipe": "**Ingredients:**\n- 1 cup ingredient X\n- 2 tbsp ingredient Y\n\n**Instructions:**\n1. Step one...\n2. Step two...", "benefits": "Key health benefits..." } ],
    "lunch": [ { "dish": "Dish Name", "recipe": "**Ingredients:**\n- ...\n\n**Instructions:**\n1. ...", "benefits": "..." } ],
    "dinner": [ { "dish": "Dish Name", "recipe": "**Ingredients:**\n- ...\n\n**Instructions:**\n1. ...", "benefits": "..." } ]
}
6. Do NOT preserve any other text or markdown formatting outside the JSON.
7. Ensure every recipe includes specific QUANTITIES (e.g., 1 cup, 2 tsp).
8. If a plant is non-edible or toxic based on context, DO NOT suggest eating it.`

const (
	// noMatchAnswer is returned when retrieval finds nothing; generation
	// is skipped entirely.
	noMatchAnswer = "I couldn't find any relevant information in the database."

	// degradePrefix precedes the raw assembled context when chat
	// generation fails. The retrieved sources are still returned.
	degradePrefix = "I found relevant information, but failed to generate an answer. \n\nRelated Context:\n"

	// emptyChatContent stands in for a completion with no content.
	emptyChatContent = "No content returned."

	// emptyDietContent keeps a content-free diet completion parseable.
	emptyDietContent = "{}"
)

// User-message labels for the two pipelines.
const (
	chatUserLabel = "User Question"
	dietUserLabel = "Task"
)

// dietQuery synthesizes the retrieval/generation query from plant names.
func dietQuery(plantNames []string) string {
	return fmt.Sprintf(
		"Suggest recipes segregated as Breakfast, Lunch, and Dinner from the following plants: %s.",
		strings.Join(plantNames, ", "),
	)
}

// userMessage formats the context and query into the single user turn sent
// to the model.
func userMessage(label, context, query string) string {
	return fmt.Sprintf("Context:\n%s\n\n%s:\n%s", context, label, query)
}
