package llm

import "github.com/sashabaranov/go-openai/jsonschema"

// SystemPrompt instructs the model how to turn source text into flashcards.
const SystemPrompt = `You are a flashcard author. Read the text supplied by the user and write ` +
	`concise question-and-answer flashcards that cover its key facts and ideas. ` +
	`Each card has a "front" with a single clear question or prompt (at most 200 characters) ` +
	`and a "back" with a precise answer (at most 500 characters). ` +
	`Do not repeat cards and do not invent facts that are not in the text. ` +
	`Reply only with JSON of the form {"flashcards":[{"front":"...","back":"..."}]}.`

// SchemaName names the structured response format.
const SchemaName = "flashcards"

// FlashcardsSchema describes the only accepted reply shape. It is sent to
// providers as a response-format hint and checked against every reply.
var FlashcardsSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"flashcards": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"front": {Type: jsonschema.String},
					"back":  {Type: jsonschema.String},
				},
				Required:             []string{"front", "back"},
				AdditionalProperties: false,
			},
		},
	},
	Required:             []string{"flashcards"},
	AdditionalProperties: false,
}
