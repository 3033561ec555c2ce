package service

import "fmt"

// ComposePrompt builds the model input. A plain message goes through
// verbatim; a reply carries the replied-to text as context.
func ComposePrompt(text, replyTo string) string {
	if replyTo == "" {
		return text
	}
	return fmt.Sprintf(
		"CONTEXT [Original Msg]: '%s'\n"+
			"ACTION [User Reply]: '%s'\n"+
			"INSTRUCTION: User is updating a request. Extract Item from Context, Status from Action.",
		replyTo, text,
	)
}
