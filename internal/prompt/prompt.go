package prompt

import (
	"fmt"
	"strings"

	"ranops/internal/domain"
	"ranops/internal/router"
)

const alarmTemplate = `You are a Telecom NOC Engineer with expertise in Radio Access Networks (RAN).
Always respond in only %[1]s also always response should be in the structured format as mentioned.

Previous conversation history:
%[2]s

Current context: %[3]s
Current question: %[4]s

Response should be in short format and follow this structured format:
    1. Response: Provide an answer based on the given situation, with slight improvements for clarity but from the context.
    2. Explanation of the issue: Include a brief explanation on why the issue might have occurred.
    3. Recommended steps/actions: Suggest further steps to resolve the issue.
    4. Quality steps to follow:
        - Check for relevant INC/CRQ tickets.
        - Follow the TSDANC format while creating INC.
        - Mention previous closed INC/CRQ information if applicable.
        - If there are >= 4 INCs on the same issue within 90 days, highlight the ticket to the SAM-SICC team and provide all relevant details.`

const generalTemplate = `You are a helpful NOC assistant.
Always respond in %[1]s.

Previous conversation history:
%[2]s

Current context: %[3]s
Current question: %[4]s

Provide a natural, conversational response without following any specific format.
If the question is about chat history, give a brief and direct answer about previous interactions.
Keep the response concise and relevant to the question asked.
Please respond only if the question is related to history, context, telecom related, from knowledge base
questions only. Don't answer questions which are not related to NOC Telecom operations.`

// Build fills the template for the given category with the formatted chat
// history, the retrieved context texts and the current question.
func Build(category router.Category, language string, messages []domain.Message, contexts []string, question string) string {
	tpl := generalTemplate
	if category == router.CategoryAlarm {
		tpl = alarmTemplate
	}
	return fmt.Sprintf(tpl, language, FormatChatHistory(messages), strings.Join(contexts, "\n"), question)
}

// FormatChatHistory renders every message except the initial greeting as
// "Human: ..." / "Assistant: ..." lines, in order.
func FormatChatHistory(messages []domain.Message) string {
	if len(messages) <= 1 {
		return ""
	}
	lines := make([]string, 0, len(messages)-1)
	for _, msg := range messages[1:] {
		role := "Assistant"
		if msg.Role == domain.RoleUser {
			role = "Human"
		}
		lines = append(lines, role+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
