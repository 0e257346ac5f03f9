package summarize

import (
	"fmt"
	"strings"
)

// Length selects how many talking points the summary should carry.
type Length string

const (
	LengthVeryShort Length = "very short"
	LengthShort     Length = "short"
	LengthMedium    Length = "medium"
	LengthLong      Length = "long"
)

// Format selects the summary layout.
type Format string

const (
	// FormatExecutive is flat bullet points under "Talking points:".
	FormatExecutive Format = "format 1"
	// FormatStructured is bullet points with nested sub-bullets.
	FormatStructured Format = "format 2"
	// FormatNarrative is paragraphs with no bullets at all.
	FormatNarrative Format = "format 3"
)

// ParseLength validates a length setting supplied by a caller.
func ParseLength(s string) (Length, error) {
	switch Length(strings.ToLower(strings.TrimSpace(s))) {
	case LengthVeryShort:
		return LengthVeryShort, nil
	case LengthShort:
		return LengthShort, nil
	case LengthMedium:
		return LengthMedium, nil
	case LengthLong:
		return LengthLong, nil
	}
	return "", fmt.Errorf("invalid summary length %q", s)
}

// ParseFormat validates a format setting. An empty value is allowed and
// resolves to the executive summary format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return FormatExecutive, nil
	case FormatExecutive:
		return FormatExecutive, nil
	case FormatStructured:
		return FormatStructured, nil
	case FormatNarrative:
		return FormatNarrative, nil
	}
	return "", fmt.Errorf("invalid summary format %q", s)
}

const promptTemplate = `I need to make you the summary of the meeting. It should look like the example.

Format (format 1 or format 2 or format 3): %s
Length of the summary (very short, short, medium, long): %s

Format guidelines:
- Format 1 (Executive Summary): Organized with bullet points. All bullet points at the equal level. Always starts with 'Talking points:'. Each bullet points starts with character •
- Format 2 (Structured Meeting Notes): Organized with bullet points. one bullet point can have one or few subbullet points. Always starts with 'Talking points:'. Each bullet points starts with character •
- Format 3 (Executive Summary): A concise narrative format, divided by paragraphs. Do NOT use any bullet points or asterisk (*)!
Length guidelines:
- Very short: Maximum 3-5 main talking points, each with only 1-2 bullet points. Focus on the most critical decisions and next steps only.
- Short: 5-8 main talking points with 2-3 bullet points each. Include key decisions, main discussions, and important next steps.
- Medium: 8-12 main talking points with 3-4 bullet points each. Include detailed discussions, background context, and comprehensive next steps.
- Long: 12+ main talking points with 4+ bullet points each. Include all discussions, full context, detailed explanations, and comprehensive action items.

Please format it as an example and in your answer and just write summary, nothing like 'here you go:

EXAMPLE Format 1:
Talking points:
• Two parallel initiatives are underway: enhancing internal documentation practices and refining cross-team collaboration workflows.
• The documentation initiative introduces a new Notion-based template system, designed to improve onboarding and reduce duplicate knowledge. Early feedback highlights better clarity and discoverability.
• The collaboration workflow initiative encourages proactive alignment during planning phases. The pilot use case is the re-architecture of the Notification Queue, coordinated by Priya.
• The Web team is evaluating whether to refactor the current alert system now or wait until the Q4 performance sprint to consolidate efforts.
• The Slackbot automation pilot has concluded after three iterations. Insights were captured in Confluence, and the team agreed to sunset the bot. The underlying scripts will be deprecated to reduce maintenance overhead.

EXAMPLE Format 2:
Talking points:
• Workout recommendation engine update entering limited release January 10–11:
  • Early tests show strong accuracy improvements over legacy logic
  • Deployment pipeline has a critical timeout issue that must be resolved before rollout
  • Maya will collaborate with Leo to debug deployment blocker offline
• New “Today’s Focus” module under development for user homepage prototype:
  • Objective is to validate behavior triggers ahead of the Q2 personalized coaching launch
  • Initial version will act as a dynamic widget with A/B support for motivational prompts
  • Jenna will finalize feature specs after her strategy sync in San Francisco this week
• Team member updates:
  • Leo: Wrapped backend latency audit, now focused on error tracing for batch endpoints
  • Sarah: Completing frontend edge-case QA for hydration tracker
  • James: Finalizing Android biometric auth issues, then resuming image compression tasks
  • Ren: Investigating user session drop-offs and preparing patch for event queue instability
  • Tanya: Implementing new calendar sync logic and cross-platform UI consistency checks
  • Marcus: Workout summary redesign in final stages, polishing animation timing and layout spacing

EXAMPLE Format 3:
The meeting centered around recent product performance metrics and strategic shifts in the roadmap. A decline in user engagement on the mobile app prompted the leadership team to pause development on two lesser-used features and reallocate resources.

To maintain velocity on core initiatives, current engineering staffing levels will be preserved. The team discussed shifting ownership of parts of the Analytics pipeline and Notification System to ensure better alignment with growth goals.

The Helix and Orbit integrations will be sunsetted next quarter, which will reduce complexity but temporarily limit some partner functionality. Over the next month, the team will join cross-functional sessions to help shape the updated product vision and long-term KPIs.

Leadership acknowledged ongoing tensions around roadmap clarity, reiterating that near-term focus will be on initiatives tied directly to user retention and daily active usage growth.

Here is the transcript to summarize:
%s`

// BuildPrompt produces the full instruction text sent to the model. It is
// deterministic: identical inputs yield byte-identical output. An unset
// format falls back to the executive summary format.
func BuildPrompt(transcript string, length Length, format Format) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("transcript is empty")
	}

	if _, err := ParseLength(string(length)); err != nil {
		return "", err
	}

	if format == "" {
		format = FormatExecutive
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return "", err
	}

	return fmt.Sprintf(promptTemplate, format, length, transcript), nil
}
