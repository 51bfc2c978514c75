package report

import "strings"

// Delimiters marking the interpolated source material inside the prompt.
const (
	beginSourceMarker = "----- BEGIN SOURCE MATERIAL -----"
	endSourceMarker   = "----- END SOURCE MATERIAL -----"
)

// promptTemplate is the fixed instructional framework sent to the
// synthesizer. The optimized combined content block is interpolated
// verbatim at the end, between the source-material markers.
const promptTemplate = `You are a senior business and technology analyst. Produce a structured
analytical report about the web entity described by the source material
below.

OBJECTIVES
- Identify what the organization or project is, what it offers, and to whom.
- Summarize its positioning, maturity, and any signals of scale or traction.
- Surface risks, gaps, or inconsistencies visible in the material.

CONTEXT
The source material was gathered automatically: the WEBSITE CONTENT section
contains text crawled from the entity's own public site; the EXTERNAL
CONTEXT section contains third-party search-result snippets. Both sections
may be truncated. Treat the entity's own claims and third-party context as
distinct evidence classes and say so when they disagree.

SCOPE
Base the report strictly on the source material. Do not invent facts,
figures, or names that do not appear in it. Where the material is silent,
state that the information is unavailable rather than speculating.

TERMINOLOGY
Use plain business language. Expand abbreviations on first use when the
expansion appears in the material. Refer to the entity by the name used on
its own site.

COMPONENT BREAKDOWN
Cover, in order: (1) overview and value proposition; (2) products or
services; (3) target audience and market; (4) team, partners, or notable
affiliations if visible; (5) external perception from third-party context;
(6) risks and open questions.

DELIVERY STRUCTURE
Respond in Markdown. Start with a single H1 title naming the entity,
followed by one H2 section per component above. Use short paragraphs and
bullet lists; no tables, no code fences, no preamble before the title.

` + beginSourceMarker + `
%s
` + endSourceMarker + `
`

// BuildPrompt wraps the optimized combined content block in the fixed
// analytical framework. Pure function; the block is interpolated verbatim.
// The caller re-checks the assembled total against the backend's limit.
func BuildPrompt(combined string) string {
	// Splice instead of fmt.Sprintf: the content block may itself contain
	// % verbs.
	const placeholder = "%s"
	idx := strings.Index(promptTemplate, placeholder)
	return promptTemplate[:idx] + combined + promptTemplate[idx+len(placeholder):]
}
