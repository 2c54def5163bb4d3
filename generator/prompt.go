package generator

import (
	"fmt"
	"strings"
)

// followUpTarget is how many FollowUp annotations the proofing pass asks for.
const followUpTarget = 5

// BuildSectionPrompts constructs one prompt pair per section, in the fixed
// section order. Pure string assembly: empty answers interpolate as empty and
// never short-circuit.
func BuildSectionPrompts(answers SurveyAnswers, uploads []UploadedDocument) []Prompt {
	prompts := make([]Prompt, 0, len(Sections))
	for _, spec := range Sections {
		prompts = append(prompts, buildSectionPrompt(spec, answers, uploads))
	}
	return prompts
}

func buildSectionPrompt(spec SectionSpec, answers SurveyAnswers, uploads []UploadedDocument) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are writing the %q section of an educational AI usage policy.\n", spec.Name)
	sb.WriteString("Write only this section, as Markdown, with no meta-commentary, no preamble, and no other sections.\n")
	sb.WriteString("Describe device access, usage frequency, and AI literacy qualitatively; never repeat percentages or numeric survey values.\n")
	sb.WriteString("\nMatch the tone and structure of this example:\n\n")
	sb.WriteString(spec.ExampleTemplate)
	sb.WriteString("\n")
	if spec.Sensitive {
		if ctx := answers.QualitativeContext(); ctx != "" {
			sb.WriteString("\nContext about this community:\n")
			sb.WriteString(ctx)
			sb.WriteString("\n")
		}
	}

	var ub strings.Builder
	ub.WriteString("Survey responses:\n")
	ub.WriteString(answerDump(answers))
	if len(uploads) > 0 {
		ub.WriteString("\nExisting school documents provided for reference:\n")
		for _, doc := range uploads {
			fmt.Fprintf(&ub, "\n--- %s ---\n%s\n", doc.Filename, doc.Content)
		}
	}
	ub.WriteString("\nSection requirements:\n")
	for _, inst := range spec.Instructions {
		fmt.Fprintf(&ub, "- %s\n", inst)
	}

	return Prompt{System: sb.String(), User: ub.String()}
}

// answerDump renders every survey field as a "name: value" line, empty values
// included.
func answerDump(a SurveyAnswers) string {
	var sb strings.Builder
	fields := []struct{ name, value string }{
		{"Policy scope", a.PolicyScope},
		{"Age group", a.AgeGroup},
		{"State", a.State},
		{"Role of author", a.Role},
		{"Device policy", a.DevicePolicy},
		{"Staff device access", a.StaffDeviceAccess},
		{"Student device access", a.StudentDeviceAccess},
		{"Staff generative AI usage", a.StaffGenAIUsage},
		{"Student generative AI usage", a.StudentGenAIUsage},
		{"Leadership AI literacy", a.LeaderAILiteracy},
		{"Staff AI literacy", a.StaffAILiteracy},
		{"Student AI literacy", a.StudentAILiteracy},
		{"Environmental concern", a.EnvironmentalConcern},
		{"Critical priority", a.CriticalPriority},
		{"Selected priorities", strings.Join(a.Priorities, ", ")},
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, "- %s: %s\n", f.name, f.value)
	}
	return sb.String()
}

// BuildProofingPrompt constructs the final annotation pass over the combined
// document. The annotation counts and the one-annotation-per-sentence rule
// are contractual: the renderers downstream assume non-nested tags.
func BuildProofingPrompt(combined string, uploads []UploadedDocument) Prompt {
	var sb strings.Builder
	sb.WriteString("You are proofreading a complete educational AI usage policy. Re-emit the full document with the edits and annotations below. Do not reorder, add, or remove sections.\n\n")
	sb.WriteString("Edits:\n")
	sb.WriteString("- Replace any institution name with a generic phrase such as \"our school\" or \"the district\", including names that appear in referenced documents.\n\n")
	sb.WriteString("Annotations. Wrap spans of the existing text using exactly these forms:\n")
	sb.WriteString("- {{FollowUp (guidance for the reviewer)}}span{{/FollowUp}}\n")
	sb.WriteString("- {{SurveyLink (why this follows from a survey answer|Section Name)}}span{{/SurveyLink}}\n")
	sb.WriteString("- {{DocLink (filename|how this echoes that document)}}span{{/DocLink}}\n\n")
	sb.WriteString("Rules:\n")
	fmt.Fprintf(&sb, "- Insert exactly %d FollowUp annotations, on the sentences that most need human customization.\n", followUpTarget)
	sb.WriteString("- Insert a SurveyLink wherever a sentence is directly attributable to a specific survey answer: at least one per paragraph and at least 10 overall.\n")
	if len(uploads) > 0 {
		names := make([]string, len(uploads))
		for i, d := range uploads {
			names[i] = d.Filename
		}
		fmt.Fprintf(&sb, "- Insert a DocLink wherever content echoes one of the uploaded documents (%s): at least 5 overall. Use the exact filename as the first argument.\n", strings.Join(names, ", "))
	}
	sb.WriteString("- Never apply more than one annotation to the same sentence.\n\n")
	sb.WriteString("Formatting: keep the single # title line, keep every ## section heading, keep ### subsections, keep one blank line between blocks, and keep list markers (*, -, 1.) exactly as they appear.\n")

	return Prompt{System: sb.String(), User: combined}
}
