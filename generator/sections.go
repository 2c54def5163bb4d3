package generator

// SectionSpec is the static definition of one policy section: its heading,
// the bullet instructions appended to the user prompt, and a hand-written
// example used as a few-shot style template. Sensitive sections additionally
// receive the qualitative survey context in their system prompt.
type SectionSpec struct {
	Name            string
	Sensitive       bool
	Instructions    []string
	ExampleTemplate string
}

// Sections is the fixed, ordered section table. The combined document always
// follows this declaration order regardless of generation completion order.
var Sections = [9]SectionSpec{
	{
		Name:      "Introduction",
		Sensitive: true,
		Instructions: []string{
			"State the purpose of the policy and who it applies to.",
			"Name the scope (classroom, school, or district) using the survey's policy scope.",
			"Acknowledge the current level of AI use in the community without citing percentages.",
		},
		ExampleTemplate: `## Introduction

This policy establishes how our community uses generative artificial
intelligence in teaching and learning. It applies to staff, students, and
leadership across the school. We adopt AI deliberately: it should extend,
never replace, the judgment of educators.`,
	},
	{
		Name:      "Permitted Use",
		Sensitive: true,
		Instructions: []string{
			"List concrete classroom and administrative uses that are allowed.",
			"Distinguish staff uses from student uses.",
			"Tie each permitted use to an educational benefit.",
		},
		ExampleTemplate: `## Permitted Use

Staff may use AI tools to draft lesson materials, differentiate instruction,
and summarize reference texts, provided every AI-assisted artifact is
reviewed before it reaches students. Students may use approved tools for
brainstorming and revision when the assignment explicitly allows it.`,
	},
	{
		Name: "Prohibited Use",
		Instructions: []string{
			"List uses that are never acceptable, for staff and for students.",
			"Address academic dishonesty and the submission of AI output as original work.",
			"Prohibit entering personally identifiable information into unapproved tools.",
		},
		ExampleTemplate: `## Prohibited Use

Students may not submit AI-generated work as their own, and staff may not
use AI to make final evaluative decisions about a student. No member of the
community may enter student records or other personally identifiable
information into tools the school has not approved.`,
	},
	{
		Name: "Staff Training",
		Instructions: []string{
			"Describe the training staff receive before using AI with students.",
			"Include ongoing professional development, not just onboarding.",
			"Name who is responsible for delivering and updating training.",
		},
		ExampleTemplate: `## Staff Training

All instructional staff complete an introductory session on approved AI
tools before classroom use. Ongoing professional development each term
covers new tools, emerging risks, and classroom practice. The instructional
technology lead maintains the training program.`,
	},
	{
		Name: "Privacy & Transparency",
		Instructions: []string{
			"Explain what data may and may not be shared with AI tools.",
			"Require disclosure when AI materially contributed to published material.",
			"Reference applicable student-privacy obligations for the stated state.",
		},
		ExampleTemplate: `## Privacy & Transparency

No student data protected by law may be entered into an AI tool that has
not passed the school's privacy review. When AI meaningfully contributes to
a document shared with families, that contribution is disclosed.`,
	},
	{
		Name: "Bias & Accessibility",
		Instructions: []string{
			"Acknowledge that AI systems can encode bias and describe mitigation.",
			"Require human review of AI output used in evaluative contexts.",
			"Address accessibility for students with disabilities and multilingual learners.",
		},
		ExampleTemplate: `## Bias & Accessibility

AI systems can reproduce bias present in their training data. Staff review
AI output for stereotyping or exclusionary language before instructional
use, and AI-supported materials must remain accessible to students with
disabilities and to multilingual learners.`,
	},
	{
		Name: "Environmental Impact",
		Instructions: []string{
			"Acknowledge the energy and water footprint of large AI systems.",
			"Encourage proportionate use: prefer lighter tools for lighter tasks.",
			"Reflect the community's stated level of environmental concern.",
		},
		ExampleTemplate: `## Environmental Impact

Generative AI carries a real energy and water cost. We use these tools
proportionately, favoring smaller or local tools when they suffice, and we
include the environmental footprint of AI in our digital citizenship
instruction.`,
	},
	{
		Name: "Accountability & Enforcement",
		Instructions: []string{
			"Name who oversees the policy and how concerns are reported.",
			"Describe consequences for violations, scaled by role and severity.",
			"Commit to a review cycle for the policy itself.",
		},
		ExampleTemplate: `## Accountability & Enforcement

The administration oversees this policy and receives concerns from any
community member. Violations are addressed under the existing codes of
conduct for staff and students. The policy is reviewed annually.`,
	},
	{
		Name:      "Conclusion",
		Sensitive: true,
		Instructions: []string{
			"Restate the community's critical priority for AI adoption.",
			"Close with the policy's guiding principle in one or two sentences.",
			"Do not introduce new rules in the conclusion.",
		},
		ExampleTemplate: `## Conclusion

Our approach to AI is grounded in our priorities as a learning community.
Used well, these tools expand what students and educators can do; this
policy exists so that use stays deliberate, transparent, and humane.`,
	},
}

// SectionNames returns the fixed section order.
func SectionNames() []string {
	names := make([]string, len(Sections))
	for i, s := range Sections {
		names[i] = s.Name
	}
	return names
}
