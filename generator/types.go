package generator

import "strings"

// SurveyAnswers is the flat record collected by the questionnaire wizard.
// Empty string means "unanswered" and is interpolated into prompts as-is;
// no field is validated individually.
type SurveyAnswers struct {
	PolicyScope          string   `json:"policy_scope"`
	AgeGroup             string   `json:"age_group"`
	State                string   `json:"state"`
	Role                 string   `json:"role"`
	DevicePolicy         string   `json:"device_policy"`
	StaffDeviceAccess    string   `json:"staff_device_access"`
	StudentDeviceAccess  string   `json:"student_device_access"`
	StaffGenAIUsage      string   `json:"staff_genai_usage"`
	StudentGenAIUsage    string   `json:"student_genai_usage"`
	LeaderAILiteracy     string   `json:"leader_ai_literacy"`
	StaffAILiteracy      string   `json:"staff_ai_literacy"`
	StudentAILiteracy    string   `json:"student_ai_literacy"`
	EnvironmentalConcern string   `json:"environmental_concern"`
	CriticalPriority     string   `json:"critical_priority"`
	Priorities           []string `json:"priorities"`
}

// UploadedDocument is a supporting document attached to a session. Content is
// plain extracted text; PDF extraction happens before this boundary.
type UploadedDocument struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// GeneratedSection holds one section's output: either model text or a
// synthesized error string. Errors are data here, never propagated.
type GeneratedSection struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Quota is the per-user counter limiting final (annotated) generations.
type Quota struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// Closed answer vocabularies for the questions whose values feed the
// qualitative context tables. The wizard submits these exact strings; any
// other value contributes no qualitative sentence.

// AccessBand is a device-access percentage band.
type AccessBand string

const (
	AccessLow      AccessBand = "0-25%"
	AccessModerate AccessBand = "26-50%"
	AccessHigh     AccessBand = "51-75%"
	AccessFull     AccessBand = "76-100%"
)

// UsageFrequency describes how often a group already uses generative AI.
type UsageFrequency string

const (
	UsageNever      UsageFrequency = "Never"
	UsageRarely     UsageFrequency = "Rarely"
	UsageSometimes  UsageFrequency = "Sometimes"
	UsageFrequently UsageFrequency = "Frequently"
	UsageDaily      UsageFrequency = "Daily"
)

// LiteracyLevel describes a group's AI literacy.
type LiteracyLevel string

const (
	LiteracyLow    LiteracyLevel = "Low"
	LiteracyMedium LiteracyLevel = "Medium"
	LiteracyHigh   LiteracyLevel = "High"
)

var staffAccessContext = map[AccessBand]string{
	AccessLow:      "Limited staff device access necessitates careful AI rollout planning.",
	AccessModerate: "Partial staff device access means AI adoption will be uneven across teams.",
	AccessHigh:     "Most staff have device access, supporting a broad AI rollout.",
	AccessFull:     "Near-universal staff device access allows organization-wide AI adoption.",
}

var studentAccessContext = map[AccessBand]string{
	AccessLow:      "Few students have device access, so AI use will be largely teacher-mediated.",
	AccessModerate: "Only some students have devices, so equitable access must be addressed before AI assignments.",
	AccessHigh:     "Most students have device access, making supervised student AI use practical.",
	AccessFull:     "Near-universal student device access makes student-facing AI guidance essential.",
}

var staffUsageContext = map[UsageFrequency]string{
	UsageNever:      "Staff are not yet using generative AI, so the policy introduces it from first principles.",
	UsageRarely:     "Staff rarely use generative AI today, so expectations should start conservatively.",
	UsageSometimes:  "Staff occasionally use generative AI, so the policy formalizes emerging practice.",
	UsageFrequently: "Staff frequently use generative AI, so clear boundaries are an immediate need.",
	UsageDaily:      "Staff use generative AI daily, so the policy governs an already-embedded practice.",
}

var studentUsageContext = map[UsageFrequency]string{
	UsageNever:      "Students are not yet using generative AI in coursework.",
	UsageRarely:     "Students rarely use generative AI, leaving room to shape habits early.",
	UsageSometimes:  "Students sometimes use generative AI, so academic-integrity expectations must be explicit.",
	UsageFrequently: "Students frequently use generative AI, so permitted and prohibited uses need immediate clarity.",
	UsageDaily:      "Students use generative AI daily, so the policy must assume pervasive access.",
}

var leaderLiteracyContext = map[LiteracyLevel]string{
	LiteracyLow:    "Leadership AI literacy is still developing, so governance guidance should avoid jargon.",
	LiteracyMedium: "Leadership has working AI literacy sufficient to oversee adoption.",
	LiteracyHigh:   "Leadership is highly AI-literate and can steward an ambitious program.",
}

var staffLiteracyContext = map[LiteracyLevel]string{
	LiteracyLow:    "Staff AI literacy is low, so substantial training must precede classroom use.",
	LiteracyMedium: "Staff have moderate AI literacy and need targeted rather than foundational training.",
	LiteracyHigh:   "Staff AI literacy is high, enabling staff to model responsible use for students.",
}

var studentLiteracyContext = map[LiteracyLevel]string{
	LiteracyLow:    "Student AI literacy is low, so age-appropriate instruction must come before independent use.",
	LiteracyMedium: "Students have moderate AI literacy and benefit from guided practice.",
	LiteracyHigh:   "Students are already AI-literate, shifting emphasis toward judgment and ethics.",
}

// QualitativeContext maps the closed-vocabulary answers to canned descriptive
// sentences joined with spaces. Prompts use this instead of raw percentages
// so the model writes qualitatively.
func (a SurveyAnswers) QualitativeContext() string {
	parts := make([]string, 0, 7)
	add := func(s string, ok bool) {
		if ok {
			parts = append(parts, s)
		}
	}
	s, ok := staffAccessContext[AccessBand(a.StaffDeviceAccess)]
	add(s, ok)
	s, ok = studentAccessContext[AccessBand(a.StudentDeviceAccess)]
	add(s, ok)
	s, ok = staffUsageContext[UsageFrequency(a.StaffGenAIUsage)]
	add(s, ok)
	s, ok = studentUsageContext[UsageFrequency(a.StudentGenAIUsage)]
	add(s, ok)
	s, ok = leaderLiteracyContext[LiteracyLevel(a.LeaderAILiteracy)]
	add(s, ok)
	s, ok = staffLiteracyContext[LiteracyLevel(a.StaffAILiteracy)]
	add(s, ok)
	s, ok = studentLiteracyContext[LiteracyLevel(a.StudentAILiteracy)]
	add(s, ok)
	return strings.Join(parts, " ")
}
