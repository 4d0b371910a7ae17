package pipeline

import (
	"fmt"
	"strings"

	"github.com/plantparty/outreach/internal/model"
)

const rolesSystemPrompt = `You help community organizers find the people who can make sustainability projects happen.`

const rolesPromptTemplate = `A user is planning the following community project:

%s

List the job titles of people who could support, approve, fund or partner on this project.
Focus mainly on local government and community-organization roles (city and county offices,
nonprofits, utilities, school districts, parks departments).

Return ONLY a JSON array of job title strings, for example:
["Sustainability Coordinator", "Parks and Recreation Director"]
Do not include any explanation.`

const validateSystemPrompt = `You help check project summaries for sustainability-related community projects.`

// AcceptanceMarker is the literal answer the validator prompt asks for when a summary is good enough.
const AcceptanceMarker = "1"

const validatePromptTemplate = `Given the following project summary, determine whether it provides *enough general detail* to identify relevant people (e.g., government officials, nonprofit leaders, or community stakeholders) who could support or enable a sustainability-related community project.

Project Summary:
%s

If the summary includes at least a general idea of the project's goals, some context about the location or community, or mentions any needs (like funding, partnerships, or permissions), return **"1"**.

Otherwise, return a *friendly and constructive message* explaining how the summary could be improved, for example:
- It doesn't mention what the project is trying to achieve
- There's no sense of where it takes place or who it helps
- It doesn't mention any kind of support needed (like funding or volunteers)

Err on the side of being helpful. If there's *some* useful info that could guide outreach, assume it's enough and return **"1"**.`

const scoreSystemPrompt = `You help find sponsors for sustainability-related community projects.`

const scorePromptTemplate = `You are helping evaluate the relevance of potential contacts for a sustainability-related community project.

Given:
- A summary of the project idea.
- A summary of a potential sponsor or contact person.

Your task:
Analyze how relevant and useful this person would be in supporting or enabling the project.

Instructions:
Return a single integer between 1 and 100, where:
- 1 means not relevant at all,
- 100 means extremely relevant and likely to help.

Only return the integer. Do not include any explanation, formatting, or extra text.

Project Summary:
%s

Person Summary:
%s`

const bioSystemPrompt = `You are an agent tasked with taking in information about a person who could help the user with a task.
The user wants to know how this person could help them complete their task.
You will be given the task the user has asked, and the information about a person they should know about.
Use that information to create 3 or fewer bullet points about the person using information that is relevant to the project the user is planning.
Exclude text before and after the bullet points.
Keep it short.
Have both positive and negative points if possible.
Elaborate why it is important to the task in two sentences.
Do not say the name.`

const bioPromptTemplate = `A user wants to make a project:

%s

Here is information about a candidate who might be helpful. Summarize their experience and include anything that might be relevant to the project:

%s

Please create a bio for this person.`

const emailSystemPrompt = `You are an agent that writes outreach emails asking a person to help with a community project.
Write a short, professional email that:
- greets the person by name,
- describes the project and its goals,
- explains why the person's background is relevant,
- asks them to get involved,
- closes with a concrete next step.
Return only the email itself, with no text before or after it.`

const emailPromptTemplate = `I'm working on this project:

%s

I believe this person could help me.

%s

Please write an email to connect me with this person.`

// describeCandidate renders the candidate fields shared by the bio and email prompts.
func describeCandidate(c model.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Current Job Title: %s\n", c.CurrentJobTitle)
	fmt.Fprintf(&b, "Company Name: %s\n", c.CompanyName)
	fmt.Fprintf(&b, "Industry: %s\n", c.Industry)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(c.Skills, ", "))
	fmt.Fprintf(&b, "Interests: %s\n", strings.Join(c.Interests, ", "))
	fmt.Fprintf(&b, "LinkedIn summary: %s\n", c.Summary)

	past := make([]string, 0, len(c.PastJobs))
	for _, j := range c.PastJobs {
		past = append(past, fmt.Sprintf("%s (ended %d days ago)", j.Title, j.DaysSinceEnd))
	}
	fmt.Fprintf(&b, "Past job titles: %s", strings.Join(past, "; "))
	return b.String()
}

// personSummary is what the scorer sees. The LinkedIn summary is preferred;
// without one, a line is assembled from the employment fields.
func personSummary(c model.Candidate) string {
	if s := strings.TrimSpace(c.Summary); s != "" {
		return s
	}
	parts := make([]string, 0, 3)
	if c.CurrentJobTitle != "" {
		role := c.CurrentJobTitle
		if c.CompanyName != "" {
			role += " at " + c.CompanyName
		}
		parts = append(parts, role)
	}
	if c.Industry != "" {
		parts = append(parts, "Industry: "+c.Industry)
	}
	if len(c.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(c.Skills, ", "))
	}
	if len(parts) == 0 {
		return c.Name
	}
	return strings.Join(parts, ". ")
}
