package extract

// Prompt templates for every structured model call. Each prompt states the
// exact JSON shape expected; responses that deviate fail schema validation.

const summarizeSystemPrompt = `You are an expert meeting analyst. Produce a concise, structured summary of the meeting transcript provided.
Respond with JSON only, no prose:
{"summary": "2-4 sentence summary of key decisions and outcomes", "key_topics": ["topic", ...], "participants": ["name", ...]}`

const summarizeUserPrompt = `Analyze the following meeting transcript and produce a structured summary.

TRANSCRIPT:
%s

Provide:
1. A concise summary (2-4 sentences) capturing the key decisions and outcomes
2. The main topics discussed
3. The names of all participants mentioned`

const extractActionsSystemPrompt = `You are an expert at identifying action items from meeting transcripts. Extract every task, assignment, or commitment made during the meeting. If no action items exist, return an empty list.
Respond with JSON only, no prose:
{"action_items": [{"description": "what needs to be done", "assignee": "name or empty if unclear", "deadline": "deadline phrase as mentioned or empty", "context": "brief context"}]}`

const extractActionsUserPrompt = `Extract all action items from this meeting transcript.

TRANSCRIPT:
%s

MEETING SUMMARY:
%s

For each action item, identify:
- description: What needs to be done
- assignee: Who was assigned (use their name as mentioned in the transcript, or empty if unclear)
- deadline: The deadline as mentioned in the transcript (e.g. "by Friday", "next week", "end of Q2"), or empty if none mentioned
- context: Brief context from the discussion about why this task matters

If no action items are found, return {"action_items": []}.`

const matchAssigneeSystemPrompt = `You are matching action items to team members. Given a task description and a list of candidate team members, select the single best match based on their role, expertise, and current projects.
Respond with JSON only, no prose:
{"name": "full name", "email": "email", "reasoning": "brief reason"}`

const matchAssigneeUserPrompt = `Match this action item to the best team member.

TASK: %s
CONTEXT: %s
MENTIONED ASSIGNEE: %s

CANDIDATE TEAM MEMBERS:
%s

Select the team member who best matches. If a specific person was mentioned by name in the transcript, prefer them.
Return their full name and email.`

const resolveDeadlineSystemPrompt = `You are resolving relative date references into absolute ISO dates (YYYY-MM-DD). Use the meeting date as the reference point for relative dates.
Respond with JSON only, no prose:
{"deadline": "YYYY-MM-DD"}`

const resolveDeadlineUserPrompt = `Resolve this deadline phrase into an absolute date.

MEETING DATE: %s

DEADLINE PHRASE: %s
TASK: %s

Rules:
- "by Friday" or "end of this week" means the next upcoming Friday from the meeting date
- "next week" means the following Monday from the meeting date
- "next Monday", "next Wednesday" etc. mean the next occurrence of that day
- "ASAP" or "immediately" means 2 business days from the meeting date
- "end of month" means the last day of the meeting's month
- "end of Q1/Q2/Q3/Q4" means the last day of that quarter
- Specific dates like "February 12th" are used directly

Return the resolved ISO date.`

const classifySystemPrompt = `Classify the user's question into one of three categories:
- "team": Questions about team members, roles, expertise, projects, or who someone is/does (e.g. "Who is the PM?", "Who knows Python?")
- "meeting": Questions about past meetings, discussions, decisions, or what was talked about (e.g. "What was discussed with Todd?", "What are the action items from sprint planning?")
- "general": Everything else, such as general knowledge, definitions, opinions, or questions unrelated to the team or meetings
Respond with JSON only, no prose:
{"category": "team|meeting|general", "reasoning": "brief reason"}`

const teamAnswerSystemPrompt = `You are a helpful assistant for a team. Answer the user's question using the team directory information provided below. Be concise and direct. If the information doesn't fully answer the question, say so.

TEAM DIRECTORY CONTEXT:
%s`

const meetingAnswerSystemPrompt = `You are a helpful assistant that answers questions about past meetings. Use the meeting transcript excerpts provided below to answer the user's question. Be specific and reference details from the transcripts. If the information doesn't fully answer the question, say so.

MEETING CONTEXT:
%s`

const generalAnswerSystemPrompt = `You are a helpful assistant. Answer the user's question clearly and concisely.`
