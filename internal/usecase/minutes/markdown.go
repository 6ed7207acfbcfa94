package minutes

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// RenderMarkdown formats minutes for export
func RenderMarkdown(meeting *entities.Meeting, minutes *entities.Minutes, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", meeting.Name)
	fmt.Fprintf(&b, "- Purpose: %s\n", meeting.Purpose)
	fmt.Fprintf(&b, "- Date: %s %s-%s\n", meeting.StartDate, meeting.StartTime, meeting.EndTime)
	if meeting.HasAgenda() {
		fmt.Fprintf(&b, "- Planned: %d min\n", meeting.PlannedMinutes())
	}
	fmt.Fprintf(&b, "- Participants: %s\n", strings.Join(meeting.Participants, ", "))
	fmt.Fprintf(&b, "- Generated: %s\n\n", generatedAt.Format(entities.DateTimeLayout))

	b.WriteString("## Agenda\n\n")
	if len(minutes.Agenda) == 0 {
		b.WriteString("_No agenda._\n")
	}
	for _, item := range minutes.Agenda {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s (%d min)\n", mark, item.Topic, item.Duration)
	}

	b.WriteString("\n## Decisions\n\n")
	if len(minutes.Decisions) == 0 {
		b.WriteString("_No decisions yet._\n")
	}
	for i, d := range minutes.Decisions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d.Text)
	}

	b.WriteString("\n## Action plan\n\n")
	if len(minutes.ActionPlan) == 0 {
		b.WriteString("_No action items yet._\n")
		return b.String()
	}
	b.WriteString("| Task | Assigned to | Due |\n|---|---|---|\n")
	for _, a := range minutes.ActionPlan {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(a.Task), escapeCell(a.AssignedTo), escapeCell(a.DueDate))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}
