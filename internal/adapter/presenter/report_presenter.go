package presenter

import (
	"github.com/johnquangdev/team-assistant/internal/adapter/dto/meeting"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// ToReportResponse converts a FinalReport entity to ReportResponse DTO
func ToReportResponse(report *entities.FinalReport) *meeting.ReportResponse {
	if report == nil {
		return nil
	}

	response := &meeting.ReportResponse{
		RunID:       report.RunID.String(),
		Stage:       report.Stage,
		ActionItems: make([]meeting.ActionItemResponse, 0, len(report.ActionItems)),
		Errors:      report.Errors,
	}

	if report.Summary != nil {
		response.Summary = &meeting.SummaryResponse{
			Summary:      report.Summary.Text,
			KeyTopics:    report.Summary.KeyTopics,
			Participants: report.Summary.Participants,
		}
	}

	for _, item := range report.ActionItems {
		response.ActionItems = append(response.ActionItems, toActionItemResponse(item))
	}

	return response
}

func toActionItemResponse(item *entities.ActionItem) meeting.ActionItemResponse {
	response := meeting.ActionItemResponse{
		ID:               item.ID,
		Description:      item.Description,
		Context:          item.Context,
		DueDate:          item.DueDate,
		DeadlineInferred: item.DeadlineInferred,
		Status:           string(item.Status),
	}
	if item.Assignee != nil {
		response.AssigneeName = item.Assignee.Name
		response.AssigneeEmail = item.Assignee.Email
		response.AssigneeConfidence = item.AssigneeConfidence
	}
	return response
}

// ToRunStatusResponse converts a WorkflowRun entity to RunStatusResponse DTO
func ToRunStatusResponse(run *entities.WorkflowRun) *meeting.RunStatusResponse {
	if run == nil {
		return nil
	}

	response := &meeting.RunStatusResponse{
		RunID:           run.ID.String(),
		Source:          run.Source,
		Status:          run.Status,
		Stage:           run.Stage,
		ActionItemCount: run.ActionItemCount,
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
	}
	if run.LastError != nil {
		response.LastError = *run.LastError
	}
	return response
}
