package presenter

import (
	"github.com/johnquangdev/team-assistant/internal/adapter/dto/assistant"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// ToAskResponse converts an Answer entity to AskResponse DTO
func ToAskResponse(answer *entities.Answer) *assistant.AskResponse {
	if answer == nil {
		return nil
	}

	response := &assistant.AskResponse{
		Answer:   answer.Text,
		Category: string(answer.Category),
	}
	for _, src := range answer.Grounding {
		response.Grounding = append(response.Grounding, assistant.SourceResponse{
			Namespace:  src.Namespace,
			DocumentID: src.DocumentID,
			Title:      src.Title,
			Score:      src.Score,
		})
	}
	return response
}
