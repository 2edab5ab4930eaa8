// Package archive feeds processed transcripts back into the meeting history
// corpus: a database row, index chunks for retrieval, and a best-effort
// object-storage copy.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/team-assistant/internal/domain/entities"
	"github.com/johnquangdev/team-assistant/internal/domain/repositories"
	"github.com/johnquangdev/team-assistant/internal/retrieval"
)

// Uploader stores the raw transcript copy. Satisfied by storage.MinIOClient;
// nil disables the copy.
type Uploader interface {
	UploadText(ctx context.Context, objectName string, content string) error
}

// Service archives one processed meeting
type Service struct {
	meetings repositories.MeetingRepository
	index    *retrieval.Index
	uploader Uploader
	logger   *zap.Logger
}

// NewService wires the archive path
func NewService(meetings repositories.MeetingRepository, index *retrieval.Index, uploader Uploader, logger *zap.Logger) *Service {
	return &Service{
		meetings: meetings,
		index:    index,
		uploader: uploader,
		logger:   logger,
	}
}

// Archive persists the meeting record, indexes its chunks, and uploads the
// transcript copy. The object-storage copy is best-effort; the record and
// index are not.
func (s *Service) Archive(ctx context.Context, state *entities.MeetingState) error {
	record := buildRecord(state)

	// Append is idempotent on meeting_id, so retrying a flaky insert cannot
	// duplicate history.
	appendFn := func() error {
		return s.meetings.Append(ctx, record)
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	if err := backoff.Retry(appendFn, backoff.WithContext(backoff.WithMaxRetries(bo, 3), ctx)); err != nil {
		return err
	}

	docs := retrieval.MeetingDocuments([]*entities.MeetingRecord{record})
	if _, err := s.index.BulkInsert(ctx, docs); err != nil {
		return err
	}

	if s.uploader != nil {
		objectName := fmt.Sprintf("transcripts/%s.txt", record.MeetingID)
		if err := s.uploader.UploadText(ctx, objectName, state.Transcript); err != nil {
			s.logger.Warn("⚠️ Transcript upload failed",
				zap.String("meeting_id", record.MeetingID),
				zap.Error(err),
			)
		} else {
			record.ArchiveURL = objectName
		}
	}

	s.logger.Info("🗄️ Meeting archived",
		zap.String("meeting_id", record.MeetingID),
		zap.Int("chunks", len(docs)),
	)
	return nil
}

func buildRecord(state *entities.MeetingState) *entities.MeetingRecord {
	title := "Untitled Meeting"
	var participants []string
	if state.Summary != nil {
		participants = state.Summary.Participants
		if len(state.Summary.KeyTopics) > 0 {
			title = state.Summary.KeyTopics[0]
		}
	}
	if header := retrieval.ParseTranscriptHeader(state.Transcript); header["meeting"] != "" {
		title = header["meeting"]
	}

	raw, _ := json.Marshal(participants)
	return &entities.MeetingRecord{
		MeetingID:    state.RunID.String(),
		Title:        title,
		FullText:     state.Transcript,
		Participants: datatypes.JSON(raw),
		MeetingDate:  state.MeetingDate,
		Source:       state.Source,
	}
}
