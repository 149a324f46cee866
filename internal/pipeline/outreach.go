package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// maxMessageLen is the hard cap for a LinkedIn connection note.
const maxMessageLen = 300

// DraftOutreach generates one LinkedIn connection-request draft per
// qualifying person. People who already have a draft are skipped, making the
// stage idempotent; a generation failure for one person is logged and
// skipped.
func (p *Pipeline) DraftOutreach(ctx context.Context, minScore float64) error {
	log := zap.L().With(zap.String("stage", "outreach"))

	people, err := p.store.ListPeopleWithCompany(ctx, minScore)
	if err != nil {
		return err
	}

	drafted := 0
	for _, person := range people {
		existing, err := p.store.GetMessageByPersonAndType(ctx, person.ID, model.MessageTypeLinkedInConnect)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		if err := p.lookupPace.Wait(ctx); err != nil {
			return err
		}
		content, err := p.complete(ctx, "outreach", p.systemPrompt(), p.outreachPrompt(person))
		if err != nil {
			log.Warn("message generation failed",
				zap.String("person", person.Name),
				zap.String("company", person.CompanyName),
				zap.Error(err))
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		if len(content) > maxMessageLen {
			content = content[:maxMessageLen-3] + "..."
		}

		if _, err := p.store.CreateMessage(ctx, &model.Message{
			PersonID:    person.ID,
			MessageType: model.MessageTypeLinkedInConnect,
			Content:     content,
			Status:      model.MessageStatusDraft,
			Notes:       "Generated via AI",
		}); err != nil {
			return err
		}
		drafted++
	}

	log.Info("outreach drafting complete",
		zap.Int("qualifying", len(people)), zap.Int("drafted", drafted))
	return nil
}
