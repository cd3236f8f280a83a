package participant

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/repository"
)

// Roster is the YAML document accepted by Import.
//
//	participants:
//	  - name: Ana
//	  - name: Bruno
type Roster struct {
	Participants []RosterEntry `yaml:"participants"`
}

type RosterEntry struct {
	Name string `yaml:"name"`
}

type UseCase struct {
	participants repository.ParticipantRepository
	logger       *zap.Logger
}

func New(participants repository.ParticipantRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{participants: participants, logger: logger}
}

// List returns every participant ordered by name.
func (uc *UseCase) List(ctx context.Context) ([]domain.Participant, error) {
	participants, err := uc.participants.List(ctx)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []domain.Participant{}
	}
	return participants, nil
}

// Add creates a participant.
func (uc *UseCase) Add(ctx context.Context, name string) (*domain.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	created, err := uc.participants.Create(ctx, &domain.Participant{Name: name})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("participant added", zap.String("participant_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// Import reads a YAML roster and adds every participant whose name is not taken yet.
// It returns the participants that were created.
func (uc *UseCase) Import(ctx context.Context, r io.Reader) ([]domain.Participant, error) {
	var roster Roster
	if err := yaml.NewDecoder(r).Decode(&roster); err != nil && err != io.EOF {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid roster", err)
	}

	existing, err := uc.participants.List(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		taken[strings.ToLower(p.Name)] = struct{}{}
	}

	created := make([]domain.Participant, 0, len(roster.Participants))
	for i, entry := range roster.Participants {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return created, domain.WrapError(domain.ErrCodeInvalid, fmt.Sprintf("roster entry %d", i+1), domain.ErrNameRequired)
		}
		if _, dup := taken[strings.ToLower(name)]; dup {
			uc.logger.Debug("participant already exists, skipping", zap.String("name", name))
			continue
		}
		p, err := uc.Add(ctx, name)
		if err != nil {
			return created, err
		}
		taken[strings.ToLower(name)] = struct{}{}
		created = append(created, *p)
	}
	return created, nil
}
