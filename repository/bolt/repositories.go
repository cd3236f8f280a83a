package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/fastygo/choreboard/domain"
	"github.com/fastygo/choreboard/repository"
)

type taskRepository struct{ store *Store }

// NewTaskRepository returns a bbolt-backed TaskRepository.
func NewTaskRepository(store *Store) repository.TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) ListActive(ctx context.Context) ([]domain.Task, error) {
	if err := r.store.open(); err != nil {
		return nil, err
	}
	var tasks []domain.Task
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTasks).ForEach(func(_, v []byte) error {
			var task domain.Task
			if err := json.Unmarshal(v, &task); err != nil {
				return err
			}
			if !task.IsArchived {
				tasks = append(tasks, task)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := r.store.open(); err != nil {
		return nil, err
	}
	var task domain.Task
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		found, err := getJSON(tx.Bucket(bucketTasks), id, &task)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := r.store.open(); err != nil {
		return nil, err
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = r.store.now()
	}

	err := r.store.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		if b.Get([]byte(task.ID)) != nil {
			return fmt.Errorf("task %s already exists", task.ID)
		}
		return putJSON(b, []byte(task.ID), task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Archive(ctx context.Context, id string) error {
	if err := r.store.open(); err != nil {
		return err
	}
	return r.store.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTasks)
		var task domain.Task
		found, err := getJSON(b, id, &task)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrTaskNotFound
		}
		task.IsArchived = true
		return putJSON(b, []byte(id), task)
	})
}

type participantRepository struct{ store *Store }

// NewParticipantRepository returns a bbolt-backed ParticipantRepository.
func NewParticipantRepository(store *Store) repository.ParticipantRepository {
	return &participantRepository{store: store}
}

func (r *participantRepository) List(ctx context.Context) ([]domain.Participant, error) {
	if err := r.store.open(); err != nil {
		return nil, err
	}
	var participants []domain.Participant
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketParticipants).ForEach(func(_, v []byte) error {
			var participant domain.Participant
			if err := json.Unmarshal(v, &participant); err != nil {
				return err
			}
			participants = append(participants, participant)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].Name < participants[j].Name
	})
	return participants, nil
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	if err := r.store.open(); err != nil {
		return nil, err
	}
	var participant domain.Participant
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		found, err := getJSON(tx.Bucket(bucketParticipants), id, &participant)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrParticipantNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error) {
	if participant == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := r.store.open(); err != nil {
		return nil, err
	}
	if participant.ID == "" {
		participant.ID = uuid.NewString()
	}
	if participant.CreatedAt.IsZero() {
		participant.CreatedAt = r.store.now()
	}

	err := r.store.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketParticipants)
		if b.Get([]byte(participant.ID)) != nil {
			return fmt.Errorf("participant %s already exists", participant.ID)
		}
		return putJSON(b, []byte(participant.ID), participant)
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

type completionRepository struct{ store *Store }

// NewCompletionRepository returns a bbolt-backed completion log. Keys sort by completion
// time, so cursor order is chronological order.
func NewCompletionRepository(store *Store) repository.CompletionRepository {
	return &completionRepository{store: store}
}

func (r *completionRepository) List(ctx context.Context, filter repository.CompletionFilter) ([]domain.CompletionView, error) {
	if err := r.store.open(); err != nil {
		return nil, err
	}
	var views []domain.CompletionView
	err := r.store.db.View(func(tx *bbolt.Tx) error {
		tasks := tx.Bucket(bucketTasks)
		participants := tx.Bucket(bucketParticipants)
		c := tx.Bucket(bucketCompletions).Cursor()

		first, next := c.First, c.Next
		if filter.Descending {
			first, next = c.Last, c.Prev
		}

		for k, v := first(); k != nil; k, v = next() {
			var completion domain.Completion
			if err := json.Unmarshal(v, &completion); err != nil {
				return err
			}
			if !filter.Matches(completion) {
				continue
			}

			view := domain.CompletionView{Completion: completion}
			var task domain.Task
			if found, err := getJSON(tasks, completion.TaskID, &task); err == nil && found {
				view.TaskTitle = task.Title
			}
			if completion.HasParticipant() {
				var participant domain.Participant
				if found, err := getJSON(participants, *completion.ParticipantID, &participant); err == nil && found {
					view.ParticipantName = participant.Name
				}
			}
			views = append(views, view)
		}
		return nil
	})
	return views, err
}

func (r *completionRepository) Insert(ctx context.Context, completion *domain.Completion) (*domain.Completion, error) {
	if completion == nil || completion.TaskID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := r.store.open(); err != nil {
		return nil, err
	}
	if completion.ID == "" {
		completion.ID = uuid.NewString()
	}
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = r.store.now()
	}

	err := r.store.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketTasks).Get([]byte(completion.TaskID)) == nil {
			return domain.ErrTaskNotFound
		}
		if completion.HasParticipant() &&
			tx.Bucket(bucketParticipants).Get([]byte(*completion.ParticipantID)) == nil {
			return domain.ErrParticipantNotFound
		}
		return putJSON(tx.Bucket(bucketCompletions), completionKey(completion.CompletedAt, completion.ID), completion)
	})
	if err != nil {
		return nil, err
	}
	return completion, nil
}
