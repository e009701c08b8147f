package store

import (
	"context"
	"sync"

	"barkbuddy/internal/client/api"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Tipos de acción.
const (
	FetchPending   = "dogs/fetch/pending"
	FetchFulfilled = "dogs/fetch/fulfilled"
	FetchRejected  = "dogs/fetch/rejected"
	Add            = "dogs/add"
	Update         = "dogs/update"
	Delete         = "dogs/delete"
	SetCount       = "dogs/setCount"
	Set            = "dogs/set"
)

// State es la cache local de perros del usuario.
type State struct {
	Dogs   []api.Dog
	Count  int
	Status Status
	Err    string
}

// Action lleva un payload según Type:
// FetchFulfilled/Set => []api.Dog, Add/Update => api.Dog, Delete => id string,
// SetCount => int, FetchRejected => error.
type Action struct {
	Type    string
	Payload any
}

// Reduce es pura: nunca modifica el slice de entrada.
func Reduce(s State, a Action) State {
	switch a.Type {
	case FetchPending:
		s.Status = StatusLoading
		s.Err = ""

	case FetchFulfilled:
		if dogs, ok := a.Payload.([]api.Dog); ok {
			s.Dogs = cloneDogs(dogs)
			s.Status = StatusSucceeded
		}

	case FetchRejected:
		s.Status = StatusFailed
		if err, ok := a.Payload.(error); ok && err != nil {
			s.Err = err.Error()
		}

	case Set:
		if dogs, ok := a.Payload.([]api.Dog); ok {
			s.Dogs = cloneDogs(dogs)
		}

	case Add:
		if d, ok := a.Payload.(api.Dog); ok {
			s.Dogs = append(cloneDogs(s.Dogs), d)
			s.Count++
		}

	case Update:
		if d, ok := a.Payload.(api.Dog); ok {
			dogs := cloneDogs(s.Dogs)
			for i := range dogs {
				if dogs[i].ID == d.ID {
					dogs[i] = d
					break
				}
			}
			s.Dogs = dogs
		}

	case Delete:
		if id, ok := a.Payload.(string); ok {
			dogs := make([]api.Dog, 0, len(s.Dogs))
			for _, d := range s.Dogs {
				if d.ID != id {
					dogs = append(dogs, d)
				}
			}
			if len(dogs) < len(s.Dogs) && s.Count > 0 {
				s.Count--
			}
			s.Dogs = dogs
		}

	case SetCount:
		if n, ok := a.Payload.(int); ok {
			s.Count = n
		}
	}
	return s
}

func cloneDogs(in []api.Dog) []api.Dog {
	out := make([]api.Dog, len(in))
	copy(out, in)
	return out
}

// Store es el contenedor observable: Dispatch aplica Reduce y notifica a los suscriptores.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

func New() *Store {
	return &Store{
		state:     State{Status: StatusIdle},
		listeners: make(map[int]func(State)),
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	st := s.state
	ls := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		ls = append(ls, fn)
	}
	s.mu.Unlock()

	// Fuera del lock: un listener puede volver a despachar.
	for _, fn := range ls {
		fn(st)
	}
}

// Subscribe devuelve la función para desuscribirse.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// DogsAPI es lo que usan los thunks; lo implementa *api.Client.
type DogsAPI interface {
	ListDogs(ctx context.Context) ([]api.Dog, error)
	CountDogs(ctx context.Context) (int, error)
	CreateDog(ctx context.Context, in api.DogInput, img *api.Image) (api.Dog, error)
	UpdateDog(ctx context.Context, id string, in api.DogInput, img *api.Image) (api.Dog, error)
	DeleteDog(ctx context.Context, id string) error
}

func FetchDogs(ctx context.Context, s *Store, c DogsAPI) error {
	s.Dispatch(Action{Type: FetchPending})
	dogs, err := c.ListDogs(ctx)
	if err != nil {
		s.Dispatch(Action{Type: FetchRejected, Payload: err})
		return err
	}
	s.Dispatch(Action{Type: FetchFulfilled, Payload: dogs})
	return nil
}

func FetchCount(ctx context.Context, s *Store, c DogsAPI) error {
	n, err := c.CountDogs(ctx)
	if err != nil {
		return err
	}
	s.Dispatch(Action{Type: SetCount, Payload: n})
	return nil
}

func AddDog(ctx context.Context, s *Store, c DogsAPI, in api.DogInput, img *api.Image) (api.Dog, error) {
	d, err := c.CreateDog(ctx, in, img)
	if err != nil {
		return api.Dog{}, err
	}
	s.Dispatch(Action{Type: Add, Payload: d})
	return d, nil
}

func UpdateDog(ctx context.Context, s *Store, c DogsAPI, id string, in api.DogInput, img *api.Image) (api.Dog, error) {
	d, err := c.UpdateDog(ctx, id, in, img)
	if err != nil {
		return api.Dog{}, err
	}
	s.Dispatch(Action{Type: Update, Payload: d})
	return d, nil
}

func DeleteDog(ctx context.Context, s *Store, c DogsAPI, id string) error {
	if err := c.DeleteDog(ctx, id); err != nil {
		return err
	}
	s.Dispatch(Action{Type: Delete, Payload: id})
	return nil
}
