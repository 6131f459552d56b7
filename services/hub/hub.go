package hub

import (
	"sync"

	"inhotel/models"
)

// Service holds the smart-home hub state for one session. The viewHub and
// updateHub tools read and replace it; the transcript keeps the history.
type Service struct {
	mu    sync.Mutex
	state models.HubState
}

// NewService returns a hub with the default demo fixtures.
func NewService() *Service {
	return &Service{state: DefaultState()}
}

// DefaultState is the hub state a fresh session starts from.
func DefaultState() models.HubState {
	return models.HubState{
		Climate: models.HubClimate{Low: 20, High: 24},
		Lights: []models.HubLight{
			{Name: "Entrance", Status: true},
			{Name: "Living Room", Status: false},
			{Name: "Bedroom", Status: false},
		},
		Locks: []models.HubLock{
			{Name: "Front Door", IsLocked: true},
			{Name: "Back Door", IsLocked: true},
		},
	}
}

// Get returns a copy of the current hub state.
func (s *Service) Get() models.HubState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// Update replaces the hub state and returns the stored copy.
func (s *Service) Update(state models.HubState) models.HubState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = copyState(state)
	return copyState(s.state)
}

func copyState(in models.HubState) models.HubState {
	out := in
	out.Lights = make([]models.HubLight, len(in.Lights))
	copy(out.Lights, in.Lights)
	out.Locks = make([]models.HubLock, len(in.Locks))
	copy(out.Locks, in.Locks)
	return out
}
