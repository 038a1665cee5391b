package services

import "context"

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	deps []Pinger
}

func NewHealthService(deps ...Pinger) *HealthService {
	return &HealthService{deps: deps}
}

func (s *HealthService) Get(ctx context.Context) error {
	for _, d := range s.deps {
		if err := d.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
