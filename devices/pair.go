package devices

import (
	"context"
	"fmt"
)

func (s *Store) Pair(id int, left int, right int) error {
	l, err := checkPort(left)
	if err != nil {
		return err
	}
	r, err := checkPort(right)
	if err != nil {
		return err
	}
	if l == r {
		return ErrSamePorts
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pairs == nil {
		s.pairs = make(map[int]pair)
	}
	s.pairs[id] = pair{
		Left:  l,
		Right: r,
	}
	return nil
}

// SteeringMix splits velocity into left and right wheel velocities.
// Positive steering turns right by slowing the right wheel, negative steering turns left.
func SteeringMix(steering int, velocity int) (left int, right int) {
	switch {
	case steering > 0:
		return velocity, velocity * (100 - steering) / 100
	case steering < 0:
		return velocity * (100 + steering) / 100, velocity
	}
	return velocity, velocity
}

func (s *Store) MovePair(ctx context.Context, id int, steering int, velocity int) error {
	if steering < -100 || steering > 100 {
		return fmt.Errorf("%w: got %d", ErrSteeringRange, steering)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pairs[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrPairNotDefined, id)
	}
	left, right := SteeringMix(steering, velocity)
	s.run(ctx, p.Left, left)
	s.run(ctx, p.Right, right)
	return nil
}

func (s *Store) StopPair(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pairs[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrPairNotDefined, id)
	}
	s.stop(ctx, p.Left)
	s.stop(ctx, p.Right)
	return nil
}
