package service

import (
	"testing"
	"time"

	"controlling_servo/internal/models"
)

func TestStore_StartsAtHome(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	st := NewStore(now).Snapshot()

	if st.Position != models.HomePosition {
		t.Fatalf("position: got %d, want %d", st.Position, models.HomePosition)
	}
	if st.State != models.StateHome {
		t.Fatalf("state: got %q, want %q", st.State, models.StateHome)
	}
	if !st.LastCommandAt.Equal(now) {
		t.Fatalf("last command at: got %v, want %v", st.LastCommandAt, now)
	}
}

func TestStore_ApplySetsPositionAndResetsClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(start)

	later := start.Add(2 * time.Second)
	st := s.Apply(45, later)

	if st.Position != 45 || st.State != models.StateTracking {
		t.Fatalf("unexpected state after apply: %+v", st)
	}
	if !st.LastCommandAt.Equal(later) {
		t.Fatalf("clock not reset: %v", st.LastCommandAt)
	}
}

func TestStore_ApplyClampsOutOfRangeWrites(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	s := NewStore(now)

	if st := s.Apply(-20, now); st.Position != models.MinPosition {
		t.Fatalf("low clamp: got %d", st.Position)
	}
	if st := s.Apply(400, now); st.Position != models.MaxPosition {
		t.Fatalf("high clamp: got %d", st.Position)
	}
}

func TestStore_Sweep(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("quiet before timeout", func(t *testing.T) {
		t.Parallel()
		s := NewStore(start)
		s.Apply(45, start)

		if s.Sweep(start.Add(CommandTimeout), CommandTimeout) {
			t.Fatalf("must not fire at exactly the threshold")
		}
		st := s.Snapshot()
		if st.Position != 45 {
			t.Fatalf("position changed: %d", st.Position)
		}
		// Clock untouched below threshold.
		if !st.LastCommandAt.Equal(start) {
			t.Fatalf("clock moved: %v", st.LastCommandAt)
		}
	})

	t.Run("fire leaves state for the caller to commit", func(t *testing.T) {
		t.Parallel()
		s := NewStore(start)
		s.Apply(45, start)

		fireAt := start.Add(CommandTimeout + time.Millisecond)
		if !s.Sweep(fireAt, CommandTimeout) {
			t.Fatalf("expected recenter past the threshold")
		}
		// Nothing committed yet: the hardware write has not happened.
		st := s.Snapshot()
		if st.Position != 45 || !st.LastCommandAt.Equal(start) {
			t.Fatalf("sweep must not mutate before the commit: %+v", st)
		}

		st = s.Apply(models.HomePosition, fireAt)
		if st.Position != models.HomePosition || st.State != models.StateHome {
			t.Fatalf("not homed: %+v", st)
		}
		if !st.LastCommandAt.Equal(fireAt) {
			t.Fatalf("clock not reset on commit: %v", st.LastCommandAt)
		}

		// Continued silence after the commit: subsequent sweeps stay quiet.
		for i := 1; i <= 3; i++ {
			again := fireAt.Add(time.Duration(i) * CommandTimeout)
			if s.Sweep(again, CommandTimeout) {
				t.Fatalf("sweep %d refired", i)
			}
		}
	})

	t.Run("uncommitted fire keeps firing", func(t *testing.T) {
		t.Parallel()
		s := NewStore(start)
		s.Apply(60, start)

		// A failed hardware write never commits, so the deadline stays
		// expired and every later sweep asks again.
		for i := 1; i <= 4; i++ {
			at := start.Add(CommandTimeout + time.Duration(i)*time.Second)
			if !s.Sweep(at, CommandTimeout) {
				t.Fatalf("sweep %d must keep firing until committed", i)
			}
		}
		if s.Position() != 60 {
			t.Fatalf("position must stay put until the commit: %d", s.Position())
		}
	})

	t.Run("already home only resets clock", func(t *testing.T) {
		t.Parallel()
		s := NewStore(start)

		fireAt := start.Add(2 * CommandTimeout)
		if s.Sweep(fireAt, CommandTimeout) {
			t.Fatalf("no physical write expected at home")
		}
		st := s.Snapshot()
		if st.Position != models.HomePosition {
			t.Fatalf("position: %d", st.Position)
		}
		if !st.LastCommandAt.Equal(fireAt) {
			t.Fatalf("clock must advance so elapsed stays bounded, got %v", st.LastCommandAt)
		}
	})

	t.Run("command between ticks postpones the fire", func(t *testing.T) {
		t.Parallel()
		s := NewStore(start)
		s.Apply(120, start)

		cmdAt := start.Add(4 * time.Second)
		s.Apply(130, cmdAt)

		if s.Sweep(start.Add(6*time.Second), CommandTimeout) {
			t.Fatalf("fresh command must postpone the timeout")
		}
		if !s.Sweep(cmdAt.Add(CommandTimeout+time.Second), CommandTimeout) {
			t.Fatalf("expected fire after renewed silence")
		}
	})
}
