package game

import (
	"context"
	"fmt"
	"math/rand"
)

// Decider answers decisions on behalf of a player. Implementations may be a
// human prompt, a scripted test driver, or an automated policy; the engine
// only requires that exactly one answer eventually arrives per decision.
type Decider interface {
	Decide(ctx context.Context, view GameView, decision DecisionView) ([]string, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, view GameView, decision DecisionView) ([]string, error)

// Decide implements Decider.
func (f DeciderFunc) Decide(ctx context.Context, view GameView, decision DecisionView) ([]string, error) {
	return f(ctx, view, decision)
}

// FirstOptionDecider always takes the maximum number of selections from the
// front of the option list. It plays every action and treasure it can and
// buys the first affordable pile, which makes it a useful smoke driver.
type FirstOptionDecider struct{}

// Decide implements Decider.
func (FirstOptionDecider) Decide(_ context.Context, _ GameView, decision DecisionView) ([]string, error) {
	take := decision.Max
	if take > len(decision.Options) {
		take = len(decision.Options)
	}
	return append([]string(nil), decision.Options[:take]...), nil
}

// RandomDecider picks a uniformly random legal answer. With a fixed seed it
// is deterministic, which the convergence tests rely on.
type RandomDecider struct {
	rng *rand.Rand
}

// NewRandomDecider creates a seeded random decider.
func NewRandomDecider(seed int64) *RandomDecider {
	return &RandomDecider{rng: rand.New(rand.NewSource(seed))}
}

// Decide implements Decider.
func (r *RandomDecider) Decide(_ context.Context, _ GameView, decision DecisionView) ([]string, error) {
	maxTake := decision.Max
	if maxTake > len(decision.Options) {
		maxTake = len(decision.Options)
	}
	minTake := decision.Min
	if minTake > maxTake {
		minTake = maxTake
	}
	take := minTake
	if maxTake > minTake {
		take = minTake + r.rng.Intn(maxTake-minTake+1)
	}

	options := append([]string(nil), decision.Options...)
	r.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options[:take], nil
}

// Drive advances the game to completion, routing each decision to the
// decider registered for its player. maxSteps bounds the number of
// decisions answered so a misbehaving decider cannot loop forever.
func Drive(ctx context.Context, g *Game, deciders map[string]Decider, maxSteps int) error {
	for steps := 0; ; steps++ {
		if maxSteps > 0 && steps > maxSteps {
			return fmt.Errorf("game did not finish within %d decisions", maxSteps)
		}

		decision := g.PendingDecision()
		if decision == nil {
			var err error
			decision, err = g.AdvanceGameState()
			if err != nil {
				return err
			}
			if decision == nil {
				return nil // game finished
			}
		}

		decider, ok := deciders[decision.PlayerID]
		if !ok {
			return fmt.Errorf("%w: no decider for %s", ErrUnknownPlayer, decision.PlayerID)
		}
		view := g.GetView(decision.PlayerID)
		answer, err := decider.Decide(ctx, view, *view.Pending)
		if err != nil {
			return fmt.Errorf("decider for %s: %w", decision.PlayerID, err)
		}
		if err := g.ResolveDecision(answer); err != nil {
			return err
		}
	}
}
