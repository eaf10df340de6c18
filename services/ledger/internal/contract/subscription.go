package contract

import (
	"context"

	"content-ledger/services/ledger/internal/dispatcher"
	"content-ledger/services/ledger/internal/entity"
	"content-ledger/services/ledger/internal/usecase"
)

// RegisterSubscription installs the subscription functions on d. The call
// sender is the subscriber for every write.
func RegisterSubscription(d *dispatcher.Dispatcher, uc usecase.SubscriptionUseCase) {
	c := entity.ContractSubscription

	d.Register(c, "create-subscription", func(ctx context.Context, call entity.Call) (interface{}, error) {
		creator, err := argPrincipal(call, 0)
		if err != nil {
			return nil, err
		}
		duration, err := argUint(call, 1)
		if err != nil {
			return nil, err
		}
		amount, err := argUint(call, 2)
		if err != nil {
			return nil, err
		}
		_, err = uc.Create(ctx, call.Sender, creator, duration, amount)
		return nil, err
	})

	d.Register(c, "renew-subscription", func(ctx context.Context, call entity.Call) (interface{}, error) {
		creator, err := argPrincipal(call, 0)
		if err != nil {
			return nil, err
		}
		_, err = uc.Renew(ctx, call.Sender, creator)
		return nil, err
	})

	d.Register(c, "cancel-subscription", func(ctx context.Context, call entity.Call) (interface{}, error) {
		creator, err := argPrincipal(call, 0)
		if err != nil {
			return nil, err
		}
		return nil, uc.Cancel(ctx, call.Sender, creator)
	})

	d.Register(c, "get-subscription", func(ctx context.Context, call entity.Call) (interface{}, error) {
		subscriber, creator, err := pairArgs(call)
		if err != nil {
			return nil, err
		}
		s, err := uc.Get(ctx, subscriber, creator)
		if err != nil {
			return nil, err
		}
		if s == nil {
			// explicit null on the wire
			return (*entity.SubscriptionView)(nil), nil
		}
		return s.View(), nil
	})

	d.Register(c, "is-subscribed", func(ctx context.Context, call entity.Call) (interface{}, error) {
		subscriber, creator, err := pairArgs(call)
		if err != nil {
			return nil, err
		}
		return uc.IsSubscribed(ctx, subscriber, creator)
	})

	d.Register(c, "get-creator-subscribers", func(ctx context.Context, call entity.Call) (interface{}, error) {
		creator, err := argPrincipal(call, 0)
		if err != nil {
			return nil, err
		}
		return uc.ListSubscribers(ctx, creator)
	})
}

func pairArgs(call entity.Call) (string, string, error) {
	subscriber, err := argPrincipal(call, 0)
	if err != nil {
		return "", "", err
	}
	creator, err := argPrincipal(call, 1)
	if err != nil {
		return "", "", err
	}
	return subscriber, creator, nil
}
